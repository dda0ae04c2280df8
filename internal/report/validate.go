package report

import (
	"fmt"
	"strings"
)

// ValidationError lists every record ComputeStrict rejected.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid report input: " + strings.Join(e.Problems, "; ")
}

// ComputeStrict is Compute with input validation switched on. Negative
// quantities and negative discounts are rejected before any aggregation
// runs, so a failure never yields partial results. Most callers want the
// permissive Compute; strict mode is for ingest paths that cannot trust
// their producer.
func ComputeStrict(transactions []Transaction, inventory []InventoryCost, filter Filter) (Summary, error) {
	var problems []string
	for _, tx := range transactions {
		for i, line := range tx.Items {
			if line.Quantity < 0 {
				problems = append(problems, fmt.Sprintf("transaction %s item %d: negative quantity %d", tx.ID, i, line.Quantity))
			}
			if line.DiscountAmount.IsNegative() {
				problems = append(problems, fmt.Sprintf("transaction %s item %d: negative discount %s", tx.ID, i, line.DiscountAmount))
			}
		}
	}
	if len(problems) > 0 {
		return Summary{}, &ValidationError{Problems: problems}
	}
	return Compute(transactions, inventory, filter), nil
}
