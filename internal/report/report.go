package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Status of a sale transaction. A sale is created Completed and the only
// mutation it ever sees afterwards is a flip to Reversed.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusReversed  Status = "Reversed"
)

// LineItem is one product entry inside a transaction. Name, SKU and category
// are snapshot copies frozen at sale time — renaming a product later must
// never rewrite historical reports.
type LineItem struct {
	ProductID            string
	ProductName          string
	SKU                  string
	Category             string
	Quantity             int
	UnitPrice            decimal.Decimal
	DiscountAmount       decimal.Decimal
	IsPercentageDiscount bool
}

// Transaction is an immutable point-of-sale record.
type Transaction struct {
	ID          string
	ShopID      string
	CreatorID   string
	CreatorName string
	Timestamp   int64 // milliseconds since epoch
	Status      Status
	Items       []LineItem
}

// InventoryCost carries the only inventory fields the engine needs:
// the cost basis for profit, looked up by product ID.
type InventoryCost struct {
	ProductID string
	CostPrice decimal.Decimal
}

// Filter selects which transactions feed the report. Start and End are
// calendar dates; the engine widens them to start-of-day and end-of-day in
// Location (local time when nil). Category and Salesperson are exact matches
// and compose with AND. There is deliberately no status field: Reversed
// sales count toward the KPIs unless the caller pre-filters the slice.
type Filter struct {
	Start       time.Time
	End         time.Time
	Category    string
	Salesperson string
	Location    *time.Location
}

// ProductSales is one row of the top-products ranking.
type ProductSales struct {
	ProductName  string `json:"product_name"`
	QuantitySold int    `json:"quantity_sold"`
}

// Summary is the computed report. DailyTrend keys are YYYY-MM-DD strings in
// the filter's calendar; the map is unsorted, callers sort by key.
type Summary struct {
	TotalRevenue      decimal.Decimal            `json:"total_revenue"`
	TotalProfit       decimal.Decimal            `json:"total_profit"`
	TransactionCount  int                        `json:"transaction_count"`
	CategoryBreakdown map[string]decimal.Decimal `json:"category_breakdown"`
	DailyTrend        map[string]decimal.Decimal `json:"daily_trend"`
	TopProducts       []ProductSales             `json:"top_products"`
}

const topProductsLimit = 5

var oneHundred = decimal.NewFromInt(100)

// Compute builds a Summary from immutable snapshots. It never mutates its
// inputs, performs no I/O, and returns a zeroed Summary for empty input.
// Inputs are not validated; negative quantities or discounts flow through
// arithmetically (use ComputeStrict to reject them instead).
func Compute(transactions []Transaction, inventory []InventoryCost, filter Filter) Summary {
	loc := filter.Location
	if loc == nil {
		loc = time.Local
	}

	// Widen the calendar dates to an inclusive millisecond range:
	// 00:00:00.000 on Start through 23:59:59.999 on End.
	start := time.Date(filter.Start.Year(), filter.Start.Month(), filter.Start.Day(), 0, 0, 0, 0, loc)
	end := time.Date(filter.End.Year(), filter.End.Month(), filter.End.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	startMs := start.UnixMilli()
	endMs := end.UnixMilli() - 1

	// Build the productId -> costPrice lookup. Missing products cost 0.
	costs := make(map[string]decimal.Decimal, len(inventory))
	for _, item := range inventory {
		costs[item.ProductID] = item.CostPrice
	}

	summary := Summary{
		CategoryBreakdown: map[string]decimal.Decimal{},
		DailyTrend:        map[string]decimal.Decimal{},
		TopProducts:       []ProductSales{},
	}

	categoryTotals := map[string]decimal.Decimal{}
	quantityByProduct := map[string]int{}
	var productOrder []string // first-encounter order keeps ranking ties stable

	for _, tx := range transactions {
		if tx.Timestamp < startMs || tx.Timestamp > endMs {
			continue
		}
		if filter.Salesperson != "" && tx.CreatorName != filter.Salesperson {
			continue
		}
		if filter.Category != "" && !hasCategory(tx.Items, filter.Category) {
			continue
		}

		summary.TransactionCount++
		day := time.UnixMilli(tx.Timestamp).In(loc).Format("2006-01-02")

		for _, line := range tx.Items {
			qty := decimal.NewFromInt(int64(line.Quantity))

			discount := line.DiscountAmount
			if line.IsPercentageDiscount {
				discount = line.UnitPrice.Mul(line.DiscountAmount).Div(oneHundred)
			}
			net := line.UnitPrice.Sub(discount) // not clamped, revenue may go negative
			lineRevenue := net.Mul(qty)

			// A loss-making line contributes exactly zero profit, never negative.
			lineProfit := net.Sub(costs[line.ProductID]).Mul(qty)
			if lineProfit.IsNegative() {
				lineProfit = decimal.Zero
			}

			summary.TotalRevenue = summary.TotalRevenue.Add(lineRevenue)
			summary.TotalProfit = summary.TotalProfit.Add(lineProfit)
			categoryTotals[line.Category] = categoryTotals[line.Category].Add(lineRevenue)
			summary.DailyTrend[day] = summary.DailyTrend[day].Add(lineRevenue)

			if _, seen := quantityByProduct[line.ProductName]; !seen {
				productOrder = append(productOrder, line.ProductName)
			}
			quantityByProduct[line.ProductName] += line.Quantity
		}
	}

	// Categories that netted out to zero or a loss are not worth a chart slice.
	for category, total := range categoryTotals {
		if total.IsPositive() {
			summary.CategoryBreakdown[category] = total
		}
	}

	ranking := make([]ProductSales, 0, len(productOrder))
	for _, name := range productOrder {
		ranking = append(ranking, ProductSales{ProductName: name, QuantitySold: quantityByProduct[name]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].QuantitySold > ranking[j].QuantitySold
	})
	if len(ranking) > topProductsLimit {
		ranking = ranking[:topProductsLimit]
	}
	summary.TopProducts = ranking

	return summary
}

func hasCategory(items []LineItem, category string) bool {
	for _, line := range items {
		if line.Category == category {
			return true
		}
	}
	return false
}
