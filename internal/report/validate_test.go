package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStrictAcceptsValidInput(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	transactions := []Transaction{chipsSale(millis(2026, time.March, 15, 12, 0, 0, 0))}

	summary, err := ComputeStrict(transactions, nil, utcFilter(day, day))

	require.NoError(t, err)
	assert.Equal(t, Compute(transactions, nil, utcFilter(day, day)), summary)
}

func TestComputeStrictRejectsNegativeQuantity(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	tx := chipsSale(millis(2026, time.March, 15, 12, 0, 0, 0))
	tx.Items[0].Quantity = -1

	_, err := ComputeStrict([]Transaction{tx}, nil, utcFilter(day, day))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 1)
	assert.Contains(t, verr.Problems[0], "negative quantity")
	assert.Contains(t, verr.Problems[0], tx.ID)
}

func TestComputeStrictListsEveryOffender(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	bad1 := chipsWithID("bad-qty", millis(2026, time.March, 15, 10, 0, 0, 0))
	bad1.Items[0].Quantity = -3
	bad2 := chipsWithID("bad-discount", millis(2026, time.March, 15, 11, 0, 0, 0))
	bad2.Items[0].DiscountAmount = dec("-5.00")

	_, err := ComputeStrict([]Transaction{bad1, bad2}, nil, utcFilter(day, day))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 2)
	assert.Contains(t, verr.Error(), "bad-qty")
	assert.Contains(t, verr.Error(), "bad-discount")
}

func TestComputeStrictPermissivePathUnchanged(t *testing.T) {
	// The default Compute stays permissive: the same negative quantity that
	// strict mode rejects flows through arithmetically.
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	tx := chipsSale(millis(2026, time.March, 15, 12, 0, 0, 0))
	tx.Items[0].Quantity = -1

	summary := Compute([]Transaction{tx}, nil, utcFilter(day, day))

	assert.True(t, summary.TotalRevenue.Equal(dec("-9.00")), "revenue %s", summary.TotalRevenue)
}
