package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func millis(year int, month time.Month, day, hour, min, sec, ms int) int64 {
	return time.Date(year, month, day, hour, min, sec, ms*int(time.Millisecond), time.UTC).UnixMilli()
}

func utcFilter(start, end time.Time) Filter {
	return Filter{Start: start, End: end, Location: time.UTC}
}

// Fixture helpers keep the tests focused on prices and dates.

func chipsSale(ts int64) Transaction {
	return Transaction{
		ID:          "sale-1",
		ShopID:      "shop-1",
		CreatorName: "alice",
		Timestamp:   ts,
		Status:      StatusCompleted,
		Items: []LineItem{
			{
				ProductID:            "prod-chips",
				ProductName:          "Chips",
				Category:             "Snacks",
				Quantity:             3,
				UnitPrice:            dec("10.00"),
				DiscountAmount:       dec("10"),
				IsPercentageDiscount: true,
			},
		},
	}
}

func TestComputeEmptyInput(t *testing.T) {
	filter := utcFilter(
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
	)

	summary := Compute(nil, nil, filter)

	assert.True(t, summary.TotalRevenue.IsZero())
	assert.True(t, summary.TotalProfit.IsZero())
	assert.Equal(t, 0, summary.TransactionCount)
	assert.Empty(t, summary.CategoryBreakdown)
	assert.Empty(t, summary.DailyTrend)
	assert.Empty(t, summary.TopProducts)
}

func TestComputeDateBoundariesInclusive(t *testing.T) {
	start := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

	transactions := []Transaction{
		chipsWithID("at-start", millis(2026, time.March, 10, 0, 0, 0, 0)),
		chipsWithID("at-end", millis(2026, time.March, 12, 23, 59, 59, 999)),
		chipsWithID("before", millis(2026, time.March, 9, 23, 59, 59, 999)),
		chipsWithID("after", millis(2026, time.March, 13, 0, 0, 0, 0)),
	}

	summary := Compute(transactions, nil, utcFilter(start, end))

	assert.Equal(t, 2, summary.TransactionCount)
	// 27.00 per included sale: 3 * (10.00 - 10%)
	assert.True(t, summary.TotalRevenue.Equal(dec("54.00")), "got %s", summary.TotalRevenue)
}

func chipsWithID(id string, ts int64) Transaction {
	tx := chipsSale(ts)
	tx.ID = id
	return tx
}

func TestComputeRevenueAndProfitLiteralExample(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	tx := chipsSale(millis(2026, time.March, 15, 12, 0, 0, 0))
	inventory := []InventoryCost{{ProductID: "prod-chips", CostPrice: dec("5.00")}}

	summary := Compute([]Transaction{tx}, inventory, utcFilter(day, day))

	// netUnitPrice = 10.00 - 10% = 9.00, revenue = 27.00, profit = (9-5)*3 = 12.00
	assert.True(t, summary.TotalRevenue.Equal(dec("27.00")), "revenue %s", summary.TotalRevenue)
	assert.True(t, summary.TotalProfit.Equal(dec("12.00")), "profit %s", summary.TotalProfit)
	assert.Equal(t, 1, summary.TransactionCount)

	require.Contains(t, summary.CategoryBreakdown, "Snacks")
	assert.True(t, summary.CategoryBreakdown["Snacks"].Equal(dec("27.00")))

	require.Contains(t, summary.DailyTrend, "2026-03-15")
	assert.True(t, summary.DailyTrend["2026-03-15"].Equal(dec("27.00")))
}

func TestComputeLossMakingLineFloorsAtZero(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	tx := chipsSale(millis(2026, time.March, 15, 12, 0, 0, 0))
	inventory := []InventoryCost{{ProductID: "prod-chips", CostPrice: dec("20.00")}}

	summary := Compute([]Transaction{tx}, inventory, utcFilter(day, day))

	assert.True(t, summary.TotalProfit.IsZero(), "profit %s", summary.TotalProfit)
	// Revenue is untouched by the profit floor.
	assert.True(t, summary.TotalRevenue.Equal(dec("27.00")))
}

func TestComputeMissingCostDefaultsToZero(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	tx := chipsSale(millis(2026, time.March, 15, 12, 0, 0, 0))

	summary := Compute([]Transaction{tx}, nil, utcFilter(day, day))

	// No inventory entry: the whole net price counts as profit.
	assert.True(t, summary.TotalProfit.Equal(dec("27.00")), "profit %s", summary.TotalProfit)
}

func TestComputeCategoryBreakdownDropsNonPositive(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	tx := Transaction{
		ID:        "sale-free",
		Timestamp: millis(2026, time.March, 15, 9, 0, 0, 0),
		Status:    StatusCompleted,
		Items: []LineItem{
			{ProductID: "p1", ProductName: "Sample", Category: "Freebies", Quantity: 2, UnitPrice: dec("0"), DiscountAmount: dec("0")},
			{ProductID: "p2", ProductName: "Soda", Category: "Drinks", Quantity: 1, UnitPrice: dec("2.50"), DiscountAmount: dec("0")},
		},
	}

	summary := Compute([]Transaction{tx}, nil, utcFilter(day, day))

	assert.NotContains(t, summary.CategoryBreakdown, "Freebies")
	require.Contains(t, summary.CategoryBreakdown, "Drinks")
	assert.True(t, summary.CategoryBreakdown["Drinks"].Equal(dec("2.50")))
}

func TestComputeTopProductsOrderAndCap(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	quantities := []int{50, 40, 30, 20, 10, 5}
	names := []string{"Rice", "Beans", "Oil", "Sugar", "Salt", "Pepper"}

	var items []LineItem
	for i, name := range names {
		items = append(items, LineItem{
			ProductID:   name,
			ProductName: name,
			Category:    "Grocery",
			Quantity:    quantities[i],
			UnitPrice:   dec("1.00"),
		})
	}
	tx := Transaction{ID: "bulk", Timestamp: millis(2026, time.March, 15, 10, 0, 0, 0), Status: StatusCompleted, Items: items}

	summary := Compute([]Transaction{tx}, nil, utcFilter(day, day))

	require.Len(t, summary.TopProducts, 5)
	want := []ProductSales{
		{ProductName: "Rice", QuantitySold: 50},
		{ProductName: "Beans", QuantitySold: 40},
		{ProductName: "Oil", QuantitySold: 30},
		{ProductName: "Sugar", QuantitySold: 20},
		{ProductName: "Salt", QuantitySold: 10},
	}
	assert.Equal(t, want, summary.TopProducts)
}

func TestComputeTopProductsTieKeepsEncounterOrder(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	tx := Transaction{
		ID:        "tie",
		Timestamp: millis(2026, time.March, 15, 10, 0, 0, 0),
		Status:    StatusCompleted,
		Items: []LineItem{
			{ProductName: "First", Quantity: 7, UnitPrice: dec("1.00"), Category: "A"},
			{ProductName: "Second", Quantity: 7, UnitPrice: dec("1.00"), Category: "A"},
			{ProductName: "Third", Quantity: 9, UnitPrice: dec("1.00"), Category: "A"},
		},
	}

	summary := Compute([]Transaction{tx}, nil, utcFilter(day, day))

	require.Len(t, summary.TopProducts, 3)
	assert.Equal(t, "Third", summary.TopProducts[0].ProductName)
	assert.Equal(t, "First", summary.TopProducts[1].ProductName)
	assert.Equal(t, "Second", summary.TopProducts[2].ProductName)
}

func TestComputeIdempotent(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	transactions := []Transaction{chipsSale(millis(2026, time.March, 15, 12, 0, 0, 0))}
	inventory := []InventoryCost{{ProductID: "prod-chips", CostPrice: dec("5.00")}}
	filter := utcFilter(day, day)

	first := Compute(transactions, inventory, filter)
	second := Compute(transactions, inventory, filter)

	assert.Equal(t, first, second)
}

func TestComputeFilterComposition(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	ts := millis(2026, time.March, 15, 12, 0, 0, 0)

	snackLine := LineItem{ProductID: "p1", ProductName: "Chips", Category: "Snacks", Quantity: 1, UnitPrice: dec("10.00")}
	drinkLine := LineItem{ProductID: "p2", ProductName: "Soda", Category: "Drinks", Quantity: 1, UnitPrice: dec("4.00")}

	transactions := []Transaction{
		{ID: "match", CreatorName: "alice", Timestamp: ts, Status: StatusCompleted, Items: []LineItem{snackLine}},
		{ID: "wrong-person", CreatorName: "bob", Timestamp: ts, Status: StatusCompleted, Items: []LineItem{snackLine}},
		{ID: "wrong-category", CreatorName: "alice", Timestamp: ts, Status: StatusCompleted, Items: []LineItem{drinkLine}},
	}

	filter := utcFilter(day, day)
	filter.Category = "Snacks"
	filter.Salesperson = "alice"

	summary := Compute(transactions, nil, filter)

	assert.Equal(t, 1, summary.TransactionCount)
	assert.True(t, summary.TotalRevenue.Equal(dec("10.00")), "revenue %s", summary.TotalRevenue)
	assert.NotContains(t, summary.CategoryBreakdown, "Drinks")
	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, "Chips", summary.TopProducts[0].ProductName)
}

func TestComputeIncludesReversedTransactions(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	completed := chipsWithID("ok", millis(2026, time.March, 15, 10, 0, 0, 0))
	reversed := chipsWithID("undone", millis(2026, time.March, 15, 11, 0, 0, 0))
	reversed.Status = StatusReversed

	summary := Compute([]Transaction{completed, reversed}, nil, utcFilter(day, day))

	// No status filter in the engine: callers pre-filter if they want
	// Completed-only KPIs.
	assert.Equal(t, 2, summary.TransactionCount)
	assert.True(t, summary.TotalRevenue.Equal(dec("54.00")))
}

func TestComputeAbsoluteDiscountAndNegativeNet(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	tx := Transaction{
		ID:        "over-discounted",
		Timestamp: millis(2026, time.March, 15, 12, 0, 0, 0),
		Status:    StatusCompleted,
		Items: []LineItem{
			// Absolute discount larger than the price: net goes negative
			// and is not clamped for revenue.
			{ProductID: "p1", ProductName: "Candy", Category: "Snacks", Quantity: 2, UnitPrice: dec("1.00"), DiscountAmount: dec("1.50")},
		},
	}

	summary := Compute([]Transaction{tx}, nil, utcFilter(day, day))

	assert.True(t, summary.TotalRevenue.Equal(dec("-1.00")), "revenue %s", summary.TotalRevenue)
	assert.True(t, summary.TotalProfit.IsZero())
	assert.NotContains(t, summary.CategoryBreakdown, "Snacks")
}

func TestComputeDailyTrendGroupsByCalendarDay(t *testing.T) {
	start := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	transactions := []Transaction{
		chipsWithID("day1-morning", millis(2026, time.March, 14, 8, 0, 0, 0)),
		chipsWithID("day1-evening", millis(2026, time.March, 14, 20, 0, 0, 0)),
		chipsWithID("day2", millis(2026, time.March, 15, 12, 0, 0, 0)),
	}

	summary := Compute(transactions, nil, utcFilter(start, end))

	require.Len(t, summary.DailyTrend, 2)
	assert.True(t, summary.DailyTrend["2026-03-14"].Equal(dec("54.00")))
	assert.True(t, summary.DailyTrend["2026-03-15"].Equal(dec("27.00")))
}

func TestComputeDoesNotMutateInputs(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	tx := chipsSale(millis(2026, time.March, 15, 12, 0, 0, 0))
	transactions := []Transaction{tx}
	inventory := []InventoryCost{{ProductID: "prod-chips", CostPrice: dec("5.00")}}

	_ = Compute(transactions, inventory, utcFilter(day, day))

	assert.Equal(t, chipsSale(tx.Timestamp), transactions[0])
	assert.True(t, inventory[0].CostPrice.Equal(dec("5.00")))
}
