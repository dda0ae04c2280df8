package handlers

import (
	"net/http"
	"sort"

	"shoppos/internal/database"
	"shoppos/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TrendPoint is one day of the revenue chart.
type TrendPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ReportResponse wraps the engine's summary for the frontend: the daily
// trend map becomes a date-sorted array so charts can consume it directly.
type ReportResponse struct {
	PeriodStart       string                     `json:"period_start"`
	PeriodEnd         string                     `json:"period_end"`
	TotalRevenue      decimal.Decimal            `json:"total_revenue"`
	TotalProfit       decimal.Decimal            `json:"total_profit"`
	TransactionCount  int                        `json:"transaction_count"`
	CategoryBreakdown map[string]decimal.Decimal `json:"category_breakdown"`
	DailyTrend        []TrendPoint               `json:"daily_trend"`
	TopProducts       []report.ProductSales      `json:"top_products"`
}

// --- GET: /api/reports ---
// Fetches fresh snapshots and runs the report engine over them. If either
// fetch fails we surface that error instead of reporting over missing data.
func GetSalesReport(c *gin.Context) {
	shopID := c.MustGet("shopID").(string)

	filter, err := report.ParseFilter(
		c.Query("start"),
		c.Query("end"),
		c.Query("category"),
		c.Query("salesperson"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transactions, err := database.ListSales(shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	inventory, err := database.ListInventoryItems(shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	summary := report.Compute(transactions, inventory, filter)

	trend := make([]TrendPoint, 0, len(summary.DailyTrend))
	for day, revenue := range summary.DailyTrend {
		trend = append(trend, TrendPoint{Date: day, Revenue: revenue})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })

	c.JSON(http.StatusOK, ReportResponse{
		PeriodStart:       filter.Start.Format("2006-01-02"),
		PeriodEnd:         filter.End.Format("2006-01-02"),
		TotalRevenue:      summary.TotalRevenue,
		TotalProfit:       summary.TotalProfit,
		TransactionCount:  summary.TransactionCount,
		CategoryBreakdown: summary.CategoryBreakdown,
		DailyTrend:        trend,
		TopProducts:       summary.TopProducts,
	})
}
