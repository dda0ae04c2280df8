package handlers

import (
	"fmt"
	"net/http"
	"time"

	"shoppos/internal/database"
	"shoppos/internal/models"
	"shoppos/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// SaleRequest defines what the frontend sends at checkout. Discounts are
// per line: either an absolute amount or a percentage of the unit price.
type SaleRequest struct {
	Items []struct {
		ProductID            string          `json:"product_id" binding:"required"`
		Quantity             int             `json:"quantity" binding:"required"`
		DiscountAmount       decimal.Decimal `json:"discount_amount"`
		IsPercentageDiscount bool            `json:"is_percentage_discount"`
	} `json:"items" binding:"required"`
}

func ProcessSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	// Creator info comes from the token (set by Middleware)
	userID := c.MustGet("userID").(string)
	username := c.MustGet("username").(string)
	shopID := c.MustGet("shopID").(string)

	// 1. Start a Database Transaction (ACID Safety)
	tx := database.DB.Begin()

	totalAmount := decimal.Zero
	var saleItems []models.SaleItem

	// 2. Loop through cart items
	for _, item := range req.Items {
		var product models.Product

		// Lock the row to prevent race conditions
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("shop_id = ?", shopID).
			First(&product, "id = ?", item.ProductID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product %s not found", item.ProductID)})
			return
		}

		// Check Stock
		if product.StockQuantity < item.Quantity {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Insufficient stock for %s", product.Name)})
			return
		}

		// Deduct Stock
		product.StockQuantity -= item.Quantity
		if err := tx.Save(&product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}

		// Running total uses the same discount rule as the report engine
		discount := item.DiscountAmount
		if item.IsPercentageDiscount {
			discount = product.Price.Mul(item.DiscountAmount).Div(decimal.NewFromInt(100))
		}
		netUnitPrice := product.Price.Sub(discount)
		totalAmount = totalAmount.Add(netUnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))

		// Freeze the product snapshot into the line item
		saleItems = append(saleItems, models.SaleItem{
			ID:                   uuid.NewString(),
			ProductID:            product.ID,
			ProductName:          product.Name,
			SKU:                  product.SKU,
			Category:             product.Category,
			Quantity:             item.Quantity,
			UnitPrice:            product.Price,
			DiscountAmount:       item.DiscountAmount,
			IsPercentageDiscount: item.IsPercentageDiscount,
		})
	}

	// 3. Create the Sale Header
	sale := models.Sale{
		ID:          uuid.NewString(),
		ShopID:      shopID,
		CreatorID:   userID,
		CreatorName: username,
		Timestamp:   time.Now().UnixMilli(),
		Status:      string(report.StatusCompleted),
		Items:       saleItems, // GORM will automatically insert these!
	}

	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale record"})
		return
	}

	// 4. Commit Transaction
	tx.Commit()

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale successful!",
		"sale_id": sale.ID,
		"total":   totalAmount,
	})
}

// --- GET: Sales history, newest first ---
// Unlike the report engine, this list DOES support a status filter.
func ListSales(c *gin.Context) {
	shopID := c.MustGet("shopID").(string)

	query := database.DB.Preload("Items").Where("shop_id = ?", shopID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var sales []models.Sale
	if err := query.Order("timestamp desc").Limit(50).Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, sales)
}

// --- POST: Reverse a sale ---
// The only mutation a sale ever sees: flip the status to Reversed and put
// the stock back on the shelf.
func ReverseSale(c *gin.Context) {
	shopID := c.MustGet("shopID").(string)
	id := c.Param("id")

	tx := database.DB.Begin()

	var sale models.Sale
	if err := tx.Preload("Items").Where("shop_id = ?", shopID).First(&sale, "id = ?", id).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	if sale.Status == string(report.StatusReversed) {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sale is already reversed"})
		return
	}

	// Restock every line. A deleted product just skips the restock.
	for _, item := range sale.Items {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", item.ProductID).Error; err != nil {
			continue
		}
		product.StockQuantity += item.Quantity
		if err := tx.Save(&product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock"})
			return
		}
	}

	if err := tx.Model(&sale).Update("status", string(report.StatusReversed)).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse sale"})
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Sale reversed", "sale_id": sale.ID})
}
