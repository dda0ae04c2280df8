package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User - a staff member operating a terminal
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	ShopID       string    `gorm:"index;size:36" json:"shop_id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'cashier'
	CreatedAt    time.Time `json:"created_at"`
}

// Product - the inventory
type Product struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	ShopID        string          `gorm:"index;size:36" json:"shop_id"`
	Name          string          `json:"name"`
	SKU           string          `gorm:"index;size:64" json:"sku"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(12,2)" json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
}

// Sale - the transaction header. Immutable after checkout except the
// status flip to 'Reversed'.
type Sale struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	ShopID      string     `gorm:"index;size:36" json:"shop_id"`
	CreatorID   string     `gorm:"size:36" json:"creator_id"`
	CreatorName string     `json:"creator_name"`
	Timestamp   int64      `gorm:"index" json:"timestamp"` // epoch millis
	Status      string     `json:"status"`                 // 'Completed', 'Reversed'
	Items       []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem - one line of a sale. Name, SKU and category are copies frozen
// at sale time so a later product rename never rewrites history.
type SaleItem struct {
	ID                   string          `gorm:"primaryKey;size:36" json:"id"`
	SaleID               string          `gorm:"index;size:36" json:"sale_id"`
	ProductID            string          `gorm:"size:36" json:"product_id"`
	ProductName          string          `json:"product_name"`
	SKU                  string          `json:"sku"`
	Category             string          `json:"category"`
	Quantity             int             `json:"quantity"`
	UnitPrice            decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
	DiscountAmount       decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount_amount"`
	IsPercentageDiscount bool            `json:"is_percentage_discount"`
}
