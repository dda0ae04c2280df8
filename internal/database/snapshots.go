package database

import (
	"shoppos/internal/models"
	"shoppos/internal/report"
)

// The report engine is a pure function over immutable snapshots, so the
// persistence layer's whole job here is fetching consistent point-in-time
// copies and converting them to the engine's value types. A fetch failure
// comes back as an error, never as an empty slice — the caller must not run
// a report over coerced-empty data.

// ListSales returns every sale for a shop, line items included.
func ListSales(shopID string) ([]report.Transaction, error) {
	var sales []models.Sale
	if err := DB.Preload("Items").Where("shop_id = ?", shopID).Find(&sales).Error; err != nil {
		return nil, err
	}

	transactions := make([]report.Transaction, 0, len(sales))
	for _, sale := range sales {
		items := make([]report.LineItem, 0, len(sale.Items))
		for _, item := range sale.Items {
			items = append(items, report.LineItem{
				ProductID:            item.ProductID,
				ProductName:          item.ProductName,
				SKU:                  item.SKU,
				Category:             item.Category,
				Quantity:             item.Quantity,
				UnitPrice:            item.UnitPrice,
				DiscountAmount:       item.DiscountAmount,
				IsPercentageDiscount: item.IsPercentageDiscount,
			})
		}
		transactions = append(transactions, report.Transaction{
			ID:          sale.ID,
			ShopID:      sale.ShopID,
			CreatorID:   sale.CreatorID,
			CreatorName: sale.CreatorName,
			Timestamp:   sale.Timestamp,
			Status:      report.Status(sale.Status),
			Items:       items,
		})
	}
	return transactions, nil
}

// ListInventoryItems returns the cost lookup for a shop's products.
func ListInventoryItems(shopID string) ([]report.InventoryCost, error) {
	var products []models.Product
	if err := DB.Where("shop_id = ?", shopID).Find(&products).Error; err != nil {
		return nil, err
	}

	costs := make([]report.InventoryCost, 0, len(products))
	for _, p := range products {
		costs = append(costs, report.InventoryCost{
			ProductID: p.ID,
			CostPrice: p.CostPrice,
		})
	}
	return costs, nil
}
