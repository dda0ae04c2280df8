package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"shoppos/internal/database"
	"shoppos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- GET: List all products for the caller's shop ---
func GetProducts(c *gin.Context) {
	shopID := c.MustGet("shopID").(string)

	var products []models.Product
	result := database.DB.Where("shop_id = ?", shopID).Find(&products)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// --- GET: Look up a single product by SKU (barcode scan) ---
func ScanProduct(c *gin.Context) {
	shopID := c.MustGet("shopID").(string)
	sku := c.Param("sku")

	var product models.Product
	if err := database.DB.Where("shop_id = ? AND sku = ?", shopID, sku).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No product with that SKU"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// --- POST: Add a new product ---
func AddProduct(c *gin.Context) {
	var newProduct models.Product

	// 1. Parse JSON Input
	if err := c.ShouldBindJSON(&newProduct); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// 2. Stamp identity and tenancy server-side
	newProduct.ID = uuid.NewString()
	newProduct.ShopID = c.MustGet("shopID").(string)

	// 3. Save to DB
	if err := database.DB.Create(&newProduct).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, newProduct)
}

// --- PUT: Update Price, Cost or Stock ---
func UpdateProduct(c *gin.Context) {
	shopID := c.MustGet("shopID").(string)
	id := c.Param("id")

	// 1. Find existing product (scoped to the shop)
	var product models.Product
	if err := database.DB.Where("shop_id = ?", shopID).First(&product, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// 2. Update fields based on JSON input
	// We use a map so we only update what was sent (partial update)
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	delete(updateData, "id")
	delete(updateData, "shop_id")

	// 3. Save updates
	if err := database.DB.Model(&product).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// --- DELETE: Remove a product ---
// Historical sales keep their own name/price/category snapshots, so deleting
// a product never corrupts old reports (its cost basis just falls back to 0).
func DeleteProduct(c *gin.Context) {
	shopID := c.MustGet("shopID").(string)
	id := c.Param("id")

	result := database.DB.Where("shop_id = ?", shopID).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete product"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// --- UPLOAD: Handle Image Files ---
func UploadImage(c *gin.Context) {
	// 1. Get the file from the request
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// 2. Generate a safe unique filename
	// e.g., "167890123_burger.jpg"
	filename := fmt.Sprintf("%d_%s", time.Now().Unix(), file.Filename)
	filepath := "./uploads/" + filename

	// 3. Save the file to the 'uploads' folder
	if err := c.SaveUploadedFile(file, filepath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	// Get the Base URL from .env (e.g., http://localhost:8080 or https://your-site.com)
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	fullURL := baseURL + "/uploads/" + filename
	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"url":     fullURL,
	})
}
