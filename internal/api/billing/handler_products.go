package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ordopro-backend/database"
	"ordopro-backend/internal/domain/billing"
)

type ProductInput struct {
	Name           string `json:"name" binding:"required"`
	ProductID      string `json:"product_id" binding:"required"`
	MonthlyPriceID string `json:"monthly_price_id" binding:"required"`
	AnnualPriceID  string `json:"annual_price_id" binding:"required"`
}

// Staff-only catalog management; regular users never hit these routes.

func ListProducts(c *gin.Context) {
	var products []billing.StripeProduct
	if err := database.DB.Order("name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	var product billing.StripeProduct
	if err := database.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := billing.StripeProduct{
		Name:           input.Name,
		ProductID:      input.ProductID,
		MonthlyPriceID: input.MonthlyPriceID,
		AnnualPriceID:  input.AnnualPriceID,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func UpdateProduct(c *gin.Context) {
	var product billing.StripeProduct
	if err := database.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product.Name = input.Name
	product.ProductID = input.ProductID
	product.MonthlyPriceID = input.MonthlyPriceID
	product.AnnualPriceID = input.AnnualPriceID
	if err := database.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func DeleteProduct(c *gin.Context) {
	var product billing.StripeProduct
	if err := database.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err := database.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.Status(http.StatusNoContent)
}
