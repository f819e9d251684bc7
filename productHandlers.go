package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/dashboard_backend/config"
	"github.com/mmdatafocus/dashboard_backend/models"
	"gorm.io/gorm"
)

type productSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Sku  string `json:"sku"`
}

type productRequest struct {
	Name string `json:"name" binding:"required"`
	Sku  string `json:"sku"`
}

func listProductsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []productSummary
		err := config.GetDB().WithContext(c.Request.Context()).
			Model(&models.Product{}).
			Select("id", "name", "sku").
			Order("created_at desc").
			Scan(&products).Error
		if err != nil {
			config.LogError(config.GetLogger(), "productHandlers.go", "listProductsHandler", "find products", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func createProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		sku := strings.TrimSpace(req.Sku)
		if sku == "" {
			sku = models.NormalizeSku(req.Name)
		}

		product := models.Product{Name: strings.TrimSpace(req.Name), Sku: sku}
		if err := config.GetDB().WithContext(c.Request.Context()).Create(&product).Error; err != nil {
			config.LogError(config.GetLogger(), "productHandlers.go", "createProductHandler", "create product", req, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

func updateProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		db := config.GetDB()
		var product models.Product
		if err := db.WithContext(c.Request.Context()).Take(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			config.LogError(config.GetLogger(), "productHandlers.go", "updateProductHandler", "find product", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		product.Name = strings.TrimSpace(req.Name)
		if sku := strings.TrimSpace(req.Sku); sku != "" {
			product.Sku = sku
		}
		if err := db.WithContext(c.Request.Context()).Save(&product).Error; err != nil {
			config.LogError(config.GetLogger(), "productHandlers.go", "updateProductHandler", "save product", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func deleteProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		result := config.GetDB().WithContext(c.Request.Context()).Delete(&models.Product{}, id)
		if result.Error != nil {
			config.LogError(config.GetLogger(), "productHandlers.go", "deleteProductHandler", "delete product", id, result.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
