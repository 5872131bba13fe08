package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/satenderkumar11/BuzzBasket/models"
	"gorm.io/gorm"
)

// UpdateProductInput holds the patchable product fields; nil means "leave as is".
type UpdateProductInput struct {
	Title              *string   `json:"title"`
	Description        *string   `json:"description"`
	Price              *float64  `json:"price"`
	DiscountPercentage *float64  `json:"discountPercentage"`
	Rating             *float64  `json:"rating"`
	Stock              *int      `json:"stock"`
	Brand              *string   `json:"brand"`
	Category           *string   `json:"category"`
	Thumbnail          *string   `json:"thumbnail"`
	Images             *[]string `json:"images"`
	Deleted            *bool     `json:"deleted"`
}

// PATCH /products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Title != nil {
			product.Title = *input.Title
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.DiscountPercentage != nil {
			product.DiscountPercentage = *input.DiscountPercentage
		}
		if input.Rating != nil {
			product.Rating = *input.Rating
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.Brand != nil {
			product.Brand = *input.Brand
		}
		if input.Category != nil {
			product.Category = *input.Category
		}
		if input.Thumbnail != nil {
			product.Thumbnail = *input.Thumbnail
		}
		if input.Images != nil {
			product.Images = *input.Images
		}
		if input.Deleted != nil {
			product.Deleted = *input.Deleted
		}

		if err := product.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Error", "details": err.Error()})
			return
		}

		if err := db.Save(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A product with this title already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Product is successfully updated",
			"product": product,
		})
	}
}
