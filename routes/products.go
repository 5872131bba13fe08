package routes

import (
	"github.com/gin-gonic/gin"
	productControllers "github.com/satenderkumar11/BuzzBasket/controllers/product"
	"github.com/satenderkumar11/BuzzBasket/middleware"
	"gorm.io/gorm"
)

// SetupProductRoutes registers the catalog endpoints: products, categories
// and brands. Browsing is public; the Excel export is API-key protected.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.POST("", productControllers.CreateProduct(db))
		products.GET("/export", middleware.ValidateAPIKey, productControllers.ExportProductsToExcel(db))
		products.GET("/:id", productControllers.GetProductByID(db))
		products.PATCH("/:id", productControllers.UpdateProduct(db))
		products.DELETE("/:id", productControllers.DeleteProduct(db))
	}

	categories := r.Group("/categories")
	{
		categories.GET("", productControllers.GetAllCategories(db))
		categories.POST("", productControllers.CreateCategory(db))
	}

	brands := r.Group("/brands")
	{
		brands.GET("", productControllers.GetAllBrands(db))
		brands.POST("", productControllers.CreateBrand(db))
	}
}
