package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/satenderkumar11/BuzzBasket/controllers/cart"
	"github.com/satenderkumar11/BuzzBasket/middleware"
	"gorm.io/gorm"
)

// SetupCartRoutes registers the "/cart/*" endpoints. All user-facing cart
// operations require the token cookie; the full listing is admin-only.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/cart")
	{
		cart.GET("/all", middleware.ValidateAPIKey, cartControllers.GetAllCarts(db))

		cart.GET("", middleware.VerifyToken, cartControllers.GetUserCart(db))
		cart.POST("", middleware.VerifyToken, cartControllers.HandleQuantityInCart(db))
		cart.DELETE("", middleware.VerifyToken, cartControllers.DeleteFromCart(db))
		cart.DELETE("/delete", middleware.VerifyToken, cartControllers.ClearUserCart(db))
		cart.PATCH("/:id", middleware.VerifyToken, cartControllers.UpdateCart(db))
	}
}
