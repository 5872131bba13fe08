package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/satenderkumar11/BuzzBasket/controllers/order"
	"github.com/satenderkumar11/BuzzBasket/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers the "/orders/*" endpoints behind the token
// middleware, plus the API-key-gated websocket feed for order dashboards.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/orders/ws", middleware.ValidateAPIKey, orderControllers.OrderWebSocketHandler)

	orders := r.Group("/orders")
	orders.Use(middleware.VerifyToken)
	{
		orders.POST("", orderControllers.CreateOrder(db))
		orders.GET("", orderControllers.GetAllOrders(db))
		orders.GET("/user/:userId", orderControllers.GetOrdersByUser(db))
		orders.GET("/:id", orderControllers.GetOrderByID(db))
		orders.PATCH("/:id", orderControllers.UpdateOrder(db))
		orders.DELETE("/:id", orderControllers.DeleteOrder(db))
	}
}
