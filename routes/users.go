package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/satenderkumar11/BuzzBasket/controllers/user"
	"github.com/satenderkumar11/BuzzBasket/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the token-protected profile endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	users := r.Group("/users")
	users.Use(middleware.VerifyToken)
	{
		users.GET("/:id", userControllers.GetUserByID(db))
		users.PATCH("/:id", userControllers.UpdateUser(db))
	}
}
