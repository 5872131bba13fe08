package routes

import (
	"github.com/gin-gonic/gin"
	authControllers "github.com/satenderkumar11/BuzzBasket/controllers/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the public "/auth/*" endpoints (no middleware).
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", authControllers.Signup(db))
		authGroup.POST("/login", authControllers.Login(db))
		authGroup.GET("/getUserByToken", authControllers.GetUserByToken(db))
		authGroup.GET("/logout", authControllers.Logout())
	}
}
