package authControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/satenderkumar11/BuzzBasket/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const credentialMismatchMsg = "Sorry, this does not match our records. Check your spelling and try again."

type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/signup
func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var existing models.User
		err := db.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sorry, this user already exists."})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing user"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Sorry, this user already exists."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		token, err := NewToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		setTokenCookie(c, token)

		c.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": "User is successfully created and token is generated",
			"user":    user,
		})
	}
}

// POST /auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			// Same message for unknown email and bad password.
			c.JSON(http.StatusUnauthorized, gin.H{"error": credentialMismatchMsg})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": credentialMismatchMsg})
			return
		}

		token, err := NewToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		setTokenCookie(c, token)

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "User successfully logged in",
			"user":    user,
		})
	}
}

// GET /auth/getUserByToken
func GetUserByToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil || tokenString == "" {
			c.Status(http.StatusNoContent)
			return
		}

		userID, err := ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			// Token outlived its user; drop the cookie.
			clearTokenCookie(c)
			c.Status(http.StatusNoContent)
			return
		}

		// Session restore only needs the identity fields, not the full
		// profile with addresses.
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "User details fetched successfully",
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
			},
		})
	}
}

// GET /auth/logout
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		clearTokenCookie(c)
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Successfully logged out",
		})
	}
}
