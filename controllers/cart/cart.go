package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/satenderkumar11/BuzzBasket/models"
	"gorm.io/gorm"
)

type QuantityInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"` // delta; negative values reduce the line
}

type DeleteItemInput struct {
	ProductID uint `json:"productId" binding:"required"`
}

type ReplaceCartInput struct {
	Items []struct {
		ProductID uint `json:"productId" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required"`
}

// currentUserID reads the user id the token middleware stored on the context.
func currentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	id, err := strconv.ParseUint(val.(string), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return uint(id), true
}

// getOrCreateCart lazily creates the user's cart on first fetch or mutation.
func getOrCreateCart(db *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	return cart, err
}

// loadItems returns the cart's line items with products populated.
func loadItems(db *gorm.DB, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Preload("Product").Where("cart_id = ?", cartID).Order("added_at").Find(&items).Error
	if items == nil {
		items = []models.CartItem{}
	}
	return items, err
}

// GET /cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		items, err := loadItems(db, cart.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Cart items fetched successfully",
			"cart":    items,
		})
	}
}

// POST /cart
//
// Merges a quantity delta into the line item for the given product, creating
// the line when absent and removing it when the merged quantity drops to zero
// or below. Read-modify-write on the cart; concurrent requests for the same
// user can race (no locking).
func HandleQuantityInCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid productId is required."})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var item models.CartItem
			err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).First(&item).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if input.Quantity <= 0 {
					// Nothing to remove; quantity must end up positive.
					return nil
				}
				return tx.Create(&models.CartItem{
					CartID:    cart.ID,
					ProductID: product.ID,
					Quantity:  input.Quantity,
					AddedAt:   time.Now(),
				}).Error
			case err != nil:
				return err
			}

			item.Quantity += input.Quantity
			if item.Quantity <= 0 {
				return tx.Delete(&item).Error
			}
			return tx.Save(&item).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating the cart"})
			return
		}

		items, err := loadItems(db, cart.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "success",
			"message":     "Cart updated successfully",
			"updatedCart": items,
		})
	}
}

// DELETE /cart
func DeleteFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input DeleteItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid productId is required"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found for the user"})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in the cart"})
			return
		}

		items, err := loadItems(db, cart.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "success",
			"message":     "Item deleted from the cart successfully",
			"updatedCart": items,
		})
	}
}

// DELETE /cart/delete
//
// Clears every line item; the cart row itself survives for the user's lifetime.
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Cart is successfully cleared", "cart": cart})
	}
}

// PATCH /cart/:id
//
// Replaces a cart's items wholesale, keyed by cart id.
func UpdateCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart ID"})
			return
		}

		var cart models.Cart
		if err := db.First(&cart, cartID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		var input ReplaceCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			for _, in := range input.Items {
				item := models.CartItem{
					CartID:    cart.ID,
					ProductID: in.ProductID,
					Quantity:  in.Quantity,
					AddedAt:   time.Now(),
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		items, err := loadItems(db, cart.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
			return
		}
		cart.Items = items

		c.JSON(http.StatusOK, cart)
	}
}

// GET /cart/all (admin)
func GetAllCarts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var carts []models.Cart
		if err := db.Preload("Items").Preload("Items.Product").Find(&carts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch carts"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "All carts are fetched successfully",
			"data":    carts,
		})
	}
}
