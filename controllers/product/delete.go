package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/satenderkumar11/BuzzBasket/models"
	"gorm.io/gorm"
)

// DELETE /products/:id
//
// Cart lines referencing the product are dropped along with it. Order
// snapshots keep their foreign key, so an ordered product cannot be
// hard-deleted; it can only be hidden via the deleted flag (PATCH).
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			result := tx.Delete(&models.Product{}, id)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			c.JSON(http.StatusConflict, gin.H{"error": "Product appears in existing orders; mark it deleted instead"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Product successfully deleted"})
	}
}
