package orderControllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/satenderkumar11/BuzzBasket/models"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	PaymentMethod   string         `json:"paymentMethod" binding:"required"`
	SelectedAddress models.Address `json:"selectedAddress" binding:"required"`
	PaymentRef      string         `json:"paymentRef"`
	Status          string         `json:"status"`
}

type UpdateOrderRequest struct {
	Status          *string         `json:"status"`
	PaymentMethod   *string         `json:"paymentMethod"`
	SelectedAddress *models.Address `json:"selectedAddress"`
}

var sortColumns = map[string]string{
	"totalAmount": "total_amount",
	"totalItems":  "total_items",
	"status":      "status",
	"createdAt":   "created_at",
}

// mapOrderStatus validates a client-supplied status string.
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusDispatched):
		return models.OrderStatusDispatched, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// generateOrderRef yields a unique, human-sortable order reference.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

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

// POST /orders
//
// Snapshots the caller's cart into an immutable order. Totals are recomputed
// here from current product prices; whatever the client sends for
// totalAmount/totalItems is ignored. The cart is not cleared server-side --
// the frontend clears it as the last checkout step.
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		status := models.OrderStatusPending
		if req.Status != "" {
			mapped, err := mapOrderStatus(req.Status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status = mapped
		}

		var cart models.Cart
		if err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		if len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		var totalAmount float64
		var totalItems int
		orderItems := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			unitPrice := item.Product.DiscountedPrice()
			totalAmount += unitPrice * float64(item.Quantity)
			totalItems += item.Quantity
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
			})
		}

		order := models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Items:           orderItems,
			TotalAmount:     math.Round(totalAmount*100) / 100,
			TotalItems:      totalItems,
			PaymentMethod:   req.PaymentMethod,
			PaymentRef:      req.PaymentRef,
			SelectedAddress: req.SelectedAddress,
			Status:          status,
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&order).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		if err := db.Preload("Items.Product").First(&order, order.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created order"})
			return
		}

		broadcastNewOrder(order)

		c.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": "Order placed successfully",
			"order":   order,
		})
	}
}

// GET /orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Order{}).Preload("Items.Product")

		var total int64
		if err := db.Model(&models.Order{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}

		if sortField := c.Query("_sort"); sortField != "" {
			column, ok := sortColumns[sortField]
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid _sort field"})
				return
			}
			order := strings.ToLower(c.DefaultQuery("_order", "asc"))
			if order != "asc" && order != "desc" {
				order = "asc"
			}
			query = query.Order(column + " " + order)
		} else {
			query = query.Order("created_at DESC")
		}

		if pageStr, limitStr := c.Query("_page"), c.Query("_limit"); pageStr != "" && limitStr != "" {
			page, err1 := strconv.Atoi(pageStr)
			limit, err2 := strconv.Atoi(limitStr)
			if err1 != nil || err2 != nil || page < 1 || limit < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination params"})
				return
			}
			query = query.Offset((page - 1) * limit).Limit(limit)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.Header("X-Total-Count", strconv.FormatInt(total, 10))
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/user/:userId
func GetOrdersByUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// findOrder resolves the :id path param, which may be a numeric id or an
// order ref.
func findOrder(db *gorm.DB, idParam string, order *models.Order) error {
	if n, err := strconv.ParseUint(idParam, 10, 64); err == nil {
		return db.First(order, n).Error
	}
	return db.Where("order_ref = ?", idParam).First(order).Error
}

// GET /orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var order models.Order
		if err := findOrder(db.Preload("Items.Product"), id, &order); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Successfully fetched order by Id",
			"order":   order,
		})
	}
}

// PATCH /orders/:id
//
// Administrative overwrite of status / payment method / address. The item
// snapshot is immutable after creation and cannot be patched.
func UpdateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var order models.Order
		if err := findOrder(db, id, &order); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Status != nil {
			newStatus, err := mapOrderStatus(*req.Status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			order.Status = newStatus
		}
		if req.PaymentMethod != nil {
			order.PaymentMethod = *req.PaymentMethod
		}
		if req.SelectedAddress != nil {
			order.SelectedAddress = *req.SelectedAddress
		}

		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		if err := db.Preload("Items.Product").First(&order, order.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// DELETE /orders/:id
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var order models.Order
		if err := findOrder(db, id, &order); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Order deleted successfully"})
	}
}
