package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting dispatch
	OrderStatusDispatched OrderStatus = "dispatched" // handed to the courier
	OrderStatusDelivered  OrderStatus = "delivered"  // customer received the items
	OrderStatusCancelled  OrderStatus = "cancelled"  // cancelled before dispatch
)

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderRef        string      `gorm:"uniqueIndex;not null" json:"orderRef"`
	UserID          uint        `gorm:"not null;index" json:"user"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"cart"`
	TotalAmount     float64     `json:"totalAmount"`
	TotalItems      int         `json:"totalItems"`
	PaymentMethod   string      `gorm:"not null" json:"paymentMethod"`
	PaymentRef      string      `json:"paymentRef,omitempty"` // gateway order id, when paid online
	SelectedAddress Address     `gorm:"serializer:json" json:"selectedAddress"`
	Status          OrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderItem is the snapshot of one cart line at checkout time. Rows are
// written once at order creation and never updated.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `gorm:"not null" json:"-"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `json:"unitPrice"` // discounted price at order time
}
