package models

import (
	"errors"
	"math"
	"time"
)

type Product struct {
	ID                 uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title              string   `gorm:"unique;not null" json:"title"`
	Description        string   `gorm:"not null" json:"description"`
	Price              float64  `gorm:"not null" json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `gorm:"default:0" json:"rating"`
	Stock              int      `gorm:"default:0" json:"stock"`
	Brand              string   `gorm:"not null;index" json:"brand"`
	Category           string   `gorm:"not null;index" json:"category"`
	Thumbnail          string   `gorm:"not null" json:"thumbnail"`
	Images             []string `gorm:"serializer:json" json:"images"`
	Deleted            bool     `gorm:"default:false" json:"deleted"`

	Tags                 []string    `gorm:"serializer:json" json:"tags,omitempty"`
	SKU                  string      `json:"sku,omitempty"`
	Weight               float64     `json:"weight,omitempty"`
	Dimensions           *Dimensions `gorm:"serializer:json" json:"dimensions,omitempty"`
	WarrantyInformation  string      `json:"warrantyInformation,omitempty"`
	ShippingInformation  string      `json:"shippingInformation,omitempty"`
	AvailabilityStatus   string      `json:"availabilityStatus,omitempty"`
	Reviews              []Review    `gorm:"serializer:json" json:"reviews,omitempty"`
	ReturnPolicy         string      `json:"returnPolicy,omitempty"`
	MinimumOrderQuantity int         `json:"minimumOrderQuantity,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Review struct {
	Rating        float64   `json:"rating"`
	Comment       string    `json:"comment"`
	Date          time.Time `json:"date"`
	ReviewerName  string    `json:"reviewerName"`
	ReviewerEmail string    `json:"reviewerEmail"`
}

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// DiscountedPrice is the effective unit price after discountPercentage,
// rounded to cents. Order totals are computed from this, never from
// client-supplied amounts.
func (p *Product) DiscountedPrice() float64 {
	price := p.Price * (1 - p.DiscountPercentage/100)
	return math.Round(price*100) / 100
}

// Validate enforces the field constraints the catalog relies on.
func (p *Product) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.Price < 1 {
		return errors.New("price must be at least 1")
	}
	if p.DiscountPercentage != 0 && (p.DiscountPercentage < 1 || p.DiscountPercentage > 99) {
		return errors.New("discountPercentage must be between 1 and 99")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}
	if p.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	if p.Brand == "" || p.Category == "" {
		return errors.New("brand and category are required")
	}
	return nil
}
