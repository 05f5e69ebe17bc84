package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus marks whether a product is visible in the public catalog.
// Products are never hard-deleted so historical order items keep resolving.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product represents an item sold by the farm.
type Product struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"not null" json:"name"`
	Description      string          `gorm:"type:text;not null" json:"description"`
	Price            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category         string          `gorm:"index" json:"category"`
	ImageURL         string          `json:"imageUrl,omitempty"`
	Stock            int             `gorm:"not null;default:0" json:"stock"`
	Status           ProductStatus   `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	NutritionalFacts string          `gorm:"type:text" json:"nutritionalFacts,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (p *Product) TableName() string {
	return "products"
}
