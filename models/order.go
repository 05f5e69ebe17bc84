package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment state of an order. Transitions are
// admin-driven and unrestricted: any status may be set from any other.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the five known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentMethodCashOnDelivery is the only payment method currently accepted.
const PaymentMethodCashOnDelivery = "cash_on_delivery"

// Order is a customer order header. TotalAmount equals the sum of the line
// item totals at creation time; it is not recomputed afterwards.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderNumber   string          `gorm:"uniqueIndex;not null" json:"orderNumber"`
	CustomerName  string          `gorm:"not null" json:"customerName"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `gorm:"not null" json:"phone"`
	Address       string          `gorm:"type:text;not null" json:"address"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	Status        OrderStatus     `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	PaymentMethod string          `gorm:"not null;default:'cash_on_delivery'" json:"paymentMethod"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (o *Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. PricePerUnit is a snapshot of the
// product price at order time, so later price changes or deactivation of the
// product do not alter historical orders. TotalPrice is computed by the
// caller and stored verbatim.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"index;not null" json:"orderId"`
	ProductID    uint            `gorm:"not null" json:"productId"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"pricePerUnit"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
}

func (i *OrderItem) TableName() string {
	return "order_items"
}
