package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		db: db,
	}
}

// CreateOrder persists the order header and all of its line items inside a
// single transaction. A failure on any line item rolls back the header, so a
// partially written order is never observable.
func (r *OrdersRepository) CreateOrder(order *Order, items []OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items
		return nil
	})
}

// GetAllOrders returns all orders with their line items, newest first.
func (r *OrdersRepository) GetAllOrders() ([]Order, error) {
	var orders []Order
	if err := r.db.
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrdersRepository) GetByID(id uint) (*Order, error) {
	var order Order
	if err := r.db.
		Preload("Items").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus sets the order status. Any status is accepted from any current
// status; there is no transition guard.
func (r *OrdersRepository) UpdateStatus(id uint, status OrderStatus) (*Order, error) {
	result := r.db.Model(&Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return r.GetByID(id)
}
