package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrMessageNotFound is returned when a contact message is not found.
var ErrMessageNotFound = errors.New("contact message not found")

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{
		db: db,
	}
}

func (r *ContactRepository) CreateMessage(msg *ContactMessage) error {
	return r.db.Create(msg).Error
}

// GetAllMessages returns every message, newest first.
func (r *ContactRepository) GetAllMessages() ([]ContactMessage, error) {
	var messages []ContactMessage
	if err := r.db.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flags a message as read.
func (r *ContactRepository) MarkRead(id uint) error {
	result := r.db.Model(&ContactMessage{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
