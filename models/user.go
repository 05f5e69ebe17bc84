package models

import "time"

// User is an authenticated identity. The ID is either the configured admin
// identifier or the subject of an externally issued token; rows are upserted
// on every successful authentication.
type User struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Email           string    `json:"email,omitempty"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	IsAdmin         bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (u *User) TableName() string {
	return "users"
}
