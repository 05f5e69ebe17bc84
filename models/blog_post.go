package models

import "time"

// BlogPost is a farm blog entry. Slug is the URL-safe public identifier;
// unpublished posts are only visible through the admin API.
type BlogPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Excerpt   string    `gorm:"type:text" json:"excerpt,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Published bool      `gorm:"not null;default:false" json:"published"`
	AuthorID  string    `gorm:"index" json:"authorId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *BlogPost) TableName() string {
	return "blog_posts"
}
