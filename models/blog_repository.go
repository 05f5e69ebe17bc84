package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrPostNotFound is returned when a blog post is not found.
var ErrPostNotFound = errors.New("blog post not found")

// ErrDuplicateSlug is returned when a post slug is already taken.
var ErrDuplicateSlug = errors.New("slug already in use")

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{
		db: db,
	}
}

// GetPublishedPosts returns published posts only, newest first.
func (r *BlogRepository) GetPublishedPosts() ([]BlogPost, error) {
	var posts []BlogPost
	if err := r.db.
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPublishedBySlug returns a published post by slug. Unpublished posts are
// indistinguishable from missing ones here.
func (r *BlogRepository) GetPublishedBySlug(slug string) (*BlogPost, error) {
	var post BlogPost
	if err := r.db.
		Where("slug = ? AND published = ?", slug, true).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts returns every post including drafts, newest first.
func (r *BlogRepository) GetAllPosts() ([]BlogPost, error) {
	var posts []BlogPost
	if err := r.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *BlogRepository) GetByID(id uint) (*BlogPost, error) {
	var post BlogPost
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *BlogRepository) CreatePost(post *BlogPost) error {
	if err := r.db.Create(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

// UpdatePost applies the given column updates to an existing post.
func (r *BlogRepository) UpdatePost(id uint, updates map[string]any) (*BlogPost, error) {
	result := r.db.Model(&BlogPost{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPostNotFound
	}
	return r.GetByID(id)
}

// DeletePost removes a post permanently. Blog posts are the only entity with
// a hard delete.
func (r *BlogRepository) DeletePost(id uint) error {
	result := r.db.Delete(&BlogPost{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}
