package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// CategoryAll is the sentinel category filter meaning "no category filter".
const CategoryAll = "All Categories"

type ProductFilters struct {
	Search   string
	Category string
}

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// GetActiveProducts returns active products matching the filters, newest
// first. Search is a case-insensitive substring match on the name; the
// category filter is an exact match unless empty or the CategoryAll sentinel.
func (r *ProductsRepository) GetActiveProducts(filters ProductFilters) ([]Product, error) {
	query := r.db.Model(&Product{}).
		Where("status = ?", ProductStatusActive)

	if filters.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filters.Search)+"%")
	}
	if filters.Category != "" && filters.Category != CategoryAll {
		query = query.Where("category = ?", filters.Category)
	}

	var products []Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetAllProducts returns every product including inactive ones, newest first.
func (r *ProductsRepository) GetAllProducts() ([]Product, error) {
	var products []Product
	if err := r.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns the product regardless of status. Soft-deleted products
// stay fetchable so order history keeps resolving.
func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

func (r *ProductsRepository) CreateProduct(product *Product) error {
	return r.db.Create(product).Error
}

// UpdateProduct applies the given column updates to an existing product.
func (r *ProductsRepository) UpdateProduct(id uint, updates map[string]any) (*Product, error) {
	result := r.db.Model(&Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return r.GetByID(id)
}

// DeactivateProduct soft-deletes a product by flipping its status.
func (r *ProductsRepository) DeactivateProduct(id uint) error {
	result := r.db.Model(&Product{}).
		Where("id = ?", id).
		Update("status", ProductStatusInactive)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetCategories returns the distinct category labels of active products.
func (r *ProductsRepository) GetCategories() ([]string, error) {
	var categories []string
	if err := r.db.Model(&Product{}).
		Where("status = ?", ProductStatusActive).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
