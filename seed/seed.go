// Package seed loads demo data for local development.
package seed

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/duckcreek/farmstore/models"
)

// Run inserts demo products and a blog post. It refuses to touch a database
// that already has products, so rerunning is safe.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("checking products: %w", err)
	}
	if count > 0 {
		log.Printf("seed: %d products already present, skipping", count)
		return nil
	}

	products := []models.Product{
		{
			Name:        "Duck Eggs (Dozen)",
			Description: "Fresh pasture-raised duck eggs, collected daily.",
			Price:       decimal.NewFromFloat(6.99),
			Category:    "Eggs",
			Stock:       40,
			Status:      models.ProductStatusActive,
		},
		{
			Name:        "Whole Duck",
			Description: "Free-range whole duck, oven ready.",
			Price:       decimal.NewFromFloat(24.50),
			Category:    "Meat",
			Stock:       12,
			Status:      models.ProductStatusActive,
		},
		{
			Name:        "Duck Confit (2 Legs)",
			Description: "Slow-cooked duck legs in their own fat.",
			Price:       decimal.NewFromFloat(15.75),
			Category:    "Prepared",
			Stock:       18,
			Status:      models.ProductStatusActive,
		},
		{
			Name:             "Smoked Duck Breast",
			Description:      "Applewood smoked duck breast, sliced.",
			Price:            decimal.NewFromFloat(12.25),
			Category:         "Prepared",
			Stock:            0,
			Status:           models.ProductStatusActive,
			NutritionalFacts: "Per 100g: 210 kcal, 24g protein, 12g fat",
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seeding products: %w", err)
	}

	post := models.BlogPost{
		Title:     "Welcome to Duck Creek Farm",
		Content:   "Our family has been raising ducks on the creek for three generations...",
		Excerpt:   "A short history of the farm.",
		Slug:      "welcome-to-duck-creek-farm",
		Published: true,
	}
	if err := db.Create(&post).Error; err != nil {
		return fmt.Errorf("seeding blog post: %w", err)
	}

	log.Printf("seed: inserted %d products and 1 blog post", len(products))
	return nil
}
