package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stats is the admin dashboard summary. Counts span entire tables: inactive
// products and cancelled orders are included, matching the dashboard's
// whole-table view rather than the public listing's filters.
type Stats struct {
	TotalProducts  int64           `json:"totalProducts"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalBlogPosts int64           `json:"totalBlogPosts"`
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{
		db: db,
	}
}

// ComputeStats recomputes the summary from scratch on every call.
func (r *StatsRepository) ComputeStats() (*Stats, error) {
	var stats Stats

	if err := r.db.Model(&Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&BlogPost{}).Count(&stats.TotalBlogPosts).Error; err != nil {
		return nil, err
	}

	// Revenue sums every order regardless of status, cancelled included.
	var revenue decimal.NullDecimal
	if err := r.db.Model(&Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue.Decimal

	return &stats, nil
}
