package repo

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"sustainably-yours/internal/domain"
)

type CategoryStat struct {
	Category          string  `json:"category"`
	Total             int64   `json:"total"`
	AvgSustainability float64 `json:"avgSustainability"`
}

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Total int64  `json:"total"`
}

// StatsRepo 管理端聚合统计
type StatsRepo struct{ db *gorm.DB }

func NewStatsRepo(db *gorm.DB) *StatsRepo { return &StatsRepo{db: db} }

func (r *StatsRepo) ProductsByCategory(ctx context.Context) ([]CategoryStat, error) {
	var stats []CategoryStat
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("category, COUNT(*) AS total, AVG(sustainability_score) AS avg_sustainability").
		Group("category").
		Order("total DESC").
		Scan(&stats).Error
	return stats, err
}

func (r *StatsRepo) TopProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	var list []domain.Product
	err := r.db.WithContext(ctx).
		Order("average_rating DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// MonthlySignups 按月聚合在 Go 侧完成，避免 mysql/postgres 的日期函数差异
func (r *StatsRepo) MonthlySignups(ctx context.Context) ([]MonthCount, error) {
	var times []time.Time
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Pluck("created_at", &times).Error; err != nil {
		return nil, err
	}
	byMonth := map[string]int64{}
	for _, t := range times {
		byMonth[t.UTC().Format("2006-01")]++
	}
	out := make([]MonthCount, 0, len(byMonth))
	for m, n := range byMonth {
		out = append(out, MonthCount{Month: m, Total: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
