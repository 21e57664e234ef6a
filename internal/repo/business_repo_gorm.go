package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sustainably-yours/internal/domain"
)

type BusinessRepo struct{ db *gorm.DB }

func NewBusinessRepo(db *gorm.DB) *BusinessRepo { return &BusinessRepo{db: db} }

func (r *BusinessRepo) Create(ctx context.Context, b *domain.Business) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BusinessRepo) FindByID(ctx context.Context, id string) (*domain.Business, error) {
	var b domain.Business
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

func (r *BusinessRepo) FindByIDWithRatings(ctx context.Context, id string) (*domain.Business, error) {
	var b domain.Business
	err := r.db.WithContext(ctx).
		Preload("Ratings", func(tx *gorm.DB) *gorm.DB { return tx.Order("date DESC") }).
		First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

func (r *BusinessRepo) List(ctx context.Context, q domain.ListQuery) ([]domain.Business, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Business{})
	if q.Category != "" {
		// categories 以 JSON 数组存储，按序列化形式匹配单个成员
		tx = tx.Where(`categories LIKE ?`, `%"`+q.Category+`"%`)
	}
	tx = applySearch(tx, q)
	return listPage[domain.Business](tx, q)
}

func (r *BusinessRepo) Update(ctx context.Context, b *domain.Business) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BusinessRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Business{}).Error
}

func (r *BusinessRepo) SetAverageRating(ctx context.Context, id string, avg float64) error {
	return r.db.WithContext(ctx).Model(&domain.Business{}).
		Where("id = ?", id).
		UpdateColumn("average_rating", avg).Error
}

func (r *BusinessRepo) CountByOwner(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Business{}).
		Where("created_by = ?", userID).Count(&n).Error
	return n, err
}
