package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sustainably-yours/internal/domain"
)

type RatingRepo struct{ db *gorm.DB }

func NewRatingRepo(db *gorm.DB) *RatingRepo { return &RatingRepo{db: db} }

func targetColumn(t domain.Target) string {
	if t.Kind == domain.TargetProduct {
		return "product_id"
	}
	return "business_id"
}

func (r *RatingRepo) Create(ctx context.Context, rt *domain.Rating) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *RatingRepo) FindByID(ctx context.Context, id string) (*domain.Rating, error) {
	var rt domain.Rating
	err := r.db.WithContext(ctx).First(&rt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rt, err
}

func (r *RatingRepo) FindByUserAndTarget(ctx context.Context, userID string, t domain.Target) (*domain.Rating, error) {
	var rt domain.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND "+targetColumn(t)+" = ?", userID, t.ID).
		First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rt, err
}

func (r *RatingRepo) ListByTarget(ctx context.Context, t domain.Target) ([]domain.Rating, error) {
	var list []domain.Rating
	err := r.db.WithContext(ctx).
		Where(targetColumn(t)+" = ?", t.ID).
		Order("date DESC").
		Find(&list).Error
	return list, err
}

func (r *RatingRepo) Update(ctx context.Context, rt *domain.Rating) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

func (r *RatingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Rating{}).Error
}

func (r *RatingRepo) DeleteByTarget(ctx context.Context, t domain.Target) error {
	return r.db.WithContext(ctx).Where(targetColumn(t)+" = ?", t.ID).Delete(&domain.Rating{}).Error
}

func (r *RatingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Rating, error) {
	var list []domain.Rating
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&list).Error
	return list, err
}
