package domain

import (
	"context"
	"time"
)

type Business struct {
	ID                  string    `gorm:"primaryKey;size:32" json:"id"`
	Name                string    `gorm:"size:191;not null" json:"name"`
	Description         string    `gorm:"type:text;not null" json:"description"`
	Location            string    `gorm:"size:191;not null" json:"location"`
	Website             string    `gorm:"size:255" json:"website"`
	Logo                string    `gorm:"size:255" json:"logo"`
	SustainabilityScore int       `gorm:"not null;default:0" json:"sustainabilityScore"`
	Categories          []string  `gorm:"serializer:json" json:"categories"`
	AverageRating       float64   `gorm:"not null;default:0" json:"averageRating"` // 派生值，只由 Aggregator 写
	Ratings             []Rating  `gorm:"foreignKey:BusinessID" json:"ratings,omitempty"`
	CreatedBy           string    `gorm:"size:32;index" json:"createdBy"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (Business) TableName() string { return "businesses" }

type BusinessRepository interface {
	Create(ctx context.Context, b *Business) error
	FindByID(ctx context.Context, id string) (*Business, error)
	FindByIDWithRatings(ctx context.Context, id string) (*Business, error)
	List(ctx context.Context, q ListQuery) ([]Business, int64, error)
	Update(ctx context.Context, b *Business) error
	Delete(ctx context.Context, id string) error
	SetAverageRating(ctx context.Context, id string, avg float64) error
	CountByOwner(ctx context.Context, userID string) (int64, error)
}
