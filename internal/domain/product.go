package domain

import (
	"context"
	"time"
)

type Product struct {
	ID                  string    `gorm:"primaryKey;size:32" json:"id"`
	Name                string    `gorm:"size:191;not null" json:"name"`
	Brand               string    `gorm:"size:191;not null" json:"brand"`
	Category            string    `gorm:"size:64;not null;index" json:"category"`
	Image               string    `gorm:"size:255" json:"image"`
	Description         string    `gorm:"type:text;not null" json:"description"`
	SustainabilityScore int       `gorm:"not null;default:0" json:"sustainabilityScore"`
	Price               float64   `gorm:"not null" json:"price"`
	Certifications      []string  `gorm:"serializer:json" json:"certifications"`
	AverageRating       float64   `gorm:"not null;default:0" json:"averageRating"` // 派生值，只由 Aggregator 写
	Ratings             []Rating  `gorm:"foreignKey:ProductID" json:"ratings,omitempty"`
	CreatedBy           string    `gorm:"size:32;index" json:"createdBy"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	// FindByIDWithRatings 详情页带出评分（按 date 倒序）
	FindByIDWithRatings(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q ListQuery) ([]Product, int64, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	// SetAverageRating 仅供 Aggregator 调用
	SetAverageRating(ctx context.Context, id string, avg float64) error
	CountByOwner(ctx context.Context, userID string) (int64, error)
}
