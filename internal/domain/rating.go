package domain

import (
	"context"
	"time"
)

type TargetKind string

const (
	TargetProduct  TargetKind = "product"
	TargetBusiness TargetKind = "business"
)

// Target 评分对象：Product 或 Business 二选一
// 用带标签的变体代替两个可空外键，结构上排除"都有/都无"两种非法态
type Target struct {
	Kind TargetKind
	ID   string
}

// ParseTarget 从请求里的两个可选 ID 还原 Target
func ParseTarget(productID, businessID string) (Target, error) {
	switch {
	case productID != "" && businessID != "":
		return Target{}, Invalidf("cannot provide both productId and businessId")
	case productID != "":
		return Target{Kind: TargetProduct, ID: productID}, nil
	case businessID != "":
		return Target{Kind: TargetBusiness, ID: businessID}, nil
	default:
		return Target{}, Invalidf("either productId or businessId must be provided")
	}
}

// Aspects 四个维度子评分，1-5
type Aspects struct {
	Materials       int `json:"materials"`
	Packaging       int `json:"packaging"`
	CarbonFootprint int `json:"carbonFootprint"`
	LaborPractices  int `json:"laborPractices"`
}

type Rating struct {
	ID         string    `gorm:"primaryKey;size:32" json:"id"`
	UserID     string    `gorm:"size:32;not null;index:idx_rating_user_product,priority:1;index:idx_rating_user_business,priority:1" json:"userId"`
	UserName   string    `gorm:"size:64;not null" json:"userName"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	Aspects    Aspects   `gorm:"serializer:json" json:"aspects"`
	ProductID  string    `gorm:"size:32;index;index:idx_rating_user_product,priority:2" json:"productId,omitempty"`
	BusinessID string    `gorm:"size:32;index;index:idx_rating_user_business,priority:2" json:"businessId,omitempty"`
	Date       time.Time `gorm:"autoCreateTime" json:"date"`
}

func (Rating) TableName() string { return "ratings" }

// Target 持久层存两列，域内仍以变体视角访问
func (r *Rating) Target() (Target, error) {
	return ParseTarget(r.ProductID, r.BusinessID)
}

func (r *Rating) SetTarget(t Target) {
	r.ProductID, r.BusinessID = "", ""
	if t.Kind == TargetProduct {
		r.ProductID = t.ID
	} else {
		r.BusinessID = t.ID
	}
}

type RatingRepository interface {
	Create(ctx context.Context, r *Rating) error
	FindByID(ctx context.Context, id string) (*Rating, error)
	// FindByUserAndTarget 查无返回 (nil, nil)
	FindByUserAndTarget(ctx context.Context, userID string, t Target) (*Rating, error)
	// ListByTarget 按 date 倒序
	ListByTarget(ctx context.Context, t Target) ([]Rating, error)
	Update(ctx context.Context, r *Rating) error
	Delete(ctx context.Context, id string) error
	DeleteByTarget(ctx context.Context, t Target) error
	ListByUser(ctx context.Context, userID string) ([]Rating, error)
}
