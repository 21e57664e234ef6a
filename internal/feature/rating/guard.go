package rating

import (
	"context"

	"sustainably-yours/internal/domain"
)

// Guard 写操作前的结构与权限校验，只做判定，不产生副作用
type Guard struct {
	ratings    domain.RatingRepository
	products   domain.ProductRepository
	businesses domain.BusinessRepository
}

func NewGuard(ratings domain.RatingRepository, products domain.ProductRepository, businesses domain.BusinessRepository) *Guard {
	return &Guard{ratings: ratings, products: products, businesses: businesses}
}

// ValidateTarget 评分对象必须真实存在
func (g *Guard) ValidateTarget(ctx context.Context, t domain.Target) error {
	switch t.Kind {
	case domain.TargetProduct:
		p, err := g.products.FindByID(ctx, t.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFoundf("product not found")
		}
	case domain.TargetBusiness:
		b, err := g.businesses.FindByID(ctx, t.ID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.NotFoundf("business not found")
		}
	default:
		return domain.Invalidf("unknown target kind %q", t.Kind)
	}
	return nil
}

// EnsureUnrated 同一用户对同一对象最多一条评分
func (g *Guard) EnsureUnrated(ctx context.Context, userID string, t domain.Target) error {
	existing, err := g.ratings.FindByUserAndTarget(ctx, userID, t)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.Conflictf("you have already rated this item")
	}
	return nil
}

// AuthorizeCreate 仅 seller 可创建 Product/Business
func (g *Guard) AuthorizeCreate(role string) error {
	if role != domain.RoleSeller {
		return domain.Forbiddenf("only sellers can create listings")
	}
	return nil
}

// AuthorizeMutate Product/Business 的修改：创建者本人或 admin
func (g *Guard) AuthorizeMutate(userID, role, createdBy string) error {
	if userID == createdBy || role == domain.RoleAdmin {
		return nil
	}
	return domain.Forbiddenf("not authorized to modify this resource")
}

// AuthorizeRatingMutate 评分只有作者本人可改（admin 也不行）
func (g *Guard) AuthorizeRatingMutate(userID string, r *domain.Rating) error {
	if r.UserID != userID {
		return domain.Forbiddenf("not authorized to modify this rating")
	}
	return nil
}
