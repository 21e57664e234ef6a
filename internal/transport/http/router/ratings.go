package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sustainably-yours/internal/core/cache"
	"sustainably-yours/internal/domain"
	"sustainably-yours/internal/feature/rating"
	"sustainably-yours/internal/repo"
	"sustainably-yours/internal/transport/http/ez"
	"sustainably-yours/pkg/utils"
)

// RatingModule 评分的增删改查 + 聚合重算。
// 写路径都走事务：评分落库和 averageRating 重算要么一起成功要么一起回滚
type RatingModule struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

func targetCacheKey(t domain.Target) string {
	if t.Kind == domain.TargetProduct {
		return productCacheKey(t.ID)
	}
	return businessCacheKey(t.ID)
}

func newAggregator(tx *gorm.DB) *rating.Aggregator {
	return rating.NewAggregator(repo.NewRatingRepo(tx), repo.NewProductRepo(tx), repo.NewBusinessRepo(tx))
}

func (m RatingModule) MountAPI(public, authed *gin.RouterGroup) {
	ezPublic := ez.New(public)
	ezAuth := ez.New(authed)

	type createIn struct {
		Rating     int             `json:"rating"     binding:"required,min=1,max=5"`
		Comment    string          `json:"comment"`
		ProductID  string          `json:"productId"`
		BusinessID string          `json:"businessId"`
		Aspects    *domain.Aspects `json:"aspects"`
	}

	ez.RegisterAction[createIn, *domain.Rating](ezAuth, m.DB, ez.Action[createIn, *domain.Rating]{
		Method: http.MethodPost,
		Path:   "/ratings",
		Binder: ez.BindJSON,
		Auth:   true,
		UseTx:  true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, tx *gorm.DB, in *createIn) (*domain.Rating, error) {
			u, err := currentUser(c, tx)
			if err != nil {
				return nil, err
			}

			t, err := domain.ParseTarget(in.ProductID, in.BusinessID)
			if err != nil {
				return nil, err
			}

			guard := newGuard(tx)
			if err := guard.ValidateTarget(c, t); err != nil {
				return nil, err
			}
			if err := guard.EnsureUnrated(c, u.ID, t); err != nil {
				return nil, err
			}

			aspects, err := rating.ResolveAspects(in.Aspects, in.Rating)
			if err != nil {
				return nil, err
			}

			r := &domain.Rating{
				ID:       utils.NewID(),
				UserID:   u.ID,
				UserName: u.Name,
				Rating:   in.Rating,
				Comment:  in.Comment,
				Aspects:  aspects,
				Date:     time.Now(),
			}
			r.SetTarget(t)

			ratings := repo.NewRatingRepo(tx)
			if err := ratings.Create(c, r); err != nil {
				return nil, ez.Internal("create rating failed", err)
			}
			if _, err := newAggregator(tx).Recompute(c, t); err != nil {
				return nil, ez.Internal("recompute average failed", err)
			}
			if m.Cache != nil {
				m.Cache.Invalidate(c, targetCacheKey(t))
			}
			return r, nil
		},
	})

	type updateIn struct {
		Rating  *int            `json:"rating"  binding:"omitempty,min=1,max=5"`
		Comment *string         `json:"comment"`
		Aspects *domain.Aspects `json:"aspects"`
	}

	ez.RegisterAction[updateIn, *domain.Rating](ezAuth, m.DB, ez.Action[updateIn, *domain.Rating]{
		Method: http.MethodPut,
		Path:   "/ratings/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *updateIn) (*domain.Rating, error) {
			ratings := repo.NewRatingRepo(tx)
			r, err := ratings.FindByID(c, c.Param("id"))
			if err != nil {
				return nil, ez.Internal("db error", err)
			}
			if r == nil {
				return nil, ez.NotFound("rating not found")
			}
			guard := newGuard(tx)
			if err := guard.AuthorizeRatingMutate(c.GetString("userId"), r); err != nil {
				return nil, err
			}

			if in.Rating != nil {
				r.Rating = *in.Rating
			}
			if in.Comment != nil {
				r.Comment = *in.Comment
			}
			if in.Aspects != nil {
				aspects, err := rating.ResolveAspects(in.Aspects, r.Rating)
				if err != nil {
					return nil, err
				}
				r.Aspects = aspects
			}
			r.Date = time.Now()

			if err := ratings.Update(c, r); err != nil {
				return nil, ez.Internal("update rating failed", err)
			}

			t, err := r.Target()
			if err != nil {
				return nil, ez.Internal("rating has no target", err)
			}
			if _, err := newAggregator(tx).Recompute(c, t); err != nil {
				return nil, ez.Internal("recompute average failed", err)
			}
			if m.Cache != nil {
				m.Cache.Invalidate(c, targetCacheKey(t))
			}
			return r, nil
		},
	})

	ez.RegisterAction[struct{}, gin.H](ezAuth, m.DB, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/ratings/:id",
		Binder: ez.BindNone,
		Auth:   true,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			ratings := repo.NewRatingRepo(tx)
			r, err := ratings.FindByID(c, c.Param("id"))
			if err != nil {
				return nil, ez.Internal("db error", err)
			}
			if r == nil {
				return nil, ez.NotFound("rating not found")
			}
			guard := newGuard(tx)
			if err := guard.AuthorizeRatingMutate(c.GetString("userId"), r); err != nil {
				return nil, err
			}

			t, err := r.Target()
			if err != nil {
				return nil, ez.Internal("rating has no target", err)
			}
			if err := ratings.Delete(c, r.ID); err != nil {
				return nil, ez.Internal("delete rating failed", err)
			}
			// 删除后的集合重算，评分清零时平均值回到 0
			if _, err := newAggregator(tx).Recompute(c, t); err != nil {
				return nil, ez.Internal("recompute average failed", err)
			}
			if m.Cache != nil {
				m.Cache.Invalidate(c, targetCacheKey(t))
			}
			return gin.H{"id": r.ID}, nil
		},
	})

	ez.RegisterAction[struct{}, []domain.Rating](ezPublic, m.DB, ez.Action[struct{}, []domain.Rating]{
		Method: http.MethodGet,
		Path:   "/ratings/product/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) ([]domain.Rating, error) {
			return listRatings(c, tx, domain.Target{Kind: domain.TargetProduct, ID: c.Param("id")})
		},
	})

	ez.RegisterAction[struct{}, []domain.Rating](ezPublic, m.DB, ez.Action[struct{}, []domain.Rating]{
		Method: http.MethodGet,
		Path:   "/ratings/business/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) ([]domain.Rating, error) {
			return listRatings(c, tx, domain.Target{Kind: domain.TargetBusiness, ID: c.Param("id")})
		},
	})
}

func listRatings(c *gin.Context, tx *gorm.DB, t domain.Target) ([]domain.Rating, error) {
	list, err := repo.NewRatingRepo(tx).ListByTarget(c, t)
	if err != nil {
		return nil, ez.Internal("list ratings failed", err)
	}
	if list == nil {
		list = []domain.Rating{}
	}
	return list, nil
}
