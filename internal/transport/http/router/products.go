package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sustainably-yours/internal/core/cache"
	"sustainably-yours/internal/domain"
	"sustainably-yours/internal/feature/catalog"
	"sustainably-yours/internal/feature/rating"
	"sustainably-yours/internal/repo"
	"sustainably-yours/internal/transport/http/ez"
	"sustainably-yours/pkg/utils"
)

// ProductModule 商品 CRUD + 列表检索
type ProductModule struct {
	DB        *gorm.DB
	Cache     *cache.Cache
	DetailTTL time.Duration
}

func productCacheKey(id string) string { return "product:detail:" + id }

func (m ProductModule) MountAPI(public, authed *gin.RouterGroup) {
	ezPublic := ez.New(public)
	ezAuth := ez.New(authed)

	ez.RegisterAction[catalog.Params, listOut[domain.Product]](ezPublic, m.DB, ez.Action[catalog.Params, listOut[domain.Product]]{
		Method: http.MethodGet,
		Path:   "/products",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, tx *gorm.DB, in *catalog.Params) (listOut[domain.Product], error) {
			q := catalog.Build(*in, "name", "brand", "description")
			items, total, err := repo.NewProductRepo(tx).List(c, q)
			if err != nil {
				return listOut[domain.Product]{}, ez.Internal("list products failed", err)
			}
			return newListOut(items, q.Page, q.Limit, total), nil
		},
	})

	ez.RegisterAction[struct{}, *domain.Product](ezPublic, m.DB, ez.Action[struct{}, *domain.Product]{
		Method: http.MethodGet,
		Path:   "/products/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (*domain.Product, error) {
			id := c.Param("id")
			find := func() (*domain.Product, error) {
				p, err := repo.NewProductRepo(tx).FindByIDWithRatings(c, id)
				if err != nil {
					return nil, ez.Internal("db error", err)
				}
				if p == nil {
					return nil, ez.NotFound("product not found")
				}
				return p, nil
			}
			if m.Cache == nil || m.DetailTTL <= 0 {
				return find()
			}
			return cache.GetOrLoadJSON[domain.Product](m.Cache, c, productCacheKey(id), m.DetailTTL,
				func(context.Context) (*domain.Product, error) { return find() })
		},
	})

	type productIn struct {
		Name                string   `json:"name"                binding:"required,max=191"`
		Brand               string   `json:"brand"               binding:"required,max=191"`
		Category            string   `json:"category"            binding:"required,max=64"`
		Description         string   `json:"description"         binding:"required"`
		Image               string   `json:"image"               binding:"omitempty,max=255"`
		Price               *float64 `json:"price"               binding:"required,gte=0"`
		SustainabilityScore int      `json:"sustainabilityScore" binding:"min=0,max=100"`
		Certifications      []string `json:"certifications"`
	}

	ez.RegisterAction[productIn, *domain.Product](ezAuth, m.DB, ez.Action[productIn, *domain.Product]{
		Method: http.MethodPost,
		Path:   "/products",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, tx *gorm.DB, in *productIn) (*domain.Product, error) {
			guard := newGuard(tx)
			if err := guard.AuthorizeCreate(c.GetString("role")); err != nil {
				return nil, err
			}
			p := &domain.Product{
				ID:                  utils.NewID(),
				Name:                in.Name,
				Brand:               in.Brand,
				Category:            in.Category,
				Description:         in.Description,
				Image:               in.Image,
				Price:               *in.Price,
				SustainabilityScore: in.SustainabilityScore,
				Certifications:      in.Certifications,
				CreatedBy:           c.GetString("userId"),
			}
			if err := repo.NewProductRepo(tx).Create(c, p); err != nil {
				return nil, ez.Internal("create product failed", err)
			}
			return p, nil
		},
	})

	type productUpdateIn struct {
		Name                *string  `json:"name"                binding:"omitempty,max=191"`
		Brand               *string  `json:"brand"               binding:"omitempty,max=191"`
		Category            *string  `json:"category"            binding:"omitempty,max=64"`
		Description         *string  `json:"description"`
		Image               *string  `json:"image"               binding:"omitempty,max=255"`
		Price               *float64 `json:"price"               binding:"omitempty,gte=0"`
		SustainabilityScore *int     `json:"sustainabilityScore" binding:"omitempty,min=0,max=100"`
		Certifications      []string `json:"certifications"`
	}

	ez.RegisterAction[productUpdateIn, *domain.Product](ezAuth, m.DB, ez.Action[productUpdateIn, *domain.Product]{
		Method: http.MethodPut,
		Path:   "/products/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *productUpdateIn) (*domain.Product, error) {
			products := repo.NewProductRepo(tx)
			p, err := products.FindByID(c, c.Param("id"))
			if err != nil {
				return nil, ez.Internal("db error", err)
			}
			if p == nil {
				return nil, ez.NotFound("product not found")
			}
			guard := newGuard(tx)
			if err := guard.AuthorizeMutate(c.GetString("userId"), c.GetString("role"), p.CreatedBy); err != nil {
				return nil, err
			}
			if in.Name != nil {
				p.Name = *in.Name
			}
			if in.Brand != nil {
				p.Brand = *in.Brand
			}
			if in.Category != nil {
				p.Category = *in.Category
			}
			if in.Description != nil {
				p.Description = *in.Description
			}
			if in.Image != nil {
				p.Image = *in.Image
			}
			if in.Price != nil {
				p.Price = *in.Price
			}
			if in.SustainabilityScore != nil {
				p.SustainabilityScore = *in.SustainabilityScore
			}
			if in.Certifications != nil {
				p.Certifications = in.Certifications
			}
			if err := products.Update(c, p); err != nil {
				return nil, ez.Internal("update product failed", err)
			}
			if m.Cache != nil {
				m.Cache.Invalidate(c, productCacheKey(p.ID))
			}
			return p, nil
		},
	})

	ez.RegisterAction[struct{}, gin.H](ezAuth, m.DB, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/products/:id",
		Binder: ez.BindNone,
		Auth:   true,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			products := repo.NewProductRepo(tx)
			id := c.Param("id")
			p, err := products.FindByID(c, id)
			if err != nil {
				return nil, ez.Internal("db error", err)
			}
			if p == nil {
				return nil, ez.NotFound("product not found")
			}
			guard := newGuard(tx)
			if err := guard.AuthorizeMutate(c.GetString("userId"), c.GetString("role"), p.CreatedBy); err != nil {
				return nil, err
			}
			// 先清掉关联评分，不留孤儿
			t := domain.Target{Kind: domain.TargetProduct, ID: id}
			if err := repo.NewRatingRepo(tx).DeleteByTarget(c, t); err != nil {
				return nil, ez.Internal("delete ratings failed", err)
			}
			if err := products.Delete(c, id); err != nil {
				return nil, ez.Internal("delete product failed", err)
			}
			if m.Cache != nil {
				m.Cache.Invalidate(c, productCacheKey(id))
			}
			return gin.H{"id": id}, nil
		},
	})
}

// newGuard 在当前事务上构建校验器
func newGuard(tx *gorm.DB) *rating.Guard {
	return rating.NewGuard(repo.NewRatingRepo(tx), repo.NewProductRepo(tx), repo.NewBusinessRepo(tx))
}
