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
	"sustainably-yours/internal/repo"
	"sustainably-yours/internal/transport/http/ez"
	"sustainably-yours/pkg/utils"
)

// BusinessModule 商家 CRUD + 列表检索
type BusinessModule struct {
	DB        *gorm.DB
	Cache     *cache.Cache
	DetailTTL time.Duration
}

func businessCacheKey(id string) string { return "business:detail:" + id }

func (m BusinessModule) MountAPI(public, authed *gin.RouterGroup) {
	ezPublic := ez.New(public)
	ezAuth := ez.New(authed)

	ez.RegisterAction[catalog.Params, listOut[domain.Business]](ezPublic, m.DB, ez.Action[catalog.Params, listOut[domain.Business]]{
		Method: http.MethodGet,
		Path:   "/businesses",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, tx *gorm.DB, in *catalog.Params) (listOut[domain.Business], error) {
			q := catalog.Build(*in, "name", "description", "location")
			items, total, err := repo.NewBusinessRepo(tx).List(c, q)
			if err != nil {
				return listOut[domain.Business]{}, ez.Internal("list businesses failed", err)
			}
			return newListOut(items, q.Page, q.Limit, total), nil
		},
	})

	ez.RegisterAction[struct{}, *domain.Business](ezPublic, m.DB, ez.Action[struct{}, *domain.Business]{
		Method: http.MethodGet,
		Path:   "/businesses/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (*domain.Business, error) {
			id := c.Param("id")
			find := func() (*domain.Business, error) {
				b, err := repo.NewBusinessRepo(tx).FindByIDWithRatings(c, id)
				if err != nil {
					return nil, ez.Internal("db error", err)
				}
				if b == nil {
					return nil, ez.NotFound("business not found")
				}
				return b, nil
			}
			if m.Cache == nil || m.DetailTTL <= 0 {
				return find()
			}
			return cache.GetOrLoadJSON[domain.Business](m.Cache, c, businessCacheKey(id), m.DetailTTL,
				func(context.Context) (*domain.Business, error) { return find() })
		},
	})

	type businessIn struct {
		Name                string   `json:"name"                binding:"required,max=191"`
		Description         string   `json:"description"         binding:"required"`
		Location            string   `json:"location"            binding:"required,max=191"`
		Website             string   `json:"website"             binding:"omitempty,max=255"`
		Logo                string   `json:"logo"                binding:"omitempty,max=255"`
		SustainabilityScore int      `json:"sustainabilityScore" binding:"min=0,max=100"`
		Categories          []string `json:"categories"`
	}

	ez.RegisterAction[businessIn, *domain.Business](ezAuth, m.DB, ez.Action[businessIn, *domain.Business]{
		Method: http.MethodPost,
		Path:   "/businesses",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, tx *gorm.DB, in *businessIn) (*domain.Business, error) {
			guard := newGuard(tx)
			if err := guard.AuthorizeCreate(c.GetString("role")); err != nil {
				return nil, err
			}
			b := &domain.Business{
				ID:                  utils.NewID(),
				Name:                in.Name,
				Description:         in.Description,
				Location:            in.Location,
				Website:             in.Website,
				Logo:                in.Logo,
				SustainabilityScore: in.SustainabilityScore,
				Categories:          in.Categories,
				CreatedBy:           c.GetString("userId"),
			}
			if err := repo.NewBusinessRepo(tx).Create(c, b); err != nil {
				return nil, ez.Internal("create business failed", err)
			}
			return b, nil
		},
	})

	type businessUpdateIn struct {
		Name                *string  `json:"name"                binding:"omitempty,max=191"`
		Description         *string  `json:"description"`
		Location            *string  `json:"location"            binding:"omitempty,max=191"`
		Website             *string  `json:"website"             binding:"omitempty,max=255"`
		Logo                *string  `json:"logo"                binding:"omitempty,max=255"`
		SustainabilityScore *int     `json:"sustainabilityScore" binding:"omitempty,min=0,max=100"`
		Categories          []string `json:"categories"`
	}

	ez.RegisterAction[businessUpdateIn, *domain.Business](ezAuth, m.DB, ez.Action[businessUpdateIn, *domain.Business]{
		Method: http.MethodPut,
		Path:   "/businesses/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *businessUpdateIn) (*domain.Business, error) {
			businesses := repo.NewBusinessRepo(tx)
			b, err := businesses.FindByID(c, c.Param("id"))
			if err != nil {
				return nil, ez.Internal("db error", err)
			}
			if b == nil {
				return nil, ez.NotFound("business not found")
			}
			guard := newGuard(tx)
			if err := guard.AuthorizeMutate(c.GetString("userId"), c.GetString("role"), b.CreatedBy); err != nil {
				return nil, err
			}
			if in.Name != nil {
				b.Name = *in.Name
			}
			if in.Description != nil {
				b.Description = *in.Description
			}
			if in.Location != nil {
				b.Location = *in.Location
			}
			if in.Website != nil {
				b.Website = *in.Website
			}
			if in.Logo != nil {
				b.Logo = *in.Logo
			}
			if in.SustainabilityScore != nil {
				b.SustainabilityScore = *in.SustainabilityScore
			}
			if in.Categories != nil {
				b.Categories = in.Categories
			}
			if err := businesses.Update(c, b); err != nil {
				return nil, ez.Internal("update business failed", err)
			}
			if m.Cache != nil {
				m.Cache.Invalidate(c, businessCacheKey(b.ID))
			}
			return b, nil
		},
	})

	ez.RegisterAction[struct{}, gin.H](ezAuth, m.DB, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/businesses/:id",
		Binder: ez.BindNone,
		Auth:   true,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			businesses := repo.NewBusinessRepo(tx)
			id := c.Param("id")
			b, err := businesses.FindByID(c, id)
			if err != nil {
				return nil, ez.Internal("db error", err)
			}
			if b == nil {
				return nil, ez.NotFound("business not found")
			}
			guard := newGuard(tx)
			if err := guard.AuthorizeMutate(c.GetString("userId"), c.GetString("role"), b.CreatedBy); err != nil {
				return nil, err
			}
			t := domain.Target{Kind: domain.TargetBusiness, ID: id}
			if err := repo.NewRatingRepo(tx).DeleteByTarget(c, t); err != nil {
				return nil, ez.Internal("delete ratings failed", err)
			}
			if err := businesses.Delete(c, id); err != nil {
				return nil, ez.Internal("delete business failed", err)
			}
			if m.Cache != nil {
				m.Cache.Invalidate(c, businessCacheKey(id))
			}
			return gin.H{"id": id}, nil
		},
	})
}
