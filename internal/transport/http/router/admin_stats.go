package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sustainably-yours/internal/domain"
	"sustainably-yours/internal/repo"
	"sustainably-yours/internal/transport/http/ez"
)

// AdminStatsModule 运营统计看板数据
type AdminStatsModule struct {
	DB *gorm.DB
}

func (m AdminStatsModule) MountAdmin(admin *gin.RouterGroup) {
	ezAdmin := ez.New(admin)

	ez.RegisterAction[struct{}, []repo.CategoryStat](ezAdmin, m.DB, ez.Action[struct{}, []repo.CategoryStat]{
		Method: http.MethodGet,
		Path:   "/stats/categories",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) ([]repo.CategoryStat, error) {
			stats, err := repo.NewStatsRepo(tx).ProductsByCategory(c)
			if err != nil {
				return nil, ez.Internal("stats query failed", err)
			}
			if stats == nil {
				stats = []repo.CategoryStat{}
			}
			return stats, nil
		},
	})

	type topQ struct {
		Limit int `form:"limit,default=10"`
	}
	ez.RegisterAction[topQ, []domain.Product](ezAdmin, m.DB, ez.Action[topQ, []domain.Product]{
		Method: http.MethodGet,
		Path:   "/stats/top-products",
		Binder: ez.BindQuery,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, tx *gorm.DB, in *topQ) ([]domain.Product, error) {
			limit := in.Limit
			if limit < 1 || limit > 100 {
				limit = 10
			}
			list, err := repo.NewStatsRepo(tx).TopProducts(c, limit)
			if err != nil {
				return nil, ez.Internal("stats query failed", err)
			}
			if list == nil {
				list = []domain.Product{}
			}
			return list, nil
		},
	})

	ez.RegisterAction[struct{}, []repo.MonthCount](ezAdmin, m.DB, ez.Action[struct{}, []repo.MonthCount]{
		Method: http.MethodGet,
		Path:   "/stats/signups",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) ([]repo.MonthCount, error) {
			list, err := repo.NewStatsRepo(tx).MonthlySignups(c)
			if err != nil {
				return nil, ez.Internal("stats query failed", err)
			}
			if list == nil {
				list = []repo.MonthCount{}
			}
			return list, nil
		},
	})
}
