package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sustainably-yours/internal/domain"
	"sustainably-yours/internal/repo"
	"sustainably-yours/internal/transport/http/ez"
)

// AdminUserModule 用户管理 + 运营统计（仅 admin 引擎挂载）
type AdminUserModule struct {
	DB *gorm.DB
}

func (m AdminUserModule) MountAdmin(admin *gin.RouterGroup) {
	ezAdmin := ez.New(admin)

	type listQ struct {
		Search string `form:"search"`
		Page   int    `form:"page,default=1"`
		Limit  int    `form:"limit,default=20"`
	}
	type row struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Name      string    `json:"name"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}

	ez.RegisterAction[listQ, listOut[row]](ezAdmin, m.DB, ez.Action[listQ, listOut[row]]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, tx *gorm.DB, in *listQ) (listOut[row], error) {
			page := in.Page
			if page < 1 {
				page = 1
			}
			limit := in.Limit
			if limit < 1 || limit > 100 {
				limit = 20
			}
			users, total, err := repo.NewUserRepo(tx).List(c, domain.UserListQuery{
				Search: in.Search,
				Offset: (page - 1) * limit,
				Limit:  limit,
			})
			if err != nil {
				return listOut[row]{}, ez.Internal("list users failed", err)
			}
			rows := make([]row, 0, len(users))
			for _, u := range users {
				rows = append(rows, row{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt})
			}
			return newListOut(rows, page, limit, total), nil
		},
	})

	type roleIn struct {
		Role string `json:"role" binding:"required"`
	}

	ez.RegisterAction[roleIn, userOut](ezAdmin, m.DB, ez.Action[roleIn, userOut]{
		Method: http.MethodPatch,
		Path:   "/users/:id/role",
		Binder: ez.BindJSON,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, tx *gorm.DB, in *roleIn) (userOut, error) {
			if !domain.ValidRole(in.Role) {
				return userOut{}, ez.BadRequest("invalid role: " + in.Role)
			}
			users := repo.NewUserRepo(tx)
			u, err := users.FindByID(c, c.Param("id"))
			if err != nil {
				return userOut{}, ez.Internal("db error", err)
			}
			if u == nil {
				return userOut{}, ez.NotFound("user not found")
			}
			u.Role = in.Role
			if err := users.Update(c, u); err != nil {
				return userOut{}, ez.Internal("update role failed", err)
			}
			return toUserOut(u), nil
		},
	})

	// 删除用户：仍持有商品/商家时拒绝；本人评分连带删除并重算目标均分
	ez.RegisterAction[struct{}, gin.H](ezAdmin, m.DB, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			users := repo.NewUserRepo(tx)
			u, err := users.FindByID(c, id)
			if err != nil {
				return nil, ez.Internal("db error", err)
			}
			if u == nil {
				return nil, ez.NotFound("user not found")
			}

			if n, err := repo.NewProductRepo(tx).CountByOwner(c, id); err != nil {
				return nil, ez.Internal("db error", err)
			} else if n > 0 {
				return nil, ez.Conflict("user still owns products")
			}
			if n, err := repo.NewBusinessRepo(tx).CountByOwner(c, id); err != nil {
				return nil, ez.Internal("db error", err)
			} else if n > 0 {
				return nil, ez.Conflict("user still owns businesses")
			}

			ratings := repo.NewRatingRepo(tx)
			authored, err := ratings.ListByUser(c, id)
			if err != nil {
				return nil, ez.Internal("db error", err)
			}
			agg := newAggregator(tx)
			for _, r := range authored {
				if err := ratings.Delete(c, r.ID); err != nil {
					return nil, ez.Internal("delete rating failed", err)
				}
				t, terr := r.Target()
				if terr != nil {
					continue
				}
				if _, err := agg.Recompute(c, t); err != nil {
					return nil, ez.Internal("recompute average failed", err)
				}
			}

			if err := users.SoftDelete(c, id); err != nil {
				return nil, ez.Internal("delete user failed", err)
			}
			return gin.H{"id": id}, nil
		},
	})
}
