package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sustainably-yours/internal/core/auth"
	"sustainably-yours/internal/domain"
	"sustainably-yours/internal/repo"
	"sustainably-yours/internal/transport/http/ez"
	"sustainably-yours/pkg/utils"
)

// AuthModule /auth/register、/auth/login（公共）+ /me（鉴权）
type AuthModule struct {
	DB    *gorm.DB
	JWTer *auth.JWTer
}

func (AuthModule) Priority() int { return 10 }

type userOut struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toUserOut(u *domain.User) userOut {
	return userOut{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func (m AuthModule) MountAPI(public, authed *gin.RouterGroup) {
	ezPublic := ez.New(public)
	ezAuth := ez.New(authed)

	type registerIn struct {
		Name     string `json:"name"     binding:"required,max=64"`
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role"     binding:"omitempty,oneof=buyer seller"`
	}
	type authOut struct {
		Token string  `json:"token"`
		User  userOut `json:"user"`
	}

	ez.RegisterAction[registerIn, authOut](ezPublic, m.DB, ez.Action[registerIn, authOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, tx *gorm.DB, in *registerIn) (authOut, error) {
			users := repo.NewUserRepo(tx)
			email := strings.ToLower(strings.TrimSpace(in.Email))

			existing, err := users.FindByEmail(c, email)
			if err != nil {
				return authOut{}, ez.Internal("db error", err)
			}
			if existing != nil {
				return authOut{}, ez.BadRequest("email already registered")
			}

			role := in.Role
			if role == "" {
				role = domain.RoleBuyer
			}
			u := &domain.User{
				ID:           utils.NewID(),
				Email:        email,
				Name:         strings.TrimSpace(in.Name),
				PasswordHash: utils.HashPassword(in.Password),
				Role:         role,
			}
			if err := users.Create(c, u); err != nil {
				// 并发兜底：唯一冲突按已注册处理
				if isDupKey(err) {
					return authOut{}, ez.BadRequest("email already registered")
				}
				return authOut{}, ez.Internal("create user failed", err)
			}

			tok, err := m.JWTer.Issue(u.ID, u.Role)
			if err != nil || tok == "" {
				return authOut{}, ez.Internal("issue token failed", err)
			}
			return authOut{Token: tok, User: toUserOut(u)}, nil
		},
	})

	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	ez.RegisterAction[loginIn, authOut](ezPublic, m.DB, ez.Action[loginIn, authOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *loginIn) (authOut, error) {
			users := repo.NewUserRepo(tx)
			u, err := users.FindByEmail(c, strings.ToLower(strings.TrimSpace(in.Email)))
			if err != nil {
				return authOut{}, ez.Internal("db error", err)
			}
			if u == nil || !utils.CheckPassword(in.Password, u.PasswordHash) {
				return authOut{}, ez.Unauthorized("invalid credentials")
			}
			tok, err := m.JWTer.Issue(u.ID, u.Role)
			if err != nil || tok == "" {
				return authOut{}, ez.Internal("issue token failed", err)
			}
			return authOut{Token: tok, User: toUserOut(u)}, nil
		},
	})

	ez.RegisterAction[struct{}, userOut](ezAuth, m.DB, ez.Action[struct{}, userOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (userOut, error) {
			u, err := currentUser(c, tx)
			if err != nil {
				return userOut{}, err
			}
			return toUserOut(u), nil
		},
	})

	type updateMeIn struct {
		Name     string `json:"name"     binding:"omitempty,max=64"`
		Email    string `json:"email"    binding:"omitempty,email"`
		Password string `json:"password" binding:"omitempty,min=6"`
	}

	ez.RegisterAction[updateMeIn, userOut](ezAuth, m.DB, ez.Action[updateMeIn, userOut]{
		Method: http.MethodPut,
		Path:   "/me",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *updateMeIn) (userOut, error) {
			users := repo.NewUserRepo(tx)
			u, err := currentUser(c, tx)
			if err != nil {
				return userOut{}, err
			}
			if in.Name != "" {
				u.Name = strings.TrimSpace(in.Name)
			}
			if in.Email != "" {
				u.Email = strings.ToLower(strings.TrimSpace(in.Email))
			}
			if in.Password != "" {
				u.PasswordHash = utils.HashPassword(in.Password)
			}
			if err := users.Update(c, u); err != nil {
				if isDupKey(err) {
					return userOut{}, ez.BadRequest("email already registered")
				}
				return userOut{}, ez.Internal("update user failed", err)
			}
			return toUserOut(u), nil
		},
	})
}

// currentUser 按 JWT 里的 uid 取用户行（同时校验账号仍然存在）
func currentUser(c *gin.Context, tx *gorm.DB) (*domain.User, error) {
	uid := c.GetString("userId")
	if uid == "" {
		return nil, ez.Unauthorized("unauthorized")
	}
	u, err := repo.NewUserRepo(tx).FindByID(c, uid)
	if err != nil {
		return nil, ez.Internal("db error", err)
	}
	if u == nil {
		return nil, ez.Unauthorized("account no longer exists")
	}
	return u, nil
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
