package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sustainably-yours/internal/core/auth"
	"sustainably-yours/internal/core/server"
	mdw "sustainably-yours/internal/transport/http/middleware"
)

// NewAdminEngine 管理端引擎，/admin/v1 统一要求 admin 角色。
// 内部流量走 ginzap 基础栈，限流等防护留给用户端
func NewAdminEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(mdw.RequestID(), mdw.Metrics())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, "admin"))

	reg := NewRegistry()
	reg.Register(AdminUserModule{DB: db})
	reg.Register(AdminStatsModule{DB: db})

	reg.MountAdmin(admin)

	return r
}
