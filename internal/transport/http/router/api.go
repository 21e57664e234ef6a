package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sustainably-yours/internal/core/auth"
	"sustainably-yours/internal/core/cache"
	"sustainably-yours/internal/core/config"
	mdw "sustainably-yours/internal/transport/http/middleware"
)

// NewAPIEngine 面向买家/卖家的 /api/v1 引擎
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, ch *cache.Cache, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.RateLimitPerIP(20, 40),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	// 上传文件静态访问
	r.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)

	api := r.Group("/api/v1")
	// 公共路由尽力解析身份，带合法 token 的匿名可读接口也能拿到 userId
	public := api.Group("")
	public.Use(mdw.OptionalAuth(jwter))
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))

	detailTTL := time.Duration(cfg.Redis.DetailTTLSec) * time.Second
	reg := NewRegistry()
	reg.Register(AuthModule{DB: db, JWTer: jwter})
	reg.Register(ProductModule{DB: db, Cache: ch, DetailTTL: detailTTL})
	reg.Register(BusinessModule{DB: db, Cache: ch, DetailTTL: detailTTL})
	reg.Register(RatingModule{DB: db, Cache: ch})
	reg.Register(UploadModule{DB: db, Cfg: cfg.Upload})

	reg.MountAPI(public, authed)

	return r
}
