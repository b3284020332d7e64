package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-library/internal/core/auth"
	"go-gin-gorm-library/internal/core/server"
	mdw "go-gin-gorm-library/internal/transport/http/middleware"
)

// Limits 入口限流/超时参数，0 表示关闭对应中间件
type Limits struct {
	RPS            float64
	Burst          int
	PerIPRPS       float64
	PerIPBurst     int
	MaxConcurrent  int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

type EngineOptions struct {
	Server server.Options
	Limits Limits
}

// base 两个引擎共用的中间件链 + /health + /metrics
func base(l *zap.Logger, o EngineOptions) *gin.Engine {
	r := server.NewRouter(l, o.Server)

	// Recovery 在 AccessLog 之后，panic 也能留下访问日志
	r.Use(mdw.RequestID(), mdw.Metrics(o.Server.Name), mdw.AccessLog(l), mdw.Recovery(l))
	lim := o.Limits
	if lim.RPS > 0 {
		r.Use(mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst))
	}
	if lim.PerIPRPS > 0 {
		r.Use(mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst))
	}
	if lim.MaxConcurrent > 0 {
		r.Use(mdw.ConcurrencyLimit(lim.MaxConcurrent))
	}
	if lim.MaxBodyBytes > 0 {
		r.Use(mdw.MaxBodyBytes(lim.MaxBodyBytes))
	}
	if lim.RequestTimeout > 0 {
		r.Use(mdw.Timeout(lim.RequestTimeout))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func NewAPIEngine(l *zap.Logger, o EngineOptions, jwter *auth.JWTer, reg *Registry) *gin.Engine {
	r := base(l, o)

	api := r.Group("/api/v1")
	// 鉴权分组（/me 必须挂这里，才能拿到 userId）
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))

	reg.MountAPI(Groups{Public: api, Auth: authed})
	return r
}
