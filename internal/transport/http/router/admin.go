package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-library/internal/core/auth"
	mdw "go-gin-gorm-library/internal/transport/http/middleware"
)

func NewAdminEngine(l *zap.Logger, o EngineOptions, jwter *auth.JWTer, reg *Registry) *gin.Engine {
	r := base(l, o)

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, auth.RoleAdmin))

	reg.MountAdmin(admin)
	return r
}
