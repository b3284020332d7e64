// Package bootstrap 按配置组装依赖；cmd/api、cmd/admin、cmd/ctl 共用
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-gin-gorm-library/internal/core/auth"
	"go-gin-gorm-library/internal/core/cache"
	"go-gin-gorm-library/internal/core/clock"
	"go-gin-gorm-library/internal/core/config"
	"go-gin-gorm-library/internal/core/database"
	"go-gin-gorm-library/internal/core/events"
	"go-gin-gorm-library/internal/core/logger"
	"go-gin-gorm-library/internal/core/server"
	"go-gin-gorm-library/internal/domain"
	"go-gin-gorm-library/internal/repo"
	"go-gin-gorm-library/internal/service"
	"go-gin-gorm-library/internal/transport/http/handler"
	"go-gin-gorm-library/internal/transport/http/router"
	"go-gin-gorm-library/pkg/utils"
)

// NewLogger 按 log.file.enable 决定是否写滚动文件；同时接管标准库 log
func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	var (
		l       *zap.Logger
		cleanup func()
	)
	if f := cfg.Log.File; f.Enable {
		l, cleanup = logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, f.Filename, f.MaxSizeMB, f.MaxBackups, f.MaxAgeDays, f.Compress)
	} else {
		l, cleanup = logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	l = l.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))
	undo := logger.RedirectStdLog(l.Named("stdlog"), zapcore.InfoLevel)
	return l, func() {
		undo()
		cleanup()
	}
}

// OpenDB 只打开连接，不做迁移；cmd/ctl migrate 直接使用
func OpenDB(cfg *config.Config, l *zap.Logger) (*gorm.DB, func() error, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		SlowThresholdMs:    cfg.DB.SlowThresholdMs,
	}, l)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	closeDB := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))
	return db, closeDB, nil
}

type App struct {
	Cfg   *config.Config
	Log   *zap.Logger
	DB    *gorm.DB
	Store *repo.Store
	Clock domain.Clock
	JWT   *auth.JWTer
	Cache *cache.Cache
	Bus   domain.EventBus

	Members   *service.MemberService
	Books     *service.BookService
	Libraries *service.LibraryService
	Loans     *service.LoanService
	Auth      *service.AuthService

	closers []func() error
}

// New 打开数据库（按需迁移）、Redis、事件总线并构造所有用例
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	a := &App{Cfg: cfg, Log: l, Clock: clock.System{}}

	db, closeDB, err := OpenDB(cfg, l)
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.closers = append(a.closers, closeDB)

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, db, cfg.DB.Driver, repo.Models()...); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		l.Info("migrate done")
	}

	var rdb redis.UniversalClient
	if cfg.Redis.Enable {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pctx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			a.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		a.Cache = cache.NewWithClient(rdb, cfg.App.Name+":")
		a.closers = append(a.closers, a.Cache.Close)
		l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	var bus domain.EventBus = events.LogBus{L: l.Named("events")}
	if cfg.Events.Driver == "redis" {
		bus = events.Fanout{bus, events.NewRedisBus(rdb, cfg.Events.Channel, l.Named("events"))}
	}
	counted, err := events.NewCounting(bus, prometheus.DefaultRegisterer)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("event metrics: %w", err)
	}
	a.Bus = counted

	a.JWT = &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		Now:    a.Clock.Now,
	}

	a.Store = repo.NewStore(db, a.Clock)
	repos := a.Store.Repositories()
	hasher := utils.PasswordHasher{Iterations: cfg.Auth.PasswordIterations}

	a.Members = service.NewMemberService(repos, l)
	a.Books = service.NewBookService(repos, l)
	a.Libraries = service.NewLibraryService(repos, l)
	a.Loans = service.NewLoanService(repos, a.Store, a.Clock, a.Bus, l)
	a.Auth = service.NewAuthService(repos, a.Store, hasher, a.JWT, a.Clock, cfg.Auth.AdminEmails, l)
	return a, nil
}

// SeedAdmin auth.adminEmail 与 auth.adminPassword 都配置时才执行
func (a *App) SeedAdmin(ctx context.Context) error {
	c := a.Cfg.Auth
	if c.AdminEmail == "" || c.AdminPassword == "" {
		return nil
	}
	_, err := a.Auth.Seed(ctx, service.SeedAccountCmd{
		Name:     c.AdminName,
		Email:    c.AdminEmail,
		Phone:    c.AdminPhone,
		Password: c.AdminPassword,
	})
	return err
}

// Registry 两个引擎共用同一组模块，各自只挂自己实现的接口
func (a *App) Registry() *router.Registry {
	ttl := time.Duration(a.Cfg.Redis.CacheTTLSec) * time.Second
	return router.NewRegistry(
		handler.NewAuthHandler(a.Auth, a.Log),
		handler.NewMemberHandler(a.Members, a.Cache, ttl, a.Log),
		handler.NewBookHandler(a.Books, a.Log),
		handler.NewLoanHandler(a.Loans, a.Log),
		handler.NewLibraryHandler(a.Libraries, a.Log),
		handler.NewAdminHandler(a.Members, a.Loans, a.Auth, a.Log),
	)
}

func (a *App) EngineOptions(name string) router.EngineOptions {
	mode := gin.DebugMode
	if a.Cfg.App.Env == "prod" {
		mode = gin.ReleaseMode
	}
	lim := a.Cfg.Limits
	return router.EngineOptions{
		Server: server.Options{Name: name, Mode: mode},
		Limits: router.Limits{
			RPS:            lim.RPS,
			Burst:          lim.Burst,
			PerIPRPS:       lim.PerIPRPS,
			PerIPBurst:     lim.PerIPBurst,
			MaxConcurrent:  lim.MaxConcurrent,
			MaxBodyBytes:   lim.MaxBodyBytes,
			RequestTimeout: time.Duration(lim.RequestTimeoutSec) * time.Second,
		},
	}
}

// Close 逆序释放
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Log.Warn("close resource failed", zap.Error(err))
		}
	}
	a.closers = nil
}
