package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"go.uber.org/zap"

	"go-gin-gorm-library/internal/bootstrap"
	"go-gin-gorm-library/internal/core/config"
	"go-gin-gorm-library/internal/core/server"
	"go-gin-gorm-library/internal/transport/http/router"
)

func main() {
	cfg, err := config.Read(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := bootstrap.NewLogger(cfg)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer app.Close()

	// 种子管理员（未配置则跳过）
	if err := app.SeedAdmin(ctx); err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}

	// 路由（用户端）
	r := router.NewAPIEngine(log, app.EngineOptions("api"), app.JWT, app.Registry())

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("library api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	// 运行到收到信号，再优雅关闭
	if err := server.Serve(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("library api stopped with error", zap.Error(err))
		return
	}
	log.Info("library api stopped gracefully")
}
