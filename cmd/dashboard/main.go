package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"post-dashboard/cmd/dashboard/cache"
	"post-dashboard/cmd/dashboard/clients/authclient"
	"post-dashboard/cmd/dashboard/clients/chartclient"
	"post-dashboard/cmd/dashboard/clients/postclient"
	"post-dashboard/cmd/dashboard/editor"
	"post-dashboard/cmd/dashboard/handlers"
	"post-dashboard/cmd/dashboard/httpclient"
	"post-dashboard/cmd/dashboard/router"
	"post-dashboard/cmd/dashboard/services"
	"post-dashboard/cmd/dashboard/session"
	"post-dashboard/cmd/dashboard/workspace"
	"post-dashboard/internal/logger"
	"post-dashboard/config"
)

// @title           Post Dashboard API
// @version         1.0
// @description     게시판 목록/작성/차트 대시보드 API
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init("dashboard", cfg.Logging.Level)
	gin.SetMode(gin.ReleaseMode)

	sessions, err := session.NewManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL)
	if err != nil {
		logger.Log.Errorf("session manager init failed: %v", err)
		os.Exit(1)
	}

	base := httpclient.NewBaseClient(cfg.API.BaseURL, httpclient.Config{
		Timeout: cfg.API.Timeout,
		Tokens:  session.TokenSource{},
	})

	detailCache, closeCache := newDetailCache(cfg.Cache)
	defer closeCache()

	postSvc := services.NewPostService(postclient.New(base), detailCache)
	deps := router.Deps{
		Auth:       services.NewAuthService(authclient.New(base), sessions),
		Posts:      postSvc,
		Charts:     services.NewChartService(chartclient.New(base)),
		Workspaces: workspace.NewRegistry(cfg.Board.MaxSessions, cfg.Board.SessionIdle, postSvc, cfg.Board.PageSize, cfg.Board.PrefetchMargin),
		Guard:      editor.NewGuard(cfg.Editor.BannedWords),
		Cookie:     handlers.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure},
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Span-Id"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: c.Handler(router.New(deps)),
	}

	go func() {
		logger.InfoWithFields("dashboard listening", logger.Fields{"addr": cfg.Server.Addr, "api_base_url": cfg.API.BaseURL})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("http server error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("received shutdown signal, shutting down dashboard...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("dashboard forced to shutdown: %v", err)
	}
	logger.Log.Info("dashboard stopped")
}

// newDetailCache 는 설정에 따라 메모리 또는 redis 상세 캐시를 만든다.
// redis 에 연결할 수 없으면 메모리 캐시로 대신한다.
func newDetailCache(cfg config.CacheConfig) (cache.DetailCache, func()) {
	if cfg.Backend != "redis" {
		return cache.NewMemory(cfg.Size, cfg.TTL), func() {}
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WarnWithFields("redis unavailable, using memory cache", logger.Fields{"addr": cfg.RedisAddr, "error": err.Error()})
		_ = client.Close()
		return cache.NewMemory(cfg.Size, cfg.TTL), func() {}
	}
	return cache.NewRedis(client, cfg.TTL), func() { _ = client.Close() }
}
