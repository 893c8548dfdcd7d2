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
	"github.com/rs/cors"

	"post-dashboard/internal/logger"
	"post-dashboard/cmd/mockapi/auth"
	"post-dashboard/cmd/mockapi/router"
	"post-dashboard/config"
	"post-dashboard/db"
	"post-dashboard/repositories"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init("mockapi", cfg.Logging.Level)
	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to init MongoDB: %v", err)
		os.Exit(1)
	}

	tokens, err := auth.NewJWTManager(cfg.MockAPI.JWTSecret, "", cfg.MockAPI.TokenTTL)
	if err != nil {
		logger.Log.Errorf("jwt manager init failed: %v", err)
		os.Exit(1)
	}

	posts := repositories.NewPostRepository(db.Database())
	users := repositories.NewUserRepository(db.Database())
	if err := seed(ctx, cfg.MockAPI, users, posts); err != nil {
		logger.Log.Errorf("seed failed: %v", err)
		os.Exit(1)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
	})

	srv := &http.Server{
		Addr:    cfg.MockAPI.Addr,
		Handler: c.Handler(router.New(router.Deps{Posts: posts, Users: users, Tokens: tokens})),
	}

	go func() {
		logger.InfoWithFields("mockapi listening", logger.Fields{"addr": cfg.MockAPI.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("http server error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("received shutdown signal, shutting down mockapi...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("mockapi forced to shutdown: %v", err)
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		logger.Log.Errorf("mongo disconnect failed: %v", err)
	}
	logger.Log.Info("mockapi stopped")
}
