package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/artillio/boutique-api/internal/auth"
	"github.com/artillio/boutique-api/internal/config"
	"github.com/artillio/boutique-api/internal/db"
	"github.com/artillio/boutique-api/internal/server"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Debugw("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err)
	}

	dbConn, err := db.Connect(cfg.DatabaseDSN, cfg.Migrations, sugar)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err)
	}
	if cfg.Seed {
		db.Seed(dbConn, sugar)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	srv := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: server.New(dbConn, tokens, sugar),
	}

	go func() {
		sugar.Infow("starting boutique API server", "addr", cfg.RunAddress, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		sugar.Errorw("error during shutdown", "error", err)
	}
	sugar.Info("server gracefully stopped")
}
