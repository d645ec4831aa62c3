package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/OasisOfCleanCode/identity-service/config"
	"github.com/OasisOfCleanCode/identity-service/db"
	"github.com/OasisOfCleanCode/identity-service/internal/cache"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/handler"
	repo "github.com/OasisOfCleanCode/identity-service/internal/identity/repository/postgres"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/service"
	"github.com/OasisOfCleanCode/identity-service/internal/notifier"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	slog.Info("starting identity service", "config", cfg.String())

	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	defer dbPool.Close()

	banList, err := cache.NewBanListFromURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis init failed: %v", err)
	}

	repository := repo.NewRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	verifications := service.NewVerificationService(repository, repository, notifier.NewLogNotifier(), cfg.VerificationExpiryDays)
	userService := service.NewUserService(repository, repository, verifications, tokenService, cfg)
	gate := handler.NewGate(tokenService, repository, repository, banList)
	authHandler := handler.NewAuthHandler(userService, verifications, tokenService, gate)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
