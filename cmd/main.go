package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tograil/Mongocore/config"
	"github.com/tograil/Mongocore/db"
	"github.com/tograil/Mongocore/internal/identity/handler"
	"github.com/tograil/Mongocore/internal/identity/repository/mongodb"
	"github.com/tograil/Mongocore/internal/identity/service"
	"github.com/tograil/Mongocore/internal/observability"
	"github.com/tograil/Mongocore/pkg/constant"
)

func main() {
	cfg := config.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	if err := observability.InitSentry(cfg.SentryDSN, cfg.Env); err != nil {
		logger.Warnw("sentry init failed", "error", err)
	}
	defer observability.FlushSentry()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatalw("database connection failed", "error", err)
	}

	allocator := mongodb.NewSequenceAllocator(database.Collection(constant.CountersCollection))
	userRepo := mongodb.NewUserRepository(database.Collection(constant.UsersCollection), allocator)
	roleRepo := mongodb.NewRoleRepository(database.Collection(constant.RolesCollection), allocator)

	tokenService := service.NewTokenService(cfg.SigningKey, cfg.TokenIssuer, cfg.TokenAudience, cfg.TokenExpiryMin)
	authService := service.NewAuthService(userRepo, roleRepo, tokenService, logger)
	authHandler := handler.NewAuthHandler(authService, tokenService)

	app := fiber.New()
	app.Use(observability.RecoverMiddleware(logger))
	handler.RegisterRoutes(app, authHandler)

	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
