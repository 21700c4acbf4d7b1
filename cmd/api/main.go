package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/platform-admin-api/internal/config"
	"github.com/noah-isme/platform-admin-api/internal/database"
	"github.com/noah-isme/platform-admin-api/internal/handler"
	"github.com/noah-isme/platform-admin-api/internal/middleware"
	"github.com/noah-isme/platform-admin-api/internal/models"
	"github.com/noah-isme/platform-admin-api/internal/repository"
	"github.com/noah-isme/platform-admin-api/internal/router"
	"github.com/noah-isme/platform-admin-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Moderator{}, &models.ActivityLog{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient := newRedisClient(cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	natsConn := newNATSConn(cfg, logger)
	if natsConn != nil {
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityRepo := repository.NewActivityLogRepository(db)
	moderatorRepo := repository.NewModeratorRepository(db)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	activityStream := service.NewActivityStream(natsConn, cfg.ActivityChannel, logger)
	activityStream.Start(shutdownCtx)

	activityService := service.NewActivityService(activityRepo, validate, activityStream, logger)
	recentActivityService := service.NewRecentActivityService(activityRepo, redisClient, cfg.ActivityCacheTTL, logger)
	moderatorService := service.NewModeratorService(moderatorRepo, validate, activityService, cfg.JWTSecret, cfg.SessionTTL, cfg.BcryptCost, logger)

	authHandler := handler.NewAuthHandler(moderatorService, logger)
	moderatorHandler := handler.NewAdminModeratorHandler(moderatorService, logger)
	activityHandler := handler.NewAdminActivityHandler(activityService, recentActivityService, logger)
	streamHandler := handler.NewActivityStreamHandler(activityStream, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:           authHandler,
		ModeratorHandler:      moderatorHandler,
		ActivityHandler:       activityHandler,
		ActivityStreamHandler: streamHandler,
		JWTMiddleware:         middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

// newRedisClient connects to redis when configured; without it the recent
// activity feed is served uncached.
func newRedisClient(cfg config.Config, logger zerolog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		logger.Warn().Msg("redis url not set, recent activity caching disabled")
		return nil
	}

	client, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	return client
}

// newNATSConn connects to NATS when configured; without it the live stream
// only reaches dashboards connected to this node.
func newNATSConn(cfg config.Config, logger zerolog.Logger) *nats.Conn {
	if cfg.NATSURL == "" {
		logger.Warn().Msg("nats url not set, activity stream limited to this node")
		return nil
	}

	conn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}

	return conn
}
