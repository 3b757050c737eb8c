package main

import (
	"context"
	"fmt"
	"os"

	"inbox-srv/config"
	"inbox-srv/config/postgre"
	"inbox-srv/internal/httpserver"
	notificationRepo "inbox-srv/internal/notification/repository/postgre"
	notificationUC "inbox-srv/internal/notification/usecase"
	ws "inbox-srv/internal/websocket"
	wsRedis "inbox-srv/internal/websocket/delivery/redis"
	"inbox-srv/pkg/log"
	pkgRedis "inbox-srv/pkg/redis"
	"inbox-srv/pkg/scope"
)

// @title       Inbox Service
// @description Role-targeted notification inbox with real-time WebSocket delivery
// @version     1.0
// @BasePath    /api/v1
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()
	logger.Info(ctx, "Starting inbox service...")

	// Initialize Redis client
	redisClient, err := pkgRedis.NewClient(pkgRedis.Config{
		Addr:            cfg.Redis.Addr,
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		UseTLS:          cfg.Redis.UseTLS,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolSize:        cfg.Redis.PoolSize,
		PoolTimeout:     cfg.Redis.PoolTimeout,
		ConnMaxIdleTime: cfg.Redis.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Redis.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	logger.Infof(ctx, "Redis connected successfully to %s", cfg.Redis.Addr)

	// Initialize PostgreSQL connection
	db, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatalf(ctx, "Failed to connect to PostgreSQL: %v", err)
	}
	defer postgre.Disconnect(db)
	logger.Info(ctx, "PostgreSQL connected successfully")

	// Initialize JWT manager
	jwtManager := scope.New(cfg.JWT.SecretKey)

	// Initialize WebSocket hub and Redis fan-out
	hub := ws.NewHub(logger, cfg.WebSocket.MaxConnections)
	subscriber := wsRedis.NewSubscriber(redisClient, hub, logger)
	publisher := wsRedis.NewPublisher(redisClient, logger)

	// Initialize notification domain
	repo := notificationRepo.New(logger, db)
	uc := notificationUC.New(logger, repo, publisher)

	// Initialize HTTP server
	srv, err := httpserver.New(logger, httpserver.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		Mode:        cfg.Server.Mode,
		Environment: cfg.Environment.Name,

		NotificationUC: uc,

		Hub:        hub,
		Subscriber: subscriber,
		WSConfig:   cfg.WebSocket,

		JWTManager: jwtManager,
		Cookie:     cfg.Cookie,

		Redis: redisClient,
		DB:    db,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize HTTP server: %v", err)
	}

	if err := srv.Run(); err != nil {
		logger.Fatalf(ctx, "Server error: %v", err)
	}
}
