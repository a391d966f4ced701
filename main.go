package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"vidshare/internal/config"
	"vidshare/internal/database"
	"vidshare/internal/server"
	"vidshare/internal/workers"
	"vidshare/pkg/cache"
	"vidshare/pkg/logger"
	"vidshare/pkg/rabbitmq"
	"vidshare/pkg/storage"

	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- Optional backends ---
	var backends server.Backends

	if cfg.RedisAddr != "" {
		rdb, err := cache.NewClient(ctx, cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, video cache disabled")
		} else {
			defer rdb.Close()
			backends.Cache = cache.NewVideoCache(rdb, cfg.CacheTTL)
		}
	}

	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.WithError(err).Warn("RabbitMQ unavailable, engagement events disabled")
		} else {
			defer mqClient.Close() // Ensure the connection is closed on exit
			backends.Publisher = mqClient
		}
	}

	if cfg.MinioEndpoint != "" {
		signer, err := storage.NewMinioSigner(storage.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			Region:    cfg.MinioRegion,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			log.WithError(err).Warn("MinIO unavailable, uploads disabled")
		} else if err := signer.EnsureBucket(ctx); err != nil {
			log.WithError(err).Warn("MinIO bucket unavailable, uploads disabled")
		} else {
			backends.Signer = signer
		}
	}

	app := server.New(cfg, db, backends)

	// --- Reconcile worker ---
	if backends.Publisher != nil {
		worker := workers.NewReconcileWorker(app.Counters)
		if err := worker.Start(ctx, mqClient); err != nil {
			log.WithError(err).Error("Failed to start reconcile worker")
		}
	}

	// --- Start HTTP Server ---
	log.Infof("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Info("Shutting down server...")
	cancel()

	if err := app.Fiber.Shutdown(); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}

	log.Info("Server gracefully stopped")
}
