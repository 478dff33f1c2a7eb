package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storerating/internal/config"
	"storerating/internal/database"
	"storerating/pkg/logger"
	"storerating/pkg/rabbitmq"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.IsDevelopment()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// --- Database ---
	dbLogLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		dbLogLevel = gormlogger.Info
	}
	db, err := database.Open(database.Config{Driver: cfg.DBDriver, DSN: cfg.DatabaseDSN, LogLevel: dbLogLevel})
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.DBResetOnStart {
		if !cfg.IsDevelopment() {
			logger.Log.Fatal("DB_RESET_ON_START is only allowed in development")
		}
		err = database.Reset(db)
	} else {
		err = database.Migrate(db)
	}
	if err != nil {
		logger.Log.Fatal("Failed to initialize schema", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- RabbitMQ Producer ---
	// Connects in the background; the API serves requests while the broker is down.
	deps := appDeps{cfg: cfg, db: db, brokerStatus: rabbitmq.NewStatus()}
	var producer *rabbitmq.Producer
	if cfg.RabbitMQURL != "" {
		producer = rabbitmq.NewProducer(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange}, deps.brokerStatus)
		producer.Start(ctx)
		deps.events = producer
	} else {
		logger.Log.Info("RABBITMQ_URL not set, domain events disabled")
	}

	// --- Redis for auth throttling ---
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Log.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		deps.redis = redis.NewClient(opts)
		defer deps.redis.Close()
		logger.Log.Info("Auth rate limiting enabled",
			zap.Int("max_requests", cfg.RateLimitMaxRequests), zap.Duration("window", cfg.RateLimitWindow))
	}

	app := newApp(deps)

	// --- Start HTTP Server ---
	logger.Log.Info("Starting server", zap.String("port", cfg.AppPort), zap.String("env", cfg.Environment))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	logger.Log.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logger.Log.Error("Error during Fiber shutdown", zap.Error(err))
	}

	cancel()
	if producer != nil {
		<-producer.Done()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Log.Info("Server gracefully stopped")
}
