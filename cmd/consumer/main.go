package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"report-srv/config"
	"report-srv/config/kafka"
	"report-srv/config/minio"
	"report-srv/config/postgre"
	"report-srv/config/redis"
	"report-srv/internal/consumer"
	"report-srv/pkg/log"
	"report-srv/pkg/openai"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Report Consumer Service...")

	// Kafka Producer (report lifecycle events)
	kafkaProducer, err := kafka.ConnectProducer(cfg.Kafka)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Kafka producer: %v", err)
		return
	}
	defer kafka.DisconnectProducer()
	logger.Info(ctx, "Kafka producer initialized")

	// Kafka Consumer Group (payment events)
	kafkaConsumer, err := kafka.ConnectConsumer(cfg.Kafka)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Kafka consumer: %v", err)
		return
	}
	defer kafka.DisconnectConsumer()
	logger.Info(ctx, "Kafka consumer group initialized")

	// Redis
	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer redis.Disconnect()
	logger.Info(ctx, "Redis client initialized")

	// PostgreSQL
	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer postgre.Disconnect(context.Background(), postgresDB)
	gormDB, err := postgre.NewGorm(postgresDB)
	if err != nil {
		logger.Errorf(ctx, "Failed to open gorm session: %v", err)
		return
	}
	logger.Info(ctx, "PostgreSQL client initialized")

	// MinIO
	minioClient, err := minio.Connect(ctx, &cfg.MinIO)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
		return
	}
	defer minio.Disconnect()
	logger.Info(ctx, "MinIO client initialized")

	// OpenAI
	openaiClient, err := openai.NewOpenAI(openai.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: cfg.OpenAI.Timeout,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize OpenAI client: %v", err)
		return
	}
	logger.Info(ctx, "OpenAI client initialized")

	// Consumer server
	srv, err := consumer.New(consumer.Config{
		Logger:        logger,
		KafkaConfig:   cfg.Kafka,
		Config:        cfg,
		RedisClient:   redisClient,
		PostgresDB:    postgresDB,
		GormDB:        gormDB,
		MinIOClient:   minioClient,
		KafkaProducer: kafkaProducer,
		KafkaConsumer: kafkaConsumer,
		OpenAIClient:  openaiClient,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to create consumer server: %v", err)
		return
	}

	logger.Info(ctx, "Consumer server starting...")
	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Consumer server error: %v", err)
		return
	}

	logger.Info(ctx, "Consumer server stopped gracefully")
}
