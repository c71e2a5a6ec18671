package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"report-srv/config"
	configKafka "report-srv/config/kafka"
	configMinio "report-srv/config/minio"
	configPostgre "report-srv/config/postgre"
	configRedis "report-srv/config/redis"
	"report-srv/internal/httpserver"
	pkgJWT "report-srv/pkg/jwt"
	pkgKafka "report-srv/pkg/kafka"
	"report-srv/pkg/log"
	"report-srv/pkg/openai"
)

// @title       Study Report Service API
// @description Generates, serves and retires AI study & migration reports.
// @version     1
// @BasePath    /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description User token issued by the identity service. Format: "Bearer {token}"
func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// 3. Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. PostgreSQL
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer configPostgre.Disconnect(context.Background(), postgresDB)
	gormDB, err := configPostgre.NewGorm(postgresDB)
	if err != nil {
		logger.Errorf(ctx, "Failed to open gorm session: %v", err)
		return
	}
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// 5. Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected successfully to %s:%d (DB %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)

	// 6. MinIO
	minioClient, err := configMinio.Connect(ctx, &cfg.MinIO)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
		return
	}
	defer configMinio.Disconnect()
	logger.Infof(ctx, "MinIO connected, bucket %s", cfg.MinIO.Bucket)

	// 7. Kafka producer (optional on the API side)
	var kafkaProducer pkgKafka.IProducer
	if p, err := configKafka.ConnectProducer(cfg.Kafka); err != nil {
		logger.Warnf(ctx, "Kafka producer not available, report events disabled: %v", err)
	} else {
		kafkaProducer = p
		defer configKafka.DisconnectProducer()
		logger.Info(ctx, "Kafka producer initialized")
	}

	// 8. OpenAI
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

	// 9. JWT verifier
	jwtManager, err := pkgJWT.New(pkgJWT.Config{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize JWT manager: %v", err)
		return
	}

	// 10. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		// Server Configuration
		Logger:      logger,
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		// Database Configuration
		PostgresDB: postgresDB,
		GormDB:     gormDB,

		// Infrastructure clients
		RedisClient:   redisClient,
		MinIOClient:   minioClient,
		KafkaProducer: kafkaProducer,
		OpenAIClient:  openaiClient,

		// Authentication & Security Configuration
		Config:     cfg,
		JWTManager: jwtManager,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}
}
