package consumer

import (
	"context"
	"database/sql"

	"report-srv/config"
	pkgKafka "report-srv/pkg/kafka"
	"report-srv/pkg/log"
	"report-srv/pkg/minio"
	"report-srv/pkg/openai"
	"report-srv/pkg/redis"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ConsumerServer runs the background side of the service: Kafka consumers and the retention scheduler.
type ConsumerServer struct {
	// Core Configuration
	l           log.Logger
	kafkaConfig config.KafkaConfig
	config      *config.Config

	// Infrastructure clients
	redisClient   redis.IRedis
	postgresDB    *sql.DB
	gormDB        *gorm.DB
	minioClient   minio.MinIO
	kafkaProducer pkgKafka.IProducer
	kafkaConsumer pkgKafka.IConsumer

	// AI clients
	openaiClient openai.IOpenAI
}

// Config holds all dependencies for the consumer server
type Config struct {
	// Core Configuration
	Logger      log.Logger
	KafkaConfig config.KafkaConfig
	Config      *config.Config

	// Infrastructure clients
	RedisClient   redis.IRedis
	PostgresDB    *sql.DB
	GormDB        *gorm.DB
	MinIOClient   minio.MinIO
	KafkaProducer pkgKafka.IProducer
	// KafkaConsumer is optional; the report consumer creates its own group when nil.
	KafkaConsumer pkgKafka.IConsumer

	// AI clients
	OpenAIClient openai.IOpenAI
}

// Run starts the consumer server and blocks until ctx is cancelled.
func (srv *ConsumerServer) Run(ctx context.Context) error {
	domains, err := srv.setupDomains(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "Failed to setup domains: %v", err)
		return err
	}

	// Workers run on ctx; the group only collects start errors.
	var g errgroup.Group
	g.Go(func() error {
		return srv.startConsumers(ctx, domains)
	})
	g.Go(func() error {
		return srv.startScheduler(ctx, domains)
	})

	if err := g.Wait(); err != nil {
		srv.l.Errorf(ctx, "Failed to start background workers: %v", err)
		srv.stop(ctx, domains)
		return err
	}

	srv.l.Info(ctx, "Consumer Server is running")

	<-ctx.Done()
	srv.l.Info(ctx, "Shutdown signal received, stopping consumers...")

	srv.stop(context.WithoutCancel(ctx), domains)

	srv.l.Info(ctx, "Consumer Server stopped gracefully")
	return nil
}
