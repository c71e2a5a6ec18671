package consumer

import (
	"context"
	"fmt"

	reportConsumer "report-srv/internal/report/delivery/kafka/consumer"
	reportProducer "report-srv/internal/report/delivery/kafka/producer"
	"report-srv/internal/report/generator"
	reportPostgre "report-srv/internal/report/repository/postgre"
	reportUsecase "report-srv/internal/report/usecase"
	retentionCron "report-srv/internal/retention/delivery/cron"
	retentionUsecase "report-srv/internal/retention/usecase"
)

// domainWorkers holds references to all background workers for cleanup
type domainWorkers struct {
	reportConsumer     reportConsumer.Consumer
	retentionScheduler retentionCron.Scheduler
}

// setupDomains initializes all domain layers (repositories, usecases, consumers, schedulers)
func (srv *ConsumerServer) setupDomains(ctx context.Context) (*domainWorkers, error) {
	repo := reportPostgre.New(srv.gormDB, srv.l)

	gen, err := generator.New(srv.l, srv.openaiClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create report generator: %w", err)
	}

	reportUC := reportUsecase.New(
		srv.l,
		repo,
		gen,
		reportProducer.New(srv.l, srv.kafkaProducer),
		srv.minioClient,
		reportUsecase.Config{
			ExpiryDays:        srv.config.Report.ExpiryDays,
			ReportBucket:      srv.config.MinIO.Bucket,
			DownloadURLExpiry: srv.config.Report.DownloadURLExpiry,
		},
	)

	reportCons, err := reportConsumer.New(reportConsumer.Config{
		Logger:      srv.l,
		KafkaConfig: srv.kafkaConfig,
		UseCase:     reportUC,
		Redis:       srv.redisClient,
		Group:       srv.kafkaConsumer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report consumer: %w", err)
	}
	srv.l.Infof(ctx, "Report domain initialized")

	workers := &domainWorkers{reportConsumer: reportCons}

	if !srv.config.Retention.Enabled {
		srv.l.Infof(ctx, "Retention sweep disabled")
		return workers, nil
	}

	retentionUC := retentionUsecase.New(srv.l, repo, srv.minioClient, srv.redisClient, retentionUsecase.Config{
		ReportBucket:         srv.config.MinIO.Bucket,
		StaleGeneratingAfter: srv.config.Retention.StaleGeneratingAfter,
		LockTTL:              srv.config.Retention.LockTTL,
	})
	scheduler, err := retentionCron.New(retentionCron.Config{
		Logger:   srv.l,
		UseCase:  retentionUC,
		Schedule: srv.config.Retention.Schedule,
		Timeout:  srv.config.Retention.LockTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create retention scheduler: %w", err)
	}
	workers.retentionScheduler = scheduler
	srv.l.Infof(ctx, "Retention domain initialized")

	return workers, nil
}

// startConsumers starts all Kafka consumers in background goroutines
func (srv *ConsumerServer) startConsumers(ctx context.Context, workers *domainWorkers) error {
	if err := workers.reportConsumer.ConsumePaymentEvents(ctx); err != nil {
		return fmt.Errorf("failed to start report consumer: %w", err)
	}

	srv.l.Infof(ctx, "All consumers started successfully")
	return nil
}

// startScheduler starts the retention scheduler when enabled
func (srv *ConsumerServer) startScheduler(ctx context.Context, workers *domainWorkers) error {
	if workers.retentionScheduler == nil {
		return nil
	}
	if err := workers.retentionScheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start retention scheduler: %w", err)
	}
	return nil
}

// stop gracefully stops all background workers
func (srv *ConsumerServer) stop(ctx context.Context, workers *domainWorkers) {
	if workers.retentionScheduler != nil {
		workers.retentionScheduler.Stop()
	}

	if workers.reportConsumer != nil {
		if err := workers.reportConsumer.Close(); err != nil {
			srv.l.Errorf(ctx, "Error closing report consumer: %v", err)
		}
	}

	srv.l.Infof(ctx, "All workers stopped")
}
