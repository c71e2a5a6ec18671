package usecase

import (
	"context"
	"sync"
	"time"

	"report-srv/internal/report"
	"report-srv/internal/report/repository"
	"report-srv/pkg/log"
	"report-srv/pkg/minio"
)

const (
	defaultExpiryDays        = 30
	defaultReportBucket      = "study-reports"
	defaultDownloadURLExpiry = 15 * time.Minute
	defaultListLimit         = 50

	// estimatedGenerationTime is the completion hint returned by CreateReport.
	estimatedGenerationTime = 3 * time.Minute
)

// Config holds configuration for the report lifecycle.
type Config struct {
	// ExpiryDays is the primary retention window (REPORT_EXPIRY_DAYS).
	ExpiryDays        int
	ReportBucket      string
	DownloadURLExpiry time.Duration
}

type implUseCase struct {
	l         log.Logger
	repo      repository.PostgresRepository
	generator report.Generator
	producer  report.Producer
	minio     minio.MinIO
	config    Config
	clock     func() time.Time

	// Background generations started by StartReportGeneration.
	bgCtx    context.Context
	bgCancel context.CancelFunc
	bgWG     sync.WaitGroup
	bgMu     sync.Mutex
	bgClosed bool
}

// New creates a new report UseCase implementation.
// producer and minioClient may be nil; events and exports are then skipped.
func New(
	l log.Logger,
	repo repository.PostgresRepository,
	generator report.Generator,
	producer report.Producer,
	minioClient minio.MinIO,
	cfg Config,
) report.UseCase {
	if cfg.ExpiryDays <= 0 {
		cfg.ExpiryDays = defaultExpiryDays
	}
	if cfg.ReportBucket == "" {
		cfg.ReportBucket = defaultReportBucket
	}
	if cfg.DownloadURLExpiry <= 0 {
		cfg.DownloadURLExpiry = defaultDownloadURLExpiry
	}

	bgCtx, bgCancel := context.WithCancel(context.Background())

	return &implUseCase{
		l:         l,
		repo:      repo,
		generator: generator,
		producer:  producer,
		minio:     minioClient,
		config:    cfg,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		bgCtx:    bgCtx,
		bgCancel: bgCancel,
	}
}

func (uc *implUseCase) expiryWindow() time.Duration {
	return time.Duration(uc.config.ExpiryDays) * 24 * time.Hour
}
