package usecase

import (
	"time"

	"report-srv/internal/report/repository"
	"report-srv/internal/retention"
	"report-srv/pkg/log"
	"report-srv/pkg/minio"
	"report-srv/pkg/redis"
)

const (
	sweepLockKey = "report:retention:sweep"

	defaultLockTTL              = 10 * time.Minute
	defaultStaleGeneratingAfter = time.Hour
	defaultReportBucket         = "study-reports"
)

type Config struct {
	ReportBucket         string
	StaleGeneratingAfter time.Duration
	LockTTL              time.Duration
}

type implUseCase struct {
	l      log.Logger
	repo   repository.PostgresRepository
	minio  minio.MinIO
	redis  redis.IRedis
	config Config
	clock  func() time.Time
	// lockToken identifies this process as the lock holder.
	lockToken func() string
}

// New creates the retention UseCase. minioClient and redisClient may be nil:
// exports are then left in place and sweeps run without a lock.
func New(
	l log.Logger,
	repo repository.PostgresRepository,
	minioClient minio.MinIO,
	redisClient redis.IRedis,
	cfg Config,
) retention.UseCase {
	if cfg.ReportBucket == "" {
		cfg.ReportBucket = defaultReportBucket
	}
	if cfg.StaleGeneratingAfter <= 0 {
		cfg.StaleGeneratingAfter = defaultStaleGeneratingAfter
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}

	return &implUseCase{
		l:      l,
		repo:   repo,
		minio:  minioClient,
		redis:  redisClient,
		config: cfg,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		lockToken: newLockToken,
	}
}
