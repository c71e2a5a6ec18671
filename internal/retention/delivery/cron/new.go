package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"report-srv/internal/retention"
	"report-srv/pkg/log"
)

// DefaultSchedule runs the sweep daily at 03:00 UTC. Six fields, seconds first.
const DefaultSchedule = "0 0 3 * * *"

// Scheduler runs the retention sweep on a cron schedule.
type Scheduler interface {
	Start(ctx context.Context) error
	// Stop waits for a running sweep to finish.
	Stop()
}

type Config struct {
	Logger   log.Logger
	UseCase  retention.UseCase
	Schedule string
	// Timeout bounds a single sweep. Zero means no bound.
	Timeout time.Duration
}

type scheduler struct {
	l        log.Logger
	uc       retention.UseCase
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
}

func New(cfg Config) (Scheduler, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.UseCase == nil {
		return nil, fmt.Errorf("usecase is required")
	}
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}

	cl := cronLogger{l: cfg.Logger}
	return &scheduler{
		l:        cfg.Logger,
		uc:       cfg.UseCase,
		schedule: cfg.Schedule,
		timeout:  cfg.Timeout,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}, nil
}
