package repository

import (
	"context"
	"time"

	"report-srv/internal/model"
)

// HardDeleteGracePeriod is how long a soft-deleted report stays restorable
// before the retention sweep removes it for good.
const HardDeleteGracePeriod = 90 * 24 * time.Hour

//go:generate mockery --name ReportRepository
type ReportRepository interface {
	// FindByID returns nil, nil when no row matches.
	FindByID(ctx context.Context, opts FindByIDOptions) (*model.Report, error)
	FindByUser(ctx context.Context, opts FindByUserOptions) ([]model.Report, error)
	FindAll(ctx context.Context, opts FindAllOptions) ([]model.Report, error)
	Create(ctx context.Context, opts CreateReportOptions) (*model.Report, error)
	// Update returns nil, nil when the report does not exist. Expired rows are updatable.
	Update(ctx context.Context, id string, opts UpdateReportOptions) (*model.Report, error)
	// Transition applies opts.Update only while the current status is one of opts.From.
	// It returns nil, nil when no row matched both.
	Transition(ctx context.Context, opts TransitionOptions) (*model.Report, error)
	SoftDelete(ctx context.Context, id string) (*model.Report, error)
	SoftDeleteOwned(ctx context.Context, id, userID string) (bool, error)
	HardDelete(ctx context.Context, id string) (bool, error)
	// Restore returns nil, nil unless the report is currently expired.
	Restore(ctx context.Context, opts RestoreOptions) (*model.Report, error)

	ExpireOldReports(ctx context.Context, opts ExpireOptions) (int64, error)
	DeleteExpiredReports(ctx context.Context, opts DeleteExpiredOptions) (DeleteExpiredResult, error)
	CountStaleGenerating(ctx context.Context, before time.Time) (int64, error)
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	ReportRepository
}
