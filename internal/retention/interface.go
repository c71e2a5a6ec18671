package retention

import "context"

// UseCase runs the two-stage retention of reports: expire, then hard delete after the grace period.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// ExpireReports soft deletes live reports whose expires_at has passed.
	ExpireReports(ctx context.Context) (int64, error)
	// DeleteExpiredReports hard deletes reports expired for longer than the grace period.
	DeleteExpiredReports(ctx context.Context) (int64, error)
	// Sweep runs both passes. A failing pass does not stop the other.
	Sweep(ctx context.Context) (SweepOutput, error)
}
