package usecase

import (
	"context"
	"errors"
	"fmt"

	"report-srv/internal/report"
	"report-srv/internal/report/repository"
	"report-srv/internal/retention"
	"report-srv/pkg/minio"
)

// ExpireReports is pass 1 of the sweep.
func (uc *implUseCase) ExpireReports(ctx context.Context) (int64, error) {
	n, err := uc.repo.ExpireOldReports(ctx, repository.ExpireOptions{Now: uc.clock()})
	if err != nil {
		uc.l.Errorf(ctx, "retention.usecase.ExpireReports: Failed to expire reports: %v", err)
		return 0, fmt.Errorf("%w: %w", retention.ErrExpirePassFailed, err)
	}

	if n > 0 {
		uc.l.Infof(ctx, "retention.usecase.ExpireReports: Expired %d reports", n)
	}
	return n, nil
}

// DeleteExpiredReports is pass 2 of the sweep. Exports of deleted reports are removed best effort.
func (uc *implUseCase) DeleteExpiredReports(ctx context.Context) (int64, error) {
	res, err := uc.repo.DeleteExpiredReports(ctx, repository.DeleteExpiredOptions{Now: uc.clock()})
	if err != nil {
		uc.l.Errorf(ctx, "retention.usecase.DeleteExpiredReports: Failed to delete reports: %v", err)
		return 0, fmt.Errorf("%w: %w", retention.ErrDeletePassFailed, err)
	}

	for _, id := range res.ReportIDs {
		uc.removeExport(ctx, id)
	}

	if res.Count > 0 {
		uc.l.Infof(ctx, "retention.usecase.DeleteExpiredReports: Deleted %d reports", res.Count)
	}
	return res.Count, nil
}

// Sweep runs both passes under the sweep lock and joins their errors.
func (uc *implUseCase) Sweep(ctx context.Context) (retention.SweepOutput, error) {
	out := retention.SweepOutput{StartedAt: uc.clock()}

	release, acquired := uc.acquireLock(ctx)
	if !acquired {
		uc.l.Infof(ctx, "retention.usecase.Sweep: Another sweep is running, skipping")
		out.Skipped = true
		out.FinishedAt = uc.clock()
		return out, nil
	}
	defer release()

	var errs []error

	expired, err := uc.ExpireReports(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	out.Expired = expired

	deleted, err := uc.DeleteExpiredReports(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	out.Deleted = deleted

	out.StaleGenerating = uc.checkStaleGenerating(ctx)
	out.FinishedAt = uc.clock()

	uc.l.Infof(ctx, "retention.usecase.Sweep: expired=%d deleted=%d stale_generating=%d",
		out.Expired, out.Deleted, out.StaleGenerating)

	return out, errors.Join(errs...)
}

// checkStaleGenerating logs reports stuck in generating. They are left untouched.
func (uc *implUseCase) checkStaleGenerating(ctx context.Context) int64 {
	before := uc.clock().Add(-uc.config.StaleGeneratingAfter)
	n, err := uc.repo.CountStaleGenerating(ctx, before)
	if err != nil {
		uc.l.Warnf(ctx, "retention.usecase.checkStaleGenerating: Failed to count: %v", err)
		return 0
	}
	if n > 0 {
		uc.l.Warnf(ctx, "retention.usecase.checkStaleGenerating: %d reports generating since before %s", n, before)
	}
	return n
}

func (uc *implUseCase) removeExport(ctx context.Context, reportID string) {
	if uc.minio == nil {
		return
	}
	err := uc.minio.DeleteFile(ctx, uc.config.ReportBucket, report.ExportObjectName(reportID))
	if err != nil && !minio.IsNotFound(err) {
		uc.l.Warnf(ctx, "retention.usecase.removeExport: Failed to delete export of %s: %v", reportID, err)
	}
}
