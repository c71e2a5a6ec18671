package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/internal/report/repository"
	"report-srv/pkg/minio"
)

// CreateReport stores a pending report for the caller. Generation starts only after payment.
func (uc *implUseCase) CreateReport(ctx context.Context, sc model.Scope, input report.CreateReportInput) (report.CreateReportOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return report.CreateReportOutput{}, report.ErrQueryRequired
	}
	if utf8.RuneCountInString(query) > report.MaxQueryLength {
		return report.CreateReportOutput{}, report.ErrQueryTooLong
	}

	now := uc.clock()
	rpt, err := uc.repo.Create(ctx, repository.CreateReportOptions{
		ID:        uuid.New().String(),
		UserID:    sc.UserID,
		Query:     query,
		Status:    model.ReportStatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.expiryWindow()),
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.CreateReport: Failed to create report: %v", err)
		return report.CreateReportOutput{}, err
	}

	uc.l.Infof(ctx, "report.usecase.CreateReport: Created report %s for user %s", rpt.ReportID, rpt.UserID)

	return report.CreateReportOutput{
		ReportID:            rpt.ReportID,
		Status:              rpt.Status,
		EstimatedCompletion: now.Add(estimatedGenerationTime),
		ExpiresAt:           rpt.ExpiresAt,
	}, nil
}

// GetReport returns a live report owned by the caller.
func (uc *implUseCase) GetReport(ctx context.Context, sc model.Scope, input report.GetReportInput) (report.ReportOutput, error) {
	rpt, err := uc.findOwned(ctx, sc, input.ReportID)
	if err != nil {
		return report.ReportOutput{}, err
	}
	return uc.toReportOutput(ctx, rpt), nil
}

// ListUserReports returns the caller's live reports, newest first.
func (uc *implUseCase) ListUserReports(ctx context.Context, sc model.Scope, input report.ListReportsInput) ([]report.ReportListItem, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rpts, err := uc.repo.FindByUser(ctx, repository.FindByUserOptions{
		UserID: sc.UserID,
		Skip:   input.Skip,
		Limit:  limit,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListUserReports: Failed to list reports: %v", err)
		return nil, err
	}

	items := make([]report.ReportListItem, 0, len(rpts))
	for i := range rpts {
		items = append(items, toListItem(&rpts[i]))
	}
	return items, nil
}

// UpdateReportStatus sets status and failure text without touching content.
// The move must follow the lifecycle: nothing returns to pending and expired is left only by restore.
func (uc *implUseCase) UpdateReportStatus(ctx context.Context, input report.UpdateStatusInput) error {
	if !input.Status.IsValid() {
		return report.ErrInvalidStatus
	}
	from := model.SourcesFor(input.Status)
	if len(from) == 0 {
		return fmt.Errorf("%w: cannot move a report to %s", report.ErrInvalidTransition, input.Status)
	}

	opts := repository.UpdateReportOptions{Status: &input.Status}
	if input.Error != "" {
		opts.ErrorMessage = &input.Error
	}

	rpt, err := uc.repo.Transition(ctx, repository.TransitionOptions{
		ID:     input.ReportID,
		From:   from,
		Update: opts,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidStatus) {
			return report.ErrInvalidStatus
		}
		uc.l.Errorf(ctx, "report.usecase.UpdateReportStatus: Failed to update report %s: %v", input.ReportID, err)
		return err
	}
	if rpt == nil {
		return uc.transitionError(ctx, input.ReportID)
	}
	return nil
}

// SoftDeleteReport expires a report owned by the caller. False means nothing matched.
func (uc *implUseCase) SoftDeleteReport(ctx context.Context, sc model.Scope, input report.DeleteReportInput) (bool, error) {
	deleted, err := uc.repo.SoftDeleteOwned(ctx, input.ReportID, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.SoftDeleteReport: Failed to delete report %s: %v", input.ReportID, err)
		return false, err
	}
	if deleted {
		uc.l.Infof(ctx, "report.usecase.SoftDeleteReport: Report %s expired by owner", input.ReportID)
	}
	return deleted, nil
}

// DownloadReport returns a presigned URL for the Markdown export of a completed report.
func (uc *implUseCase) DownloadReport(ctx context.Context, sc model.Scope, input report.DownloadReportInput) (report.DownloadOutput, error) {
	rpt, err := uc.findOwned(ctx, sc, input.ReportID)
	if err != nil {
		return report.DownloadOutput{}, err
	}
	if rpt.Status != model.ReportStatusCompleted {
		return report.DownloadOutput{}, report.ErrReportNotCompleted
	}
	if uc.minio == nil {
		return report.DownloadOutput{}, report.ErrDownloadURLFailed
	}

	objectName := report.ExportObjectName(rpt.ReportID)
	exists, err := uc.minio.FileExists(ctx, uc.config.ReportBucket, objectName)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.DownloadReport: Failed to stat export of %s: %v", rpt.ReportID, err)
		return report.DownloadOutput{}, report.ErrDownloadURLFailed
	}
	if !exists {
		// The export is best effort at completion time, so it may be missing.
		if err := uc.exportReport(ctx, rpt); err != nil {
			uc.l.Errorf(ctx, "report.usecase.DownloadReport: Failed to export report %s: %v", rpt.ReportID, err)
			return report.DownloadOutput{}, report.ErrDownloadURLFailed
		}
	}

	fileName := exportFileName(rpt.ReportID)
	presigned, err := uc.minio.GetPresignedDownloadURL(ctx, &minio.PresignedURLRequest{
		BucketName: uc.config.ReportBucket,
		ObjectName: objectName,
		Expiry:     uc.config.DownloadURLExpiry,
		FileName:   fileName,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.DownloadReport: Failed to generate presigned URL: %v", err)
		return report.DownloadOutput{}, report.ErrDownloadURLFailed
	}

	return report.DownloadOutput{
		DownloadURL: presigned.URL,
		ExpiresAt:   presigned.ExpiresAt,
		FileName:    fileName,
	}, nil
}

// findOwned loads a live report scoped to the caller. Missing and not owned look the same.
func (uc *implUseCase) findOwned(ctx context.Context, sc model.Scope, reportID string) (*model.Report, error) {
	if sc.UserID == "" {
		return nil, report.ErrReportNotFound
	}

	rpt, err := uc.repo.FindByID(ctx, repository.FindByIDOptions{
		ID:     reportID,
		UserID: sc.UserID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.findOwned: Failed to get report %s: %v", reportID, err)
		return nil, fmt.Errorf("get report: %w", err)
	}
	if rpt == nil {
		return nil, report.ErrReportNotFound
	}
	return rpt, nil
}
