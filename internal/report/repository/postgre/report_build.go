package postgre

import (
	"time"

	"github.com/google/uuid"

	"report-srv/internal/model"
	"report-srv/internal/report/repository"
)

// buildCreateReport - Build gorm Report entity from CreateReportOptions.
func buildCreateReport(opts repository.CreateReportOptions, now time.Time) (*model.Report, error) {
	if opts.UserID == "" {
		return nil, repository.ErrUserRequired
	}

	status := opts.Status
	if status == "" {
		status = model.ReportStatusPending
	}
	if !status.IsValid() {
		return nil, repository.ErrInvalidStatus
	}

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	createdAt := now
	if !opts.CreatedAt.IsZero() {
		createdAt = opts.CreatedAt.UTC()
	}
	expiresAt := opts.ExpiresAt.UTC()
	if expiresAt.Before(createdAt) {
		return nil, repository.ErrInvalidExpiry
	}

	return &model.Report{
		ReportID:  id,
		UserID:    opts.UserID,
		Query:     opts.Query,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}
