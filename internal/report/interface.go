package report

import (
	"context"

	"report-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	CreateReport(ctx context.Context, sc model.Scope, input CreateReportInput) (CreateReportOutput, error)
	// TriggerReportGeneration runs generation to completion before returning.
	TriggerReportGeneration(ctx context.Context, input TriggerGenerationInput) error
	// StartReportGeneration validates the report and runs generation in the background.
	StartReportGeneration(ctx context.Context, input TriggerGenerationInput) error
	GetReport(ctx context.Context, sc model.Scope, input GetReportInput) (ReportOutput, error)
	ListUserReports(ctx context.Context, sc model.Scope, input ListReportsInput) ([]ReportListItem, error)
	UpdateReportStatus(ctx context.Context, input UpdateStatusInput) error
	SoftDeleteReport(ctx context.Context, sc model.Scope, input DeleteReportInput) (bool, error)
	DownloadReport(ctx context.Context, sc model.Scope, input DownloadReportInput) (DownloadOutput, error)

	ListAllReports(ctx context.Context, input ListAllReportsInput) ([]ReportOutput, error)
	RestoreReport(ctx context.Context, input RestoreReportInput) (ReportOutput, error)
	PurgeReport(ctx context.Context, input PurgeReportInput) (bool, error)

	// Shutdown stops accepting background generations and waits for running ones.
	// Runs still going when ctx is done are cancelled and recorded as failed.
	Shutdown(ctx context.Context) error
}

// Generator writes the report body for a user query.
// Any returned error means generation failed as a whole.
//
//go:generate mockery --name Generator
type Generator interface {
	Generate(ctx context.Context, query string) (Content, error)
}

// Producer publishes report lifecycle events.
//
//go:generate mockery --name Producer
type Producer interface {
	PublishReportEvent(ctx context.Context, event ReportEvent) error
}
