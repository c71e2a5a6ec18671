package report

import (
	"fmt"
	"time"

	"report-srv/internal/model"
)

const (
	// MaxQueryLength bounds the free-text question a user can submit.
	MaxQueryLength = 4000

	EventTypeGenerating = "report.generating"
	EventTypeCompleted  = "report.completed"
	EventTypeFailed     = "report.failed"
)

// Content is the structured body produced by the Generator.
type Content struct {
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	Sections        []Section `json:"sections"`
	Recommendations []string  `json:"recommendations,omitempty"`
}

type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

type CreateReportInput struct {
	Query string
}

type CreateReportOutput struct {
	ReportID            string
	Status              model.ReportStatus
	EstimatedCompletion time.Time
	ExpiresAt           time.Time
}

type TriggerGenerationInput struct {
	ReportID string
}

type GetReportInput struct {
	ReportID string
}

type ListReportsInput struct {
	Skip  int
	Limit int
}

type UpdateStatusInput struct {
	ReportID string
	Status   model.ReportStatus
	// Error is stored as the failure reason; empty clears it.
	Error string
}

type DeleteReportInput struct {
	ReportID string
}

type DownloadReportInput struct {
	ReportID string
}

type ListAllReportsInput struct {
	Skip           int
	Limit          int
	IncludeDeleted bool
}

type RestoreReportInput struct {
	ReportID string
}

type PurgeReportInput struct {
	ReportID string
}

type ReportOutput struct {
	ReportID     string
	UserID       string
	Query        string
	Status       model.ReportStatus
	Content      *Content
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ExpiresAt    time.Time
}

// ReportListItem is the summary projection used in listings.
type ReportListItem struct {
	ReportID  string
	Query     string
	Status    model.ReportStatus
	CreatedAt time.Time
	ExpiresAt time.Time
}

type DownloadOutput struct {
	DownloadURL string
	ExpiresAt   time.Time
	FileName    string
}

// ReportEvent is published on every lifecycle transition driven by generation.
type ReportEvent struct {
	EventType    string
	ReportID     string
	UserID       string
	Status       model.ReportStatus
	ErrorMessage string
	OccurredAt   time.Time
}

// ExportObjectName is the object storage key of a report's Markdown export.
func ExportObjectName(reportID string) string {
	return fmt.Sprintf("reports/%s.md", reportID)
}
