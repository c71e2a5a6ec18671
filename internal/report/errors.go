package report

import "errors"

var (
	ErrReportNotFound     = errors.New("report not found")
	ErrReportNotCompleted = errors.New("report is not completed")
	ErrQueryRequired      = errors.New("query is required")
	ErrQueryTooLong       = errors.New("query is too long")
	ErrInvalidStatus      = errors.New("invalid report status")
	ErrGenerationFailed   = errors.New("report generation failed")
	ErrDownloadURLFailed  = errors.New("failed to generate download URL")
	ErrInvalidTransition  = errors.New("report status does not allow this change")
	ErrShuttingDown       = errors.New("report service is shutting down")
)
