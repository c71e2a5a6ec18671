package http

import (
	"errors"

	"report-srv/internal/report"
	pkgErrors "report-srv/pkg/errors"
)

var (
	errReportNotFound     = pkgErrors.NewHTTPError(404, "Report not found")
	errReportNotCompleted = pkgErrors.NewHTTPError(400, "Report is not completed yet")
	errQueryRequired      = pkgErrors.NewHTTPError(400, "Query is required")
	errQueryTooLong       = pkgErrors.NewHTTPError(400, "Query is too long")
	errInvalidStatus      = pkgErrors.NewHTTPError(400, "Invalid report status")
	errGenerationFailed   = pkgErrors.NewHTTPError(502, "Report generation failed")
	errDownloadURLFailed  = pkgErrors.NewHTTPError(500, "Failed to generate download URL")
	errWrongQuery         = pkgErrors.NewHTTPError(400, "Invalid query parameters")
	errInvalidTransition  = pkgErrors.NewHTTPError(409, "Report status does not allow this change")
	errShuttingDown       = pkgErrors.NewHTTPError(503, "Service is shutting down")
)

// mapError turns a usecase error into an HTTP error. Unknown errors panic and are answered by Recovery.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, report.ErrReportNotFound):
		return errReportNotFound
	case errors.Is(err, report.ErrReportNotCompleted):
		return errReportNotCompleted
	case errors.Is(err, report.ErrQueryRequired):
		return errQueryRequired
	case errors.Is(err, report.ErrQueryTooLong):
		return errQueryTooLong
	case errors.Is(err, report.ErrInvalidStatus):
		return errInvalidStatus
	case errors.Is(err, report.ErrGenerationFailed):
		return errGenerationFailed
	case errors.Is(err, report.ErrDownloadURLFailed):
		return errDownloadURLFailed
	case errors.Is(err, report.ErrInvalidTransition):
		return errInvalidTransition
	case errors.Is(err, report.ErrShuttingDown):
		return errShuttingDown
	default:
		panic(err)
	}
}
