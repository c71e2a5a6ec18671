package repository

import "errors"

var (
	ErrInvalidStatus      = errors.New("repository: invalid report status")
	ErrInvalidExpiry      = errors.New("repository: expires_at before created_at")
	ErrUserRequired       = errors.New("repository: user_id is required")
	ErrNoSourceStatus     = errors.New("repository: transition needs at least one source status")
	ErrReportCreateFailed = errors.New("repository: failed to create report")
)
