package repository

import (
	"time"

	"report-srv/internal/model"
)

const (
	DefaultFindLimit = 100
)

type FindByIDOptions struct {
	ID string
	// UserID, when set, restricts the lookup to reports owned by that user.
	UserID         string
	IncludeDeleted bool
}

type FindByUserOptions struct {
	UserID         string
	Skip           int
	Limit          int
	IncludeDeleted bool
}

type FindAllOptions struct {
	Skip           int
	Limit          int
	IncludeDeleted bool
}

type CreateReportOptions struct {
	ID        string // generated when empty
	UserID    string
	Query     string
	Status    model.ReportStatus // pending when empty
	ExpiresAt time.Time
	CreatedAt time.Time // now when zero
}

// UpdateReportOptions carries the fields to change. Nil fields are left untouched.
type UpdateReportOptions struct {
	Status  *model.ReportStatus
	Content []byte
	// ErrorMessage set to an empty string clears the stored error.
	ErrorMessage *string
	ExpiresAt    *time.Time
}

// TransitionOptions guards an update with the statuses it may start from.
type TransitionOptions struct {
	ID     string
	From   []model.ReportStatus
	Update UpdateReportOptions
}

type RestoreOptions struct {
	ID string
	// ExpiresAt, when non-zero, replaces expires_at in the same statement.
	ExpiresAt time.Time
}

type ExpireOptions struct {
	Now time.Time
}

type DeleteExpiredOptions struct {
	Now time.Time
}

type DeleteExpiredResult struct {
	Count     int64
	ReportIDs []string
}
