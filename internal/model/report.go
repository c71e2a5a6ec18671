package model

import (
	"time"

	"gorm.io/datatypes"
)

// ReportStatus is the lifecycle state of a report.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusGenerating ReportStatus = "generating"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusFailed     ReportStatus = "failed"
	// ReportStatusExpired marks a soft-deleted report.
	ReportStatusExpired ReportStatus = "expired"
)

// IsValid reports whether s is one of the known statuses.
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusGenerating, ReportStatusCompleted,
		ReportStatusFailed, ReportStatusExpired:
		return true
	}
	return false
}

// IsDeleted reports whether s is the soft-deleted status.
func (s ReportStatus) IsDeleted() bool {
	return s == ReportStatusExpired
}

func (s ReportStatus) String() string {
	return string(s)
}

// LiveStatuses returns every status that is not soft-deleted.
func LiveStatuses() []ReportStatus {
	return []ReportStatus{
		ReportStatusPending,
		ReportStatusGenerating,
		ReportStatusCompleted,
		ReportStatusFailed,
	}
}

// SourcesFor returns the statuses a report may move to s from. Nothing moves back to
// pending, and expired is only left through restore.
func SourcesFor(s ReportStatus) []ReportStatus {
	switch s {
	case ReportStatusGenerating:
		return []ReportStatus{ReportStatusPending}
	case ReportStatusCompleted:
		return []ReportStatus{ReportStatusGenerating}
	case ReportStatusFailed:
		return []ReportStatus{ReportStatusPending, ReportStatusGenerating}
	case ReportStatusExpired:
		return LiveStatuses()
	}
	return nil
}

// Report is one AI-generated study & migration report owned by a user.
type Report struct {
	ReportID     string         `gorm:"column:report_id;type:varchar(36);primaryKey"`
	UserID       string         `gorm:"column:user_id;type:varchar(64);not null;index:idx_reports_user_created,priority:1"`
	Query        string         `gorm:"column:query;type:text;not null"`
	Status       ReportStatus   `gorm:"column:status;type:varchar(20);not null;default:pending;index"`
	Content      datatypes.JSON `gorm:"column:content"`
	ErrorMessage *string        `gorm:"column:error_message;type:text"`
	CreatedAt    time.Time      `gorm:"column:created_at;not null;index:idx_reports_user_created,priority:2"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;not null"`
	ExpiresAt    time.Time      `gorm:"column:expires_at;not null;index"`
}

func (Report) TableName() string {
	return "reports"
}

// HasContent reports whether the generator output has been stored.
func (r *Report) HasContent() bool {
	return len(r.Content) > 0 && string(r.Content) != "null"
}

// ErrorText returns the stored failure reason or an empty string.
func (r *Report) ErrorText() string {
	if r.ErrorMessage == nil {
		return ""
	}
	return *r.ErrorMessage
}
