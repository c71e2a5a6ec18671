package postgre

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"report-srv/internal/model"
	"report-srv/internal/report/repository"
)

// scopeNotDeleted - Hide soft-deleted rows.
func scopeNotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", string(model.ReportStatusExpired))
}

// buildFindByIDQuery - Build query for FindByID. Owner scoping is part of the same predicate.
func (r *implRepository) buildFindByIDQuery(opts repository.FindByIDOptions) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("report_id = ?", opts.ID)
		if opts.UserID != "" {
			db = db.Where("user_id = ?", opts.UserID)
		}
		if !opts.IncludeDeleted {
			db = scopeNotDeleted(db)
		}
		return db
	}
}

// buildListQuery - Build query shared by FindByUser and FindAll.
func (r *implRepository) buildListQuery(userID string, skip, limit int, includeDeleted bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID != "" {
			db = db.Where("user_id = ?", userID)
		}
		if !includeDeleted {
			db = scopeNotDeleted(db)
		}

		// Sorting: most recent first
		db = db.Order("created_at DESC").Order("report_id DESC")

		// Pagination
		if limit <= 0 {
			limit = repository.DefaultFindLimit
		}
		db = db.Limit(limit)
		if skip > 0 {
			db = db.Offset(skip)
		}
		return db
	}
}

// buildUpdates - Build the column map for Update. Only present fields are written.
func buildUpdates(opts repository.UpdateReportOptions, now time.Time) (map[string]any, error) {
	updates := map[string]any{
		"updated_at": now,
	}

	if opts.Status != nil {
		if !opts.Status.IsValid() {
			return nil, repository.ErrInvalidStatus
		}
		updates["status"] = string(*opts.Status)
	}
	if opts.Content != nil {
		updates["content"] = datatypes.JSON(opts.Content)
	}
	if opts.ErrorMessage != nil {
		if *opts.ErrorMessage == "" {
			updates["error_message"] = nil
		} else {
			updates["error_message"] = *opts.ErrorMessage
		}
	}
	if opts.ExpiresAt != nil {
		updates["expires_at"] = opts.ExpiresAt.UTC()
	}

	return updates, nil
}

// liveStatuses - Statuses eligible for expiry, as plain strings for the IN clause.
func liveStatuses() []string {
	return statusStrings(model.LiveStatuses())
}

func statusStrings(statuses []model.ReportStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
