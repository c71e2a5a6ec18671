package postgre

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"report-srv/internal/model"
	"report-srv/internal/report/repository"
)

// FindByID - Get a report by ID, optionally scoped to its owner.
func (r *implRepository) FindByID(ctx context.Context, opts repository.FindByIDOptions) (*model.Report, error) {
	var rpt model.Report
	err := r.db.WithContext(ctx).
		Scopes(r.buildFindByIDQuery(opts)).
		Take(&rpt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found is not an error here
		}
		r.l.Errorf(ctx, "report.repository.postgre.FindByID: Failed to get report %s: %v", opts.ID, err)
		return nil, fmt.Errorf("find report %s: %w", opts.ID, err)
	}

	return &rpt, nil
}

// FindByUser - List a user's reports, newest first.
func (r *implRepository) FindByUser(ctx context.Context, opts repository.FindByUserOptions) ([]model.Report, error) {
	if opts.UserID == "" {
		return nil, repository.ErrUserRequired
	}

	var rpts []model.Report
	err := r.db.WithContext(ctx).
		Scopes(r.buildListQuery(opts.UserID, opts.Skip, opts.Limit, opts.IncludeDeleted)).
		Find(&rpts).Error
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.FindByUser: Failed to list reports for user %s: %v", opts.UserID, err)
		return nil, fmt.Errorf("find reports by user: %w", err)
	}

	return rpts, nil
}

// FindAll - List reports of every user, newest first.
func (r *implRepository) FindAll(ctx context.Context, opts repository.FindAllOptions) ([]model.Report, error) {
	var rpts []model.Report
	err := r.db.WithContext(ctx).
		Scopes(r.buildListQuery("", opts.Skip, opts.Limit, opts.IncludeDeleted)).
		Find(&rpts).Error
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.FindAll: Failed to list reports: %v", err)
		return nil, fmt.Errorf("find all reports: %w", err)
	}

	return rpts, nil
}

// Create - Insert a new report.
func (r *implRepository) Create(ctx context.Context, opts repository.CreateReportOptions) (*model.Report, error) {
	rpt, err := buildCreateReport(opts, r.clock())
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(rpt).Error; err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.Create: Failed to insert report: %v", err)
		return nil, fmt.Errorf("%w: %w", repository.ErrReportCreateFailed, err)
	}

	return rpt, nil
}

// Update - Apply the present fields of opts and return the fresh row.
func (r *implRepository) Update(ctx context.Context, id string, opts repository.UpdateReportOptions) (*model.Report, error) {
	updates, err := buildUpdates(opts, r.clock())
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("report_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		r.l.Errorf(ctx, "report.repository.postgre.Update: Failed to update report %s: %v", id, res.Error)
		return nil, fmt.Errorf("update report %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(ctx, repository.FindByIDOptions{ID: id, IncludeDeleted: true})
}

// Transition - Update a report only while its status is one of opts.From.
func (r *implRepository) Transition(ctx context.Context, opts repository.TransitionOptions) (*model.Report, error) {
	if len(opts.From) == 0 {
		return nil, repository.ErrNoSourceStatus
	}
	updates, err := buildUpdates(opts.Update, r.clock())
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("report_id = ? AND status IN ?", opts.ID, statusStrings(opts.From)).
		Updates(updates)
	if res.Error != nil {
		r.l.Errorf(ctx, "report.repository.postgre.Transition: Failed to update report %s: %v", opts.ID, res.Error)
		return nil, fmt.Errorf("transition report %s: %w", opts.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(ctx, repository.FindByIDOptions{ID: opts.ID, IncludeDeleted: true})
}

// SoftDelete - Mark a report expired.
func (r *implRepository) SoftDelete(ctx context.Context, id string) (*model.Report, error) {
	status := model.ReportStatusExpired
	return r.Update(ctx, id, repository.UpdateReportOptions{Status: &status})
}

// SoftDeleteOwned - Expire a live report only if userID owns it.
func (r *implRepository) SoftDeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("report_id = ? AND user_id = ?", id, userID).
		Scopes(scopeNotDeleted).
		Updates(map[string]any{
			"status":     string(model.ReportStatusExpired),
			"updated_at": r.clock(),
		})
	if res.Error != nil {
		r.l.Errorf(ctx, "report.repository.postgre.SoftDeleteOwned: Failed to soft delete report %s: %v", id, res.Error)
		return false, fmt.Errorf("soft delete report %s: %w", id, res.Error)
	}

	return res.RowsAffected > 0, nil
}

// HardDelete - Physically remove a report regardless of status.
func (r *implRepository) HardDelete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("report_id = ?", id).
		Delete(&model.Report{})
	if res.Error != nil {
		r.l.Errorf(ctx, "report.repository.postgre.HardDelete: Failed to delete report %s: %v", id, res.Error)
		return false, fmt.Errorf("hard delete report %s: %w", id, res.Error)
	}

	return res.RowsAffected > 0, nil
}

// Restore - Bring an expired report back as completed.
func (r *implRepository) Restore(ctx context.Context, opts repository.RestoreOptions) (*model.Report, error) {
	updates := map[string]any{
		"status":     string(model.ReportStatusCompleted),
		"updated_at": r.clock(),
	}
	if !opts.ExpiresAt.IsZero() {
		updates["expires_at"] = opts.ExpiresAt.UTC()
	}

	res := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("report_id = ? AND status = ?", opts.ID, string(model.ReportStatusExpired)).
		Updates(updates)
	if res.Error != nil {
		r.l.Errorf(ctx, "report.repository.postgre.Restore: Failed to restore report %s: %v", opts.ID, res.Error)
		return nil, fmt.Errorf("restore report %s: %w", opts.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(ctx, repository.FindByIDOptions{ID: opts.ID})
}

// ExpireOldReports - Soft delete every live report whose expires_at has passed.
func (r *implRepository) ExpireOldReports(ctx context.Context, opts repository.ExpireOptions) (int64, error) {
	now := opts.Now.UTC()

	res := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("expires_at < ? AND status IN ?", now, liveStatuses()).
		Updates(map[string]any{
			"status":     string(model.ReportStatusExpired),
			"updated_at": now,
		})
	if res.Error != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ExpireOldReports: Failed to expire reports: %v", res.Error)
		return 0, fmt.Errorf("expire old reports: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// DeleteExpiredReports - Hard delete expired reports past the grace period, in one transaction.
func (r *implRepository) DeleteExpiredReports(ctx context.Context, opts repository.DeleteExpiredOptions) (repository.DeleteExpiredResult, error) {
	cutoff := opts.Now.UTC().Add(-repository.HardDeleteGracePeriod)
	expired := string(model.ReportStatusExpired)

	var result repository.DeleteExpiredResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&model.Report{}).
			Where("status = ? AND expires_at < ?", expired, cutoff).
			Order("report_id").
			Pluck("report_id", &ids).Error; err != nil {
			return fmt.Errorf("select purgeable reports: %w", err)
		}

		deleted := make([]string, 0, len(ids))
		for start := 0; start < len(ids); start += deleteBatchSize {
			end := min(start+deleteBatchSize, len(ids))
			batch := ids[start:end]

			// The predicate is repeated so rows restored since the select are kept.
			var removed []model.Report
			res := tx.Clauses(clause.Returning{Columns: []clause.Column{{Name: "report_id"}}}).
				Where("report_id IN ? AND status = ? AND expires_at < ?", batch, expired, cutoff).
				Delete(&removed)
			if res.Error != nil {
				return fmt.Errorf("delete purgeable reports: %w", res.Error)
			}
			result.Count += res.RowsAffected
			for _, rpt := range removed {
				deleted = append(deleted, rpt.ReportID)
			}
		}
		sort.Strings(deleted)
		result.ReportIDs = deleted
		return nil
	})
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.DeleteExpiredReports: %v", err)
		return repository.DeleteExpiredResult{}, err
	}

	return result, nil
}

// CountStaleGenerating - Count reports stuck in generating since before the given time.
func (r *implRepository) CountStaleGenerating(ctx context.Context, before time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("status = ? AND updated_at < ?", string(model.ReportStatusGenerating), before.UTC()).
		Count(&count).Error
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CountStaleGenerating: Failed to count reports: %v", err)
		return 0, fmt.Errorf("count stale generating reports: %w", err)
	}

	return count, nil
}
