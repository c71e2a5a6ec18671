package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/internal/report/repository"
)

// TriggerReportGeneration runs the generator for a pending report and records the outcome.
//
// The failed status is always written before a generator error is returned, so a
// report never stays in generating because of a generator error.
func (uc *implUseCase) TriggerReportGeneration(ctx context.Context, input report.TriggerGenerationInput) error {
	rpt, err := uc.beginGeneration(ctx, input.ReportID)
	if err != nil {
		return err
	}

	return uc.generate(ctx, rpt)
}

// StartReportGeneration moves a pending report to generating and finishes it in the background.
func (uc *implUseCase) StartReportGeneration(ctx context.Context, input report.TriggerGenerationInput) error {
	if uc.closing() {
		return report.ErrShuttingDown
	}

	rpt, err := uc.beginGeneration(ctx, input.ReportID)
	if err != nil {
		return err
	}

	started := uc.goBackground(func(bgCtx context.Context) {
		uc.generateInBackground(bgCtx, rpt)
	})
	if !started {
		_ = uc.markFailed(ctx, rpt, report.ErrShuttingDown.Error())
		return report.ErrShuttingDown
	}
	return nil
}

// Shutdown waits for background generations. When ctx ends first they are cancelled,
// which makes each of them record a failure before returning.
func (uc *implUseCase) Shutdown(ctx context.Context) error {
	uc.bgMu.Lock()
	uc.bgClosed = true
	uc.bgMu.Unlock()

	done := make(chan struct{})
	go func() {
		uc.bgWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		uc.l.Warnf(ctx, "report.usecase.Shutdown: Cancelling background generations: %v", ctx.Err())
		uc.bgCancel()
		<-done
		return ctx.Err()
	}
}

func (uc *implUseCase) closing() bool {
	uc.bgMu.Lock()
	defer uc.bgMu.Unlock()
	return uc.bgClosed
}

// goBackground runs fn on the usecase's background context unless Shutdown was called.
func (uc *implUseCase) goBackground(fn func(ctx context.Context)) bool {
	uc.bgMu.Lock()
	defer uc.bgMu.Unlock()
	if uc.bgClosed {
		return false
	}

	uc.bgWG.Add(1)
	go func() {
		defer uc.bgWG.Done()
		fn(uc.bgCtx)
	}()
	return true
}

// generateInBackground must handle its own errors.
func (uc *implUseCase) generateInBackground(ctx context.Context, rpt *model.Report) {
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "report.usecase.generateInBackground: panic recovered: %v", r)
			_ = uc.markFailed(ctx, rpt, fmt.Sprintf("internal panic: %v", r))
		}
	}()

	if err := uc.generate(ctx, rpt); err != nil {
		uc.l.Warnf(ctx, "report.usecase.generateInBackground: Report %s failed: %v", rpt.ReportID, err)
	}
}

// beginGeneration claims a pending report by moving it to generating.
func (uc *implUseCase) beginGeneration(ctx context.Context, reportID string) (*model.Report, error) {
	generating := model.ReportStatusGenerating
	rpt, err := uc.repo.Transition(ctx, repository.TransitionOptions{
		ID:     reportID,
		From:   model.SourcesFor(generating),
		Update: repository.UpdateReportOptions{Status: &generating},
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.beginGeneration: Failed to mark report %s generating: %v", reportID, err)
		return nil, err
	}
	if rpt == nil {
		return nil, uc.transitionError(ctx, reportID)
	}

	uc.publish(ctx, rpt, report.EventTypeGenerating)
	return rpt, nil
}

// transitionError explains why a guarded update matched no row.
func (uc *implUseCase) transitionError(ctx context.Context, reportID string) error {
	rpt, err := uc.repo.FindByID(ctx, repository.FindByIDOptions{ID: reportID})
	if err != nil {
		return err
	}
	if rpt == nil {
		return report.ErrReportNotFound
	}
	return fmt.Errorf("%w: report %s is %s", report.ErrInvalidTransition, reportID, rpt.Status)
}

func (uc *implUseCase) generate(ctx context.Context, rpt *model.Report) error {
	uc.l.Infof(ctx, "report.usecase.generate: Starting generation for report %s", rpt.ReportID)

	content, genErr := uc.generator.Generate(ctx, rpt.Query)
	if genErr != nil {
		uc.l.Errorf(ctx, "report.usecase.generate: Generation failed for report %s: %v", rpt.ReportID, genErr)
		if failErr := uc.markFailed(ctx, rpt, genErr.Error()); failErr != nil {
			return errors.Join(fmt.Errorf("%w: %w", report.ErrGenerationFailed, genErr), failErr)
		}
		return fmt.Errorf("%w: %w", report.ErrGenerationFailed, genErr)
	}

	body, err := json.Marshal(content)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.generate: Failed to encode content for report %s: %v", rpt.ReportID, err)
		if failErr := uc.markFailed(ctx, rpt, err.Error()); failErr != nil {
			return errors.Join(err, failErr)
		}
		return err
	}

	completed := model.ReportStatusCompleted
	noError := ""
	updated, err := uc.repo.Transition(ctx, repository.TransitionOptions{
		ID:   rpt.ReportID,
		From: model.SourcesFor(completed),
		Update: repository.UpdateReportOptions{
			Status:       &completed,
			Content:      body,
			ErrorMessage: &noError,
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.generate: Failed to store content for report %s: %v", rpt.ReportID, err)
		return err
	}
	if updated == nil {
		// Expired or changed while the generator ran; the content is dropped.
		err := uc.transitionError(ctx, rpt.ReportID)
		uc.l.Warnf(ctx, "report.usecase.generate: Report %s not completed: %v", rpt.ReportID, err)
		return err
	}
	rpt = updated

	if err := uc.exportReport(ctx, rpt); err != nil {
		uc.l.Warnf(ctx, "report.usecase.generate: Export of report %s skipped: %v", rpt.ReportID, err)
	}
	uc.publish(ctx, rpt, report.EventTypeCompleted)

	uc.l.Infof(ctx, "report.usecase.generate: Report %s completed", rpt.ReportID)
	return nil
}

// markFailed records the failure reason and publishes the failed event. The write
// survives cancellation of ctx.
func (uc *implUseCase) markFailed(ctx context.Context, rpt *model.Report, reason string) error {
	ctx = context.WithoutCancel(ctx)

	failed := model.ReportStatusFailed
	updated, err := uc.repo.Transition(ctx, repository.TransitionOptions{
		ID:   rpt.ReportID,
		From: model.SourcesFor(failed),
		Update: repository.UpdateReportOptions{
			Status:       &failed,
			ErrorMessage: &reason,
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.markFailed: Failed to mark report %s failed: %v", rpt.ReportID, err)
		return fmt.Errorf("mark report failed: %w", err)
	}
	if updated == nil {
		uc.l.Warnf(ctx, "report.usecase.markFailed: Report %s left generating before the failure was recorded", rpt.ReportID)
		return nil
	}
	uc.publish(ctx, updated, report.EventTypeFailed)
	return nil
}

// publish sends a lifecycle event. Errors are logged and dropped.
func (uc *implUseCase) publish(ctx context.Context, rpt *model.Report, eventType string) {
	if uc.producer == nil {
		return
	}
	event := report.ReportEvent{
		EventType:    eventType,
		ReportID:     rpt.ReportID,
		UserID:       rpt.UserID,
		Status:       rpt.Status,
		ErrorMessage: rpt.ErrorText(),
		OccurredAt:   uc.clock(),
	}
	if err := uc.producer.PublishReportEvent(ctx, event); err != nil {
		uc.l.Warnf(ctx, "report.usecase.publish: Failed to publish %s for report %s: %v", eventType, rpt.ReportID, err)
	}
}
