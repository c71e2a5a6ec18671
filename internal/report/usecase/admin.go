package usecase

import (
	"context"

	"report-srv/internal/report"
	"report-srv/internal/report/repository"
)

// ListAllReports lists reports of every user for operators.
func (uc *implUseCase) ListAllReports(ctx context.Context, input report.ListAllReportsInput) ([]report.ReportOutput, error) {
	rpts, err := uc.repo.FindAll(ctx, repository.FindAllOptions{
		Skip:           input.Skip,
		Limit:          input.Limit,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListAllReports: Failed to list reports: %v", err)
		return nil, err
	}

	out := make([]report.ReportOutput, 0, len(rpts))
	for i := range rpts {
		out = append(out, uc.toReportOutput(ctx, &rpts[i]))
	}
	return out, nil
}

// RestoreReport brings an expired report back as completed and restarts its retention window.
func (uc *implUseCase) RestoreReport(ctx context.Context, input report.RestoreReportInput) (report.ReportOutput, error) {
	rpt, err := uc.repo.Restore(ctx, repository.RestoreOptions{
		ID:        input.ReportID,
		ExpiresAt: uc.clock().Add(uc.expiryWindow()),
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.RestoreReport: Failed to restore report %s: %v", input.ReportID, err)
		return report.ReportOutput{}, err
	}
	if rpt == nil {
		return report.ReportOutput{}, report.ErrReportNotFound
	}

	uc.l.Infof(ctx, "report.usecase.RestoreReport: Report %s restored until %s", rpt.ReportID, rpt.ExpiresAt)
	return uc.toReportOutput(ctx, rpt), nil
}

// PurgeReport physically removes a report and its export, whatever its status.
func (uc *implUseCase) PurgeReport(ctx context.Context, input report.PurgeReportInput) (bool, error) {
	deleted, err := uc.repo.HardDelete(ctx, input.ReportID)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.PurgeReport: Failed to delete report %s: %v", input.ReportID, err)
		return false, err
	}
	if !deleted {
		return false, nil
	}

	uc.removeExport(ctx, input.ReportID)
	uc.l.Infof(ctx, "report.usecase.PurgeReport: Report %s purged", input.ReportID)
	return true, nil
}
