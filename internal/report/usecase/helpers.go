package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"report-srv/internal/model"
	"report-srv/internal/report"
)

// decodeContent returns nil when the report has no stored content.
func decodeContent(rpt *model.Report) (*report.Content, error) {
	if !rpt.HasContent() {
		return nil, nil
	}
	var content report.Content
	if err := json.Unmarshal(rpt.Content, &content); err != nil {
		return nil, fmt.Errorf("decode content of report %s: %w", rpt.ReportID, err)
	}
	return &content, nil
}

func (uc *implUseCase) toReportOutput(ctx context.Context, rpt *model.Report) report.ReportOutput {
	out := report.ReportOutput{
		ReportID:     rpt.ReportID,
		UserID:       rpt.UserID,
		Query:        rpt.Query,
		Status:       rpt.Status,
		ErrorMessage: rpt.ErrorText(),
		CreatedAt:    rpt.CreatedAt,
		UpdatedAt:    rpt.UpdatedAt,
		ExpiresAt:    rpt.ExpiresAt,
	}

	content, err := decodeContent(rpt)
	if err != nil {
		uc.l.Warnf(ctx, "report.usecase.toReportOutput: %v", err)
	}
	out.Content = content

	return out
}

func toListItem(rpt *model.Report) report.ReportListItem {
	return report.ReportListItem{
		ReportID:  rpt.ReportID,
		Query:     rpt.Query,
		Status:    rpt.Status,
		CreatedAt: rpt.CreatedAt,
		ExpiresAt: rpt.ExpiresAt,
	}
}
