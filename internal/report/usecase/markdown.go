package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/pkg/minio"
)

const exportContentType = "text/markdown; charset=utf-8"

func exportFileName(reportID string) string {
	return fmt.Sprintf("report_%s.md", reportID)
}

// exportReport renders the stored content as Markdown and uploads it.
func (uc *implUseCase) exportReport(ctx context.Context, rpt *model.Report) error {
	if uc.minio == nil {
		return fmt.Errorf("object storage not configured")
	}
	content, err := decodeContent(rpt)
	if err != nil {
		return err
	}
	if content == nil {
		return fmt.Errorf("report %s has no content", rpt.ReportID)
	}

	body := []byte(renderMarkdown(rpt, content))
	_, err = uc.minio.UploadFile(ctx, &minio.UploadRequest{
		BucketName:  uc.config.ReportBucket,
		ObjectName:  report.ExportObjectName(rpt.ReportID),
		Reader:      bytes.NewReader(body),
		Size:        int64(len(body)),
		ContentType: exportContentType,
		Metadata: map[string]string{
			"report_id": rpt.ReportID,
			"user_id":   rpt.UserID,
		},
	})
	return err
}

// removeExport deletes the Markdown export. Missing objects are fine.
func (uc *implUseCase) removeExport(ctx context.Context, reportID string) {
	if uc.minio == nil {
		return
	}
	if err := uc.minio.DeleteFile(ctx, uc.config.ReportBucket, report.ExportObjectName(reportID)); err != nil && !minio.IsNotFound(err) {
		uc.l.Warnf(ctx, "report.usecase.removeExport: Failed to delete export of %s: %v", reportID, err)
	}
}

func renderMarkdown(rpt *model.Report, content *report.Content) string {
	var sb strings.Builder

	title := content.Title
	if title == "" {
		title = "Study & Migration Report"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "**Question:** %s\n\n", rpt.Query)
	fmt.Fprintf(&sb, "**Generated:** %s UTC\n\n", rpt.UpdatedAt.UTC().Format("2006-01-02 15:04"))
	sb.WriteString("---\n\n")

	if content.Summary != "" {
		sb.WriteString("## Summary\n\n")
		sb.WriteString(content.Summary)
		sb.WriteString("\n\n")
	}

	for _, section := range content.Sections {
		fmt.Fprintf(&sb, "## %s\n\n", section.Heading)
		sb.WriteString(section.Body)
		sb.WriteString("\n\n")
	}

	if len(content.Recommendations) > 0 {
		sb.WriteString("## Recommendations\n\n")
		for _, rec := range content.Recommendations {
			fmt.Fprintf(&sb, "- %s\n", rec)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
	fmt.Fprintf(&sb, "*Available until %s UTC.*\n", rpt.ExpiresAt.UTC().Format("2006-01-02"))

	return sb.String()
}
