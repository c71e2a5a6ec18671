package http

import (
	"time"

	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/pkg/paginator"
)

// --- requests ---

type createReportReq struct {
	Query string `json:"query" binding:"required"`
}

func (r createReportReq) toInput() report.CreateReportInput {
	return report.CreateReportInput{Query: r.Query}
}

type reportIDReq struct {
	ReportID string
}

type listReportsReq struct {
	paginator.OffsetQuery
}

func (r listReportsReq) toInput() report.ListReportsInput {
	return report.ListReportsInput{Skip: r.Skip, Limit: r.Limit}
}

type listAllReportsReq struct {
	paginator.OffsetQuery
	IncludeDeleted bool `form:"include_deleted"`
}

func (r listAllReportsReq) toInput() report.ListAllReportsInput {
	return report.ListAllReportsInput{
		Skip:           r.Skip,
		Limit:          r.Limit,
		IncludeDeleted: r.IncludeDeleted,
	}
}

type triggerGenerationReq struct {
	ReportID string
	Wait     bool `form:"wait"`
}

type updateStatusReq struct {
	ReportID string `json:"-"`
	Status   string `json:"status" binding:"required"`
	Error    string `json:"error,omitempty"`
}

func (r updateStatusReq) toInput() report.UpdateStatusInput {
	return report.UpdateStatusInput{
		ReportID: r.ReportID,
		Status:   model.ReportStatus(r.Status),
		Error:    r.Error,
	}
}

// --- responses ---

type createReportResp struct {
	ReportID            string `json:"report_id"`
	Status              string `json:"status"`
	EstimatedCompletion string `json:"estimated_completion"`
	ExpiresAt           string `json:"expires_at"`
}

type sectionResp struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

type contentResp struct {
	Title           string        `json:"title"`
	Summary         string        `json:"summary"`
	Sections        []sectionResp `json:"sections"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

type reportResp struct {
	ReportID     string       `json:"report_id"`
	UserID       string       `json:"user_id"`
	Query        string       `json:"query"`
	Status       string       `json:"status"`
	Content      *contentResp `json:"content,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
	ExpiresAt    string       `json:"expires_at"`
}

type reportListItemResp struct {
	ReportID  string `json:"report_id"`
	Query     string `json:"query"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}

type listReportsResp struct {
	Reports []reportListItemResp `json:"reports"`
	Paging  paginator.Paginator  `json:"paging"`
}

type listAllReportsResp struct {
	Reports []reportResp        `json:"reports"`
	Paging  paginator.Paginator `json:"paging"`
}

type deleteReportResp struct {
	ReportID string `json:"report_id"`
	Deleted  bool   `json:"deleted"`
}

type triggerGenerationResp struct {
	ReportID string `json:"report_id"`
	Accepted bool   `json:"accepted"`
}

type downloadResp struct {
	DownloadURL string `json:"download_url"`
	ExpiresAt   string `json:"expires_at"`
	FileName    string `json:"file_name"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (h *handler) newCreateReportResp(o report.CreateReportOutput) createReportResp {
	return createReportResp{
		ReportID:            o.ReportID,
		Status:              string(o.Status),
		EstimatedCompletion: formatTime(o.EstimatedCompletion),
		ExpiresAt:           formatTime(o.ExpiresAt),
	}
}

func (h *handler) newReportResp(o report.ReportOutput) reportResp {
	resp := reportResp{
		ReportID:     o.ReportID,
		UserID:       o.UserID,
		Query:        o.Query,
		Status:       string(o.Status),
		ErrorMessage: o.ErrorMessage,
		CreatedAt:    formatTime(o.CreatedAt),
		UpdatedAt:    formatTime(o.UpdatedAt),
		ExpiresAt:    formatTime(o.ExpiresAt),
	}
	if o.Content != nil {
		content := &contentResp{
			Title:           o.Content.Title,
			Summary:         o.Content.Summary,
			Sections:        make([]sectionResp, 0, len(o.Content.Sections)),
			Recommendations: o.Content.Recommendations,
		}
		for _, s := range o.Content.Sections {
			content.Sections = append(content.Sections, sectionResp{Heading: s.Heading, Body: s.Body})
		}
		resp.Content = content
	}
	return resp
}

func (h *handler) newListReportsResp(q paginator.OffsetQuery, items []report.ReportListItem) listReportsResp {
	resp := listReportsResp{
		Reports: make([]reportListItemResp, 0, len(items)),
		Paging:  q.Build(len(items)),
	}
	for _, it := range items {
		resp.Reports = append(resp.Reports, reportListItemResp{
			ReportID:  it.ReportID,
			Query:     it.Query,
			Status:    string(it.Status),
			CreatedAt: formatTime(it.CreatedAt),
			ExpiresAt: formatTime(it.ExpiresAt),
		})
	}
	return resp
}

func (h *handler) newListAllReportsResp(q paginator.OffsetQuery, outs []report.ReportOutput) listAllReportsResp {
	resp := listAllReportsResp{
		Reports: make([]reportResp, 0, len(outs)),
		Paging:  q.Build(len(outs)),
	}
	for _, o := range outs {
		resp.Reports = append(resp.Reports, h.newReportResp(o))
	}
	return resp
}

func (h *handler) newDownloadResp(o report.DownloadOutput) downloadResp {
	return downloadResp{
		DownloadURL: o.DownloadURL,
		ExpiresAt:   formatTime(o.ExpiresAt),
		FileName:    o.FileName,
	}
}
