package http

import (
	"net/http"

	"report-srv/internal/report"
	"report-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary Create report
// @Description Create a pending study report for the authenticated user
// @Tags Reports
// @Accept json
// @Produce json
// @Param body body createReportReq true "Report query"
// @Success 200 {object} createReportResp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /api/v1/reports [POST]
func (h *handler) CreateReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processCreateReportRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.CreateReport: processCreateReportRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.CreateReport(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.CreateReport: usecase CreateReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newCreateReportResp(o))
}

// @Summary List reports
// @Description List the caller's live reports, newest first
// @Tags Reports
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {object} listReportsResp
// @Failure 401 {object} response.Resp
// @Router /api/v1/reports [GET]
func (h *handler) ListReports(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListReportsRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListReports: processListReportsRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	items, err := h.uc.ListUserReports(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListReports: usecase ListUserReports failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListReportsResp(req.OffsetQuery, items))
}

// @Summary Get report
// @Tags Reports
// @Produce json
// @Param report_id path string true "Report ID"
// @Success 200 {object} reportResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/reports/{report_id} [GET]
func (h *handler) GetReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc := h.processReportIDRequest(c)
	o, err := h.uc.GetReport(ctx, sc, report.GetReportInput{ReportID: req.ReportID})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GetReport: usecase GetReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newReportResp(o))
}

// @Summary Delete report
// @Description Soft delete one of the caller's reports
// @Tags Reports
// @Produce json
// @Param report_id path string true "Report ID"
// @Success 200 {object} deleteReportResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/reports/{report_id} [DELETE]
func (h *handler) DeleteReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc := h.processReportIDRequest(c)
	deleted, err := h.uc.SoftDeleteReport(ctx, sc, report.DeleteReportInput{ReportID: req.ReportID})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DeleteReport: usecase SoftDeleteReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}
	if !deleted {
		response.Error(c, errReportNotFound)
		return
	}

	response.OK(c, deleteReportResp{ReportID: req.ReportID, Deleted: true})
}

// @Summary Download report
// @Description Get a short-lived download link for a completed report
// @Tags Reports
// @Produce json
// @Param report_id path string true "Report ID"
// @Success 200 {object} downloadResp
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/reports/{report_id}/download [GET]
func (h *handler) DownloadReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc := h.processReportIDRequest(c)
	o, err := h.uc.DownloadReport(ctx, sc, report.DownloadReportInput{ReportID: req.ReportID})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DownloadReport: usecase DownloadReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDownloadResp(o))
}

// TriggerGeneration starts generation in the background, or waits for it with ?wait=true.
func (h *handler) TriggerGeneration(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTriggerGenerationRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	input := report.TriggerGenerationInput{ReportID: req.ReportID}
	if req.Wait {
		err = h.uc.TriggerReportGeneration(ctx, input)
	} else {
		err = h.uc.StartReportGeneration(ctx, input)
	}
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.TriggerGeneration: usecase failed for %s: %v", req.ReportID, err)
		response.Error(c, h.mapError(err))
		return
	}

	if req.Wait {
		response.OK(c, triggerGenerationResp{ReportID: req.ReportID, Accepted: true})
		return
	}
	c.JSON(http.StatusAccepted, response.Resp{
		Message: response.MessageSuccess,
		Data:    triggerGenerationResp{ReportID: req.ReportID, Accepted: true},
	})
}

func (h *handler) ListAllReports(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListAllReportsRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	outs, err := h.uc.ListAllReports(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListAllReports: usecase ListAllReports failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListAllReportsResp(req.OffsetQuery, outs))
}

func (h *handler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateStatusRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.UpdateReportStatus(ctx, req.toInput()); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.UpdateStatus: usecase UpdateReportStatus failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

func (h *handler) RestoreReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, _ := h.processReportIDRequest(c)
	o, err := h.uc.RestoreReport(ctx, report.RestoreReportInput{ReportID: req.ReportID})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.RestoreReport: usecase RestoreReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newReportResp(o))
}

// PurgeReport hard deletes a report whatever its status.
func (h *handler) PurgeReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, _ := h.processReportIDRequest(c)
	deleted, err := h.uc.PurgeReport(ctx, report.PurgeReportInput{ReportID: req.ReportID})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.PurgeReport: usecase PurgeReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}
	if !deleted {
		response.Error(c, errReportNotFound)
		return
	}

	response.OK(c, deleteReportResp{ReportID: req.ReportID, Deleted: true})
}
