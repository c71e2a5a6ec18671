package http

import (
	"report-srv/internal/model"
	"report-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

const (
	defaultUserListLimit  = 50
	defaultAdminListLimit = 100
)

func (h *handler) processCreateReportRequest(c *gin.Context) (createReportReq, model.Scope, error) {
	var req createReportReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "report.delivery.http.processCreateReportRequest: ShouldBindJSON failed: %v", err)
		return req, model.Scope{}, errQueryRequired
	}

	sc := scope.GetScopeFromContext(ctx)
	return req, sc, nil
}

func (h *handler) processReportIDRequest(c *gin.Context) (reportIDReq, model.Scope) {
	req := reportIDReq{
		ReportID: c.Param("report_id"),
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc
}

func (h *handler) processListReportsRequest(c *gin.Context) (listReportsReq, model.Scope, error) {
	var req listReportsReq

	ctx := c.Request.Context()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(ctx, "report.delivery.http.processListReportsRequest: ShouldBindQuery failed: %v", err)
		return req, model.Scope{}, errWrongQuery
	}
	req.Adjust(defaultUserListLimit)

	sc := scope.GetScopeFromContext(ctx)
	return req, sc, nil
}

func (h *handler) processListAllReportsRequest(c *gin.Context) (listAllReportsReq, error) {
	var req listAllReportsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "report.delivery.http.processListAllReportsRequest: ShouldBindQuery failed: %v", err)
		return req, errWrongQuery
	}
	req.Adjust(defaultAdminListLimit)
	return req, nil
}

func (h *handler) processTriggerGenerationRequest(c *gin.Context) (triggerGenerationReq, error) {
	var req triggerGenerationReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "report.delivery.http.processTriggerGenerationRequest: ShouldBindQuery failed: %v", err)
		return req, errWrongQuery
	}
	req.ReportID = c.Param("report_id")
	return req, nil
}

func (h *handler) processUpdateStatusRequest(c *gin.Context) (updateStatusReq, error) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "report.delivery.http.processUpdateStatusRequest: ShouldBindJSON failed: %v", err)
		return req, errInvalidStatus
	}
	req.ReportID = c.Param("report_id")
	return req, nil
}
