package http

import (
	"report-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts user routes under /api/v1/reports and operator routes under /internal/reports.
func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	reports := r.Group("/api/v1/reports")
	reports.Use(mw.Auth())
	{
		reports.POST("", h.CreateReport)
		reports.GET("", h.ListReports)
		reports.GET("/:report_id", h.GetReport)
		reports.DELETE("/:report_id", h.DeleteReport)
		reports.GET("/:report_id/download", h.DownloadReport)
	}

	internal := r.Group("/internal/reports")
	internal.Use(mw.InternalAuth())
	{
		internal.GET("", h.ListAllReports)
		internal.POST("/:report_id/generate", h.TriggerGeneration)
		internal.PATCH("/:report_id/status", h.UpdateStatus)
		internal.POST("/:report_id/restore", h.RestoreReport)
		internal.DELETE("/:report_id", h.PurgeReport)
	}
}
