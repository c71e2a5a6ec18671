package http

import (
	"report-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	internal := r.Group("/internal/retention")
	internal.Use(mw.InternalAuth())
	{
		internal.POST("/sweep", h.Sweep)
	}
}
