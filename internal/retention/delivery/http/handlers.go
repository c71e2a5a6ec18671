package http

import (
	"report-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Sweep runs the retention sweep on demand.
func (h *handler) Sweep(c *gin.Context) {
	ctx := c.Request.Context()

	o, err := h.uc.Sweep(ctx)
	if err != nil {
		h.l.Errorf(ctx, "retention.delivery.http.Sweep: usecase Sweep failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSweepResp(o))
}
