package http

import (
	"report-srv/internal/middleware"
	"report-srv/internal/retention"
	"report-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l  log.Logger
	uc retention.UseCase
}

func New(l log.Logger, uc retention.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
