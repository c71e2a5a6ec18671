package httpserver

import (
	"context"
	"fmt"

	"report-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (srv *HTTPServer) mapHandlers() error {
	ctx := context.Background()

	mw := middleware.New(srv.l, srv.jwtManager, srv.config.Cookie, srv.config.InternalConfig.InternalKey)

	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if srv.config.InternalConfig.InternalKey == "" {
		srv.l.Warnf(ctx, "Internal key not configured, /internal routes will reject every request")
	}

	root := srv.gin.Group("")

	if err := srv.setupReportDomain(ctx, root, mw); err != nil {
		return fmt.Errorf("failed to setup report domain: %w", err)
	}
	if err := srv.setupRetentionDomain(ctx, root, mw); err != nil {
		return fmt.Errorf("failed to setup retention domain: %w", err)
	}

	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(middleware.Recovery(srv.l))
	if srv.mode != "release" {
		srv.gin.Use(gin.Logger())
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}
