package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"report-srv/internal/middleware"
	reportPostgre "report-srv/internal/report/repository/postgre"
	retentionHTTP "report-srv/internal/retention/delivery/http"
	retentionUsecase "report-srv/internal/retention/usecase"
)

// setupRetentionDomain exposes the on-demand sweep. Scheduled sweeps run in the consumer process.
func (srv *HTTPServer) setupRetentionDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	repo := reportPostgre.New(srv.gormDB, srv.l)
	srv.retentionUC = retentionUsecase.New(srv.l, repo, srv.minioClient, srv.redisClient, retentionUsecase.Config{
		ReportBucket:         srv.config.MinIO.Bucket,
		StaleGeneratingAfter: srv.config.Retention.StaleGeneratingAfter,
		LockTTL:              srv.config.Retention.LockTTL,
	})

	handler := retentionHTTP.New(srv.l, srv.retentionUC)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Retention domain registered")
	return nil
}
