package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"report-srv/internal/middleware"
	reportHTTP "report-srv/internal/report/delivery/http"
	reportPostgre "report-srv/internal/report/repository/postgre"
	reportUsecase "report-srv/internal/report/usecase"
)

func (srv *HTTPServer) setupReportDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	gen, prod, err := srv.setupReportCollaborators(ctx)
	if err != nil {
		return err
	}

	repo := reportPostgre.New(srv.gormDB, srv.l)
	srv.reportUC = reportUsecase.New(srv.l, repo, gen, prod, srv.minioClient, reportUsecase.Config{
		ExpiryDays:        srv.config.Report.ExpiryDays,
		ReportBucket:      srv.config.MinIO.Bucket,
		DownloadURLExpiry: srv.config.Report.DownloadURLExpiry,
	})

	handler := reportHTTP.New(srv.l, srv.reportUC)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Report domain registered")
	return nil
}
