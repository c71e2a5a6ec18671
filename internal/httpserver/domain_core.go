package httpserver

import (
	"context"
	"fmt"

	"report-srv/internal/report"
	reportProducer "report-srv/internal/report/delivery/kafka/producer"
	"report-srv/internal/report/generator"
)

// setupReportCollaborators builds the generator and the optional event producer shared by the report usecase.
func (srv *HTTPServer) setupReportCollaborators(ctx context.Context) (report.Generator, report.Producer, error) {
	gen, err := generator.New(srv.l, srv.openaiClient)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report generator: %w", err)
	}

	var prod report.Producer
	if srv.kafkaProducer != nil {
		prod = reportProducer.New(srv.l, srv.kafkaProducer)
	} else {
		srv.l.Warnf(ctx, "Kafka producer not configured, report events will not be published")
	}

	return gen, prod, nil
}
