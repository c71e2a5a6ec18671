package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"report-srv/internal/report"
	kafkaDelivery "report-srv/internal/report/delivery/kafka"
)

// PublishReportEvent publishes a lifecycle event keyed by report id, so events of one report stay ordered.
func (p *implProducer) PublishReportEvent(ctx context.Context, event report.ReportEvent) error {
	msg := kafkaDelivery.ReportEventMessage{
		EventType:    event.EventType,
		ReportID:     event.ReportID,
		UserID:       event.UserID,
		Status:       string(event.Status),
		ErrorMessage: event.ErrorMessage,
		OccurredAt:   event.OccurredAt.UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal report event: %w", err)
	}

	if err := p.producer.Publish([]byte(event.ReportID), body); err != nil {
		return fmt.Errorf("failed to publish report event: %w", err)
	}

	p.l.Debugf(ctx, "report.delivery.kafka.producer.PublishReportEvent: Published %s for report %s", event.EventType, event.ReportID)
	return nil
}
