package consumer

import (
	"report-srv/internal/report"
	kafkaDelivery "report-srv/internal/report/delivery/kafka"
)

func toTriggerGenerationInput(m kafkaDelivery.PaymentEventMessage) report.TriggerGenerationInput {
	return report.TriggerGenerationInput{ReportID: m.ReportID}
}

func dedupeKey(eventID string) string {
	return kafkaDelivery.PaymentDedupeKeyPrefix + eventID
}
