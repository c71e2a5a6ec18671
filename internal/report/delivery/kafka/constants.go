package kafka

import "time"

const (
	// Consumer topic, overridable by kafka.payment_topic.
	TopicPaymentEvents = "payment.events"
	// Producer topic, overridable by kafka.topic.
	TopicReportEvents = "report.events"

	ConsumerGroupPaymentEvents = "report-consumer-payment-events"
)

const (
	EventTypePaymentSucceeded = "payment.succeeded"
)

const (
	// PaymentDedupeKeyPrefix namespaces the redis keys that remember handled payment events.
	PaymentDedupeKeyPrefix = "report:payment:"
	PaymentDedupeTTL       = 7 * 24 * time.Hour
)

const (
	// PaymentEventAttempts bounds how often one delivery is processed before the
	// partition is handed back to the group.
	PaymentEventAttempts = 3
	PaymentRetryBackoff  = 2 * time.Second
)
