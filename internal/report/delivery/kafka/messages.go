package kafka

import "time"

// PaymentEventMessage - Kafka message on the payment events topic.
type PaymentEventMessage struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ReportID   string    `json:"report_id"`
	UserID     string    `json:"user_id"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReportEventMessage - Kafka message published on every generation transition.
type ReportEventMessage struct {
	EventType    string    `json:"event_type"`
	ReportID     string    `json:"report_id"`
	UserID       string    `json:"user_id"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
