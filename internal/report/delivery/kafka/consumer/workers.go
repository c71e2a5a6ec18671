package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"report-srv/internal/model"
	"report-srv/internal/report"
	kafkaDelivery "report-srv/internal/report/delivery/kafka"
	"report-srv/pkg/scope"
)

// processPaymentEvent handles msg, retrying transient failures with a growing backoff.
// ctx only bounds the waits between attempts.
func (c *consumer) processPaymentEvent(ctx context.Context, msg *sarama.ConsumerMessage) error {
	attempts := max(c.attempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = c.handlePaymentEventMessage(msg); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		wait := c.backoff * time.Duration(attempt)
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.processPaymentEvent: Attempt %d/%d failed, retrying in %s: %v", attempt, attempts, wait, err)
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (retry interrupted: %w)", err, ctx.Err())
		case <-time.After(wait):
		}
	}
	return err
}

// handlePaymentEventMessage generates the paid report. Returning nil marks the message.
// Generation runs to completion under a context detached from the session.
func (c *consumer) handlePaymentEventMessage(msg *sarama.ConsumerMessage) error {
	ctx := context.Background()

	var message kafkaDelivery.PaymentEventMessage
	if err := json.Unmarshal(msg.Value, &message); err != nil {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handlePaymentEventMessage: Invalid message format (skipping): %v", err)
		return nil
	}

	if message.EventType != kafkaDelivery.EventTypePaymentSucceeded {
		c.l.Debugf(ctx, "report.delivery.kafka.consumer.handlePaymentEventMessage: Ignoring event type %q", message.EventType)
		return nil
	}
	if message.EventID == "" || message.ReportID == "" {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handlePaymentEventMessage: Invalid message: missing required fields (skipping)")
		return nil
	}

	ctx = scope.SetScopeToContext(ctx, model.SystemScope())

	first, err := c.claimEvent(ctx, message.EventID)
	if err != nil {
		return err
	}
	if !first {
		c.l.Infof(ctx, "report.delivery.kafka.consumer.handlePaymentEventMessage: Event %s already handled (skipping)", message.EventID)
		return nil
	}

	err = c.uc.TriggerReportGeneration(ctx, toTriggerGenerationInput(message))
	switch {
	case err == nil:
		c.l.Infof(ctx, "report.delivery.kafka.consumer.handlePaymentEventMessage: Report %s generated for event %s", message.ReportID, message.EventID)
		return nil
	case errors.Is(err, report.ErrReportNotFound):
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handlePaymentEventMessage: Report %s not found (skipping)", message.ReportID)
		return nil
	case errors.Is(err, report.ErrInvalidTransition):
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handlePaymentEventMessage: Report %s not pending (skipping): %v", message.ReportID, err)
		return nil
	case errors.Is(err, report.ErrGenerationFailed):
		// The failure is already recorded on the report.
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handlePaymentEventMessage: Report %s failed: %v", message.ReportID, err)
		return nil
	default:
		c.releaseEvent(ctx, message.EventID)
		return fmt.Errorf("usecase error: %w", err)
	}
}

// claimEvent reports whether this delivery is the first for eventID.
func (c *consumer) claimEvent(ctx context.Context, eventID string) (bool, error) {
	if c.redis == nil {
		return true, nil
	}

	ok, err := c.redis.SetNX(ctx, dedupeKey(eventID), "1", kafkaDelivery.PaymentDedupeTTL)
	if err != nil {
		return false, fmt.Errorf("claim payment event %s: %w", eventID, err)
	}
	return ok, nil
}

// releaseEvent forgets eventID so the next attempt or redelivery processes it.
func (c *consumer) releaseEvent(ctx context.Context, eventID string) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Delete(ctx, dedupeKey(eventID)); err != nil {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.releaseEvent: Failed to release event %s: %v", eventID, err)
	}
}
