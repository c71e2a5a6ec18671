package consumer

import (
	"context"

	"github.com/IBM/sarama"
)

type paymentEventsHandler struct {
	consumer *consumer
}

func (h *paymentEventsHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *paymentEventsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks each handled message. A message that still fails after its
// retries ends the session unmarked, so the group resumes from it.
func (h *paymentEventsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := h.consumer.processPaymentEvent(session.Context(), msg); err != nil {
			h.consumer.l.Errorf(context.Background(), "report.delivery.kafka.consumer.ConsumeClaim: Failed to process payment event at %s/%d/%d: %v",
				msg.Topic, msg.Partition, msg.Offset, err)
			return err
		}
		session.MarkMessage(msg, "")
	}
	return nil
}
