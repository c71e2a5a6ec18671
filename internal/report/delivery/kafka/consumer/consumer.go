package consumer

import (
	"context"

	kafkaDelivery "report-srv/internal/report/delivery/kafka"
)

const (
	kafkaTopicPaymentEvents = kafkaDelivery.TopicPaymentEvents
	kafkaGroupPaymentEvents = kafkaDelivery.ConsumerGroupPaymentEvents
)

// ConsumePaymentEvents starts consuming payment events in the background until ctx is done.
func (c *consumer) ConsumePaymentEvents(ctx context.Context) error {
	group := c.paymentEventsGroup
	if group == nil {
		var err error
		group, err = c.createConsumerGroup(c.groupID())
		if err != nil {
			return err
		}
		c.paymentEventsGroup = group
		c.ownsGroup = true
	}

	handler := &paymentEventsHandler{consumer: c}
	topics := []string{c.paymentTopic()}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := group.ConsumeWithContext(ctx, topics, handler); err != nil {
					c.l.Errorf(ctx, "report.delivery.kafka.consumer.ConsumePaymentEvents: Consumer error: %v", err)
				}
			}
		}
	}()

	go func() {
		for err := range group.Errors() {
			c.l.Errorf(ctx, "report.delivery.kafka.consumer.ConsumePaymentEvents: Consumer group error: %v", err)
		}
	}()

	c.l.Infof(ctx, "Consuming %s", topics[0])
	return nil
}
