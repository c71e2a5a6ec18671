package consumer

import (
	"context"
	"fmt"
	"time"

	"report-srv/config"
	"report-srv/internal/report"
	kafkaDelivery "report-srv/internal/report/delivery/kafka"
	pkgKafka "report-srv/pkg/kafka"
	"report-srv/pkg/log"
	"report-srv/pkg/redis"
)

// Config holds the configuration for the report consumer.
type Config struct {
	Logger      log.Logger
	KafkaConfig config.KafkaConfig
	UseCase     report.UseCase
	// Redis remembers handled payment events. Optional; without it every delivery is processed.
	Redis redis.IRedis
	// Group is an already connected consumer group for the payment topic. Optional; one is
	// created from KafkaConfig otherwise. A passed group is not closed by Close.
	Group pkgKafka.IConsumer
}

// Consumer consumes the topics that drive report generation.
type Consumer interface {
	ConsumePaymentEvents(ctx context.Context) error
	Close() error
}

type consumer struct {
	l           log.Logger
	kafkaConfig config.KafkaConfig
	uc          report.UseCase
	redis       redis.IRedis

	attempts int
	backoff  time.Duration

	paymentEventsGroup pkgKafka.IConsumer
	ownsGroup          bool
}

func New(cfg Config) (Consumer, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.UseCase == nil {
		return nil, fmt.Errorf("usecase is required")
	}
	if len(cfg.KafkaConfig.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	return &consumer{
		l:           cfg.Logger,
		kafkaConfig: cfg.KafkaConfig,
		uc:          cfg.UseCase,
		redis:       cfg.Redis,

		attempts: kafkaDelivery.PaymentEventAttempts,
		backoff:  kafkaDelivery.PaymentRetryBackoff,

		paymentEventsGroup: cfg.Group,
	}, nil
}

func (c *consumer) Close() error {
	if c.paymentEventsGroup != nil && c.ownsGroup {
		if err := c.paymentEventsGroup.Close(); err != nil {
			return fmt.Errorf("failed to close payment events group: %w", err)
		}
	}
	return nil
}

func (c *consumer) createConsumerGroup(groupID string) (pkgKafka.IConsumer, error) {
	group, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
		Brokers: c.kafkaConfig.Brokers,
		GroupID: groupID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCreateConsumerGroupFailed, groupID, err)
	}
	return group, nil
}

func (c *consumer) paymentTopic() string {
	if c.kafkaConfig.PaymentTopic != "" {
		return c.kafkaConfig.PaymentTopic
	}
	return kafkaTopicPaymentEvents
}

func (c *consumer) groupID() string {
	if c.kafkaConfig.GroupID != "" {
		return c.kafkaConfig.GroupID
	}
	return kafkaGroupPaymentEvents
}
