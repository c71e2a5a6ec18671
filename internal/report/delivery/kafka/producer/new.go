package producer

import (
	"report-srv/internal/report"
	pkgKafka "report-srv/pkg/kafka"
	"report-srv/pkg/log"
)

type Producer interface {
	report.Producer
}

type implProducer struct {
	l        log.Logger
	producer pkgKafka.IProducer
}

// New creates a report event producer. The topic is fixed by the underlying pkgKafka producer.
func New(l log.Logger, producer pkgKafka.IProducer) Producer {
	return &implProducer{
		l:        l,
		producer: producer,
	}
}
