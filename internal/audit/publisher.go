package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fairgate/internal/platform/kafka/producer"
)

// MessageProducer is the broker-facing side of the publisher. The Kafka
// producer satisfies it; tests swap in a recorder.
type MessageProducer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// Publisher captures decision audit events. Persistence goes through the
// store; an optional broker sink fans the same event out to downstream
// consumers. Broker failures are logged, not returned: losing a stream copy
// is acceptable, losing the persisted record is not.
type Publisher struct {
	store    Store
	producer MessageProducer
	topic    string
	logger   *slog.Logger
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithProducer attaches a broker sink and destination topic.
func WithProducer(p MessageProducer, topic string) PublisherOption {
	return func(pub *Publisher) {
		pub.producer = p
		pub.topic = topic
	}
}

// WithPublisherLogger sets a logger for sink error reporting.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(pub *Publisher) {
		pub.logger = logger
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	if store == nil {
		panic("audit.NewPublisher: store is required")
	}
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.store.Append(ctx, event); err != nil {
		return fmt.Errorf("persist audit event: %w", err)
	}

	if p.producer != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode audit event: %w", err)
		}
		msg := &producer.Message{
			Topic: p.topic,
			Key:   []byte(event.CaseID),
			Value: payload,
		}
		if err := p.producer.Produce(ctx, msg); err != nil && p.logger != nil {
			p.logger.Warn("audit event not published to broker",
				"error", err,
				"case_id", event.CaseID,
				"decision", event.Decision,
			)
		}
	}

	return nil
}

func (p *Publisher) ListByCase(ctx context.Context, caseID string) ([]Event, error) {
	return p.store.ListByCase(ctx, caseID)
}
