package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/kyb-service/pkg/events"
	pkgkafka "github.com/bibbank/kyb-service/pkg/kafka"
)

// MessageWriter is the subset of pkgkafka.Producer the publisher needs.
type MessageWriter interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements events.EntryPublisher on Kafka. Messages are keyed by
// aggregate ID so all events of one merchant land on the same partition.
type Publisher struct {
	writer MessageWriter
	logger *slog.Logger
	topic  string
}

// NewPublisher creates a new Kafka outbox publisher.
func NewPublisher(writer MessageWriter, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// PublishEntries sends outbox entries to the events topic in one batch.
func (p *Publisher) PublishEntries(ctx context.Context, entries ...events.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(entries))
	for _, e := range entries {
		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_id", e.ID),
			slog.String("event_type", e.EventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(e.Payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(e.AggregateID),
			Value: e.Payload,
			Headers: map[string]string{
				"event_id":       e.ID,
				"event_type":     e.EventType,
				"aggregate_type": e.AggregateType,
				"tenant_id":      e.TenantID,
			},
		})
	}

	if err := p.writer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish %d events to topic %s: %w", len(entries), p.topic, err)
	}
	return nil
}
