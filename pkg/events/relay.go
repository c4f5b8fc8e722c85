package events

import (
	"context"
	"fmt"
)

// Relay moves unpublished outbox entries to the broker. Entries are marked
// published only after the broker accepted them, so delivery is at-least-once.
type Relay struct {
	outbox    OutboxRepository
	publisher EntryPublisher
	batchSize int
}

// NewRelay creates a Relay. A non-positive batch size falls back to 100.
func NewRelay(outbox OutboxRepository, publisher EntryPublisher, batchSize int) *Relay {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Relay{outbox: outbox, publisher: publisher, batchSize: batchSize}
}

// RunOnce relays a single batch and returns how many entries were published.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	entries, err := r.outbox.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch unpublished: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	if err := r.publisher.PublishEntries(ctx, entries...); err != nil {
		return 0, fmt.Errorf("publish outbox batch: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	if err := r.outbox.MarkPublished(ctx, ids); err != nil {
		return 0, fmt.Errorf("mark published: %w", err)
	}
	return len(entries), nil
}
