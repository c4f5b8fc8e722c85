package postgres

import (
	"context"
	"fmt"

	"github.com/bibbank/kyb-service/pkg/events"
)

const insertOutboxSQL = `
	INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, tenant_id, payload, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// InsertOutbox writes entries to the outbox table through q, normally the
// transaction that saves the aggregate which raised them.
func InsertOutbox(ctx context.Context, q Querier, entries []events.OutboxEntry) error {
	for _, e := range entries {
		_, err := q.Exec(ctx, insertOutboxSQL,
			e.ID, e.AggregateID, e.AggregateType, e.EventType, e.TenantID, e.Payload, e.CreatedAt)
		if err != nil {
			return fmt.Errorf("postgres: insert outbox entry %s (%s): %w", e.ID, e.EventType, err)
		}
	}
	return nil
}
