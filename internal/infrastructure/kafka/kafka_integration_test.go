//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/kyb-service/internal/application/dto"
	"github.com/bibbank/kyb-service/internal/infrastructure/kafka"
	"github.com/bibbank/kyb-service/pkg/events"
	pkgkafka "github.com/bibbank/kyb-service/pkg/kafka"
	"github.com/bibbank/kyb-service/pkg/testutil"
)

type syncOne struct {
	mu  sync.Mutex
	got []uuid.UUID
}

func (s *syncOne) Execute(_ context.Context, req dto.RescreenMerchantRequest) (dto.MerchantResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, req.MerchantID)
	return dto.MerchantResponse{ID: req.MerchantID}, nil
}

func (s *syncOne) ids() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.got...)
}

func TestKafkaRoundTrip(t *testing.T) {
	ctx := context.Background()
	kc := testutil.NewKafkaContainer(ctx, t)
	kc.CreateTopics(t, "bib.kyb.merchants", "bib.kyb.rescreen-requests")

	producer, err := pkgkafka.NewProducer(kc.Config(""))
	require.NoError(t, err)
	defer producer.Close()

	t.Run("outbox entries reach the events topic keyed by merchant", func(t *testing.T) {
		const topic = "bib.kyb.merchants"
		publisher := kafka.NewPublisher(producer, topic, discard)

		aggregateID := testutil.TestMerchantID.String()
		err := publisher.PublishEntries(ctx, events.OutboxEntry{
			ID:            uuid.NewString(),
			AggregateID:   aggregateID,
			AggregateType: "Merchant",
			EventType:     "kyb.merchant.registered",
			TenantID:      testutil.TestTenantID.String(),
			Payload:       []byte(`{"business_name":"Good Morning Bakery"}`),
		})
		require.NoError(t, err)

		msg := kc.ReadMessage(ctx, t, topic, 30*time.Second)

		assert.Equal(t, aggregateID, string(msg.Key))
		assert.JSONEq(t, `{"business_name":"Good Morning Bakery"}`, string(msg.Value))
		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, "kyb.merchant.registered", headers["event_type"])
	})

	t.Run("rescreen requests are consumed", func(t *testing.T) {
		const topic = "bib.kyb.rescreen-requests"
		one := &syncOne{}
		handler := kafka.NewRescreenHandler(one, &stubAll{}, discard)

		consumer, err := kafka.NewRescreenConsumer(kc.Config("kyb-service-test"), topic, handler, discard)
		require.NoError(t, err)
		defer consumer.Close()

		consumeCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() { _ = consumer.Start(consumeCtx) }()

		payload, err := json.Marshal(kafka.RescreenRequest{MerchantID: testutil.TestMerchantID.String()})
		require.NoError(t, err)
		require.NoError(t, producer.Publish(ctx, topic, pkgkafka.Message{Value: payload}))

		assert.Eventually(t, func() bool {
			ids := one.ids()
			return len(ids) == 1 && ids[0] == testutil.TestMerchantID
		}, 60*time.Second, 200*time.Millisecond)
	})
}
