package testutil

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkapkg "github.com/bibbank/kyb-service/pkg/kafka"
)

// KafkaContainer is a single-node Kafka broker for integration tests.
type KafkaContainer struct {
	Container *kafka.KafkaContainer
	Brokers   []string
}

// NewKafkaContainer starts a broker and terminates it when the test ends.
func NewKafkaContainer(ctx context.Context, t *testing.T) *KafkaContainer {
	t.Helper()

	container, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.6.1",
		kafka.WithClusterID("kyb-test-cluster"),
	)
	if err != nil {
		t.Fatalf("failed to start kafka container: %v", err)
	}
	kc := &KafkaContainer{Container: container}
	t.Cleanup(func() { kc.terminate(t) })

	kc.Brokers, err = container.Brokers(ctx)
	if err != nil {
		t.Fatalf("failed to get kafka brokers: %v", err)
	}
	return kc
}

// Config returns a client config pointing at the container.
func (kc *KafkaContainer) Config(group string) kafkapkg.Config {
	return kafkapkg.Config{Brokers: kc.Brokers, ConsumerGroup: group}
}

// CreateTopics creates single-partition topics through the cluster controller
// so consumers never race topic auto-creation.
func (kc *KafkaContainer) CreateTopics(t *testing.T, topics ...string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", kc.Brokers[0])
	if err != nil {
		t.Fatalf("failed to dial kafka: %v", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		t.Fatalf("failed to find kafka controller: %v", err)
	}
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		t.Fatalf("failed to dial kafka controller: %v", err)
	}
	defer ctrl.Close()

	configs := make([]kafkago.TopicConfig, 0, len(topics))
	for _, topic := range topics {
		configs = append(configs, kafkago.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	}
	if err := ctrl.CreateTopics(configs...); err != nil {
		t.Fatalf("failed to create topics %v: %v", topics, err)
	}
}

// ReadMessage returns the next message on partition 0 of topic, failing the
// test after timeout.
func (kc *KafkaContainer) ReadMessage(ctx context.Context, t *testing.T, topic string, timeout time.Duration) kafkago.Message {
	t.Helper()

	reader := kafkago.NewReader(kafkago.ReaderConfig{Brokers: kc.Brokers, Topic: topic, Partition: 0})
	defer reader.Close()

	readCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	msg, err := reader.ReadMessage(readCtx)
	if err != nil {
		t.Fatalf("failed to read from %s: %v", topic, err)
	}
	return msg
}

func (kc *KafkaContainer) terminate(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := kc.Container.Terminate(ctx); err != nil {
		t.Logf("warning: failed to terminate kafka container: %v", err)
	}
}
