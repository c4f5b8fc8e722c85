package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	if err != nil {
		t.Fatalf("NewProducer() error = %v", err)
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.transport != nil {
		t.Error("expected default transport without TLS or SASL")
	}
}

func TestNewProducerRejectsUnknownSASL(t *testing.T) {
	_, err := NewProducer(Config{
		Brokers:       []string{"kafka:9092"},
		SASLEnabled:   true,
		SASLMechanism: "GSSAPI",
	})
	if err == nil {
		t.Fatal("expected error for unsupported SASL mechanism")
	}
}

func TestNewProducerWithTLSAndScram(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:       []string{"kafka:9093"},
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "SCRAM-SHA-512",
		SASLUsername:  "kyb",
		SASLPassword:  "secret",
	})
	if err != nil {
		t.Fatalf("NewProducer() error = %v", err)
	}
	if p.transport == nil || p.transport.TLS == nil || p.transport.SASL == nil {
		t.Fatal("expected transport carrying TLS and SASL")
	}
	if w := p.getOrCreateWriter("topic"); w.Transport != p.transport {
		t.Error("expected writer to use the configured transport")
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	p, _ := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("topic-a")
	w2 := p.getOrCreateWriter("topic-a")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}

	w3 := p.getOrCreateWriter("topic-b")
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}
	if len(p.writers) != 2 {
		t.Errorf("expected 2 writers, got %d", len(p.writers))
	}
}

func TestProducerClose(t *testing.T) {
	p, _ := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	_ = p.getOrCreateWriter("topic-a")
	_ = p.getOrCreateWriter("topic-b")

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}

func TestToMessageCopiesHeaders(t *testing.T) {
	msg := toMessage(kafkago.Message{
		Key:   []byte("merchant-1"),
		Value: []byte(`{"merchant_id":"merchant-1"}`),
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("kyb.merchant.decided")},
		},
	})

	if string(msg.Key) != "merchant-1" {
		t.Errorf("unexpected key %q", msg.Key)
	}
	if msg.Headers["event_type"] != "kyb.merchant.decided" {
		t.Errorf("unexpected headers %v", msg.Headers)
	}
}
