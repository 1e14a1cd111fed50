// Package events publishes order lifecycle events to Kafka. Publishing is
// best-effort: the API never fails a request because the broker is down.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

const Topic = "order_events"

const (
	TypeOrderCreated       = "order_created"
	TypeOrderStatusUpdated = "order_status_updated"
)

type Producer struct {
	writer *kafka.Writer
}

// NewProducer builds a producer for the given brokers. An empty broker
// list yields a disabled producer whose Publish is a no-op, so local
// setups can run without Kafka.
func NewProducer(brokers []string) *Producer {
	if len(brokers) == 0 {
		return &Producer{}
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: w}
}

func (p *Producer) Publish(ctx context.Context, key string, event map[string]any) error {
	if p.writer == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal failed: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("events: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
