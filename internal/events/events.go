// Package events publishes domain events. Publishing is best effort: a broker
// outage is logged and never fails the operation that produced the event.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/georgemunganga/vendorhub/internal/logging"
)

const (
	TopicProducts = "product_events"
	TopicSales    = "sale_events"
)

// Publisher sends an event to a topic under a partition key.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event interface{}) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, interface{}) error { return nil }

type KafkaPublisher struct {
	writer *kafka.Writer
}

var _ Publisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("kafka: write to %s: %w", topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Emit publishes through p and logs failures instead of returning them.
func Emit(ctx context.Context, p Publisher, topic, key string, event interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "topic", topic, "key", key, "error", err)
	}
}

// ProductEvent is written to TopicProducts.
type ProductEvent struct {
	Type       string    `json:"type"` // product_submitted, product_approved, product_rejected
	ProductID  string    `json:"product_id"`
	StoreID    string    `json:"store_id"`
	Status     string    `json:"approval_status"`
	Notes      *string   `json:"admin_notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SaleEvent is written to TopicSales.
type SaleEvent struct {
	Type        string    `json:"type"` // sale_recorded
	SaleID      string    `json:"sale_id"`
	StoreID     string    `json:"store_id"`
	TotalAmount float64   `json:"total_amount"`
	ItemsCount  int       `json:"items_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}
