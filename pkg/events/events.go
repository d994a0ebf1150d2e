// Package events publishes payout status changes for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TypePayoutCreated    = "payout.created"
	TypePayoutProcessing = "payout.processing"
	TypePayoutCompleted  = "payout.completed"
	TypePayoutFailed     = "payout.failed"
)

type PayoutEvent struct {
	Type             string    `json:"type"`
	PayoutID         string    `json:"payout_id"`
	MerchantID       string    `json:"merchant_id"`
	PromoterID       string    `json:"promoter_id"`
	OrderID          string    `json:"order_id"`
	DiscountCode     string    `json:"discount_code"`
	Status           string    `json:"status"`
	CommissionAmount int64     `json:"commission_amount_cents"`
	TransferID       *string   `json:"transfer_id,omitempty"`
	FailureReason    *string   `json:"failure_reason,omitempty"`
	Attempts         int       `json:"attempts"`
	At               time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event PayoutEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events keyed by promoter id, so one promoter's
// events stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher requires at least one broker")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka publisher requires a topic")
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			RequiredAcks:           kafka.RequireAll,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
		topic: topic,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event PayoutEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.PromoterID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
		Time: event.At.UTC(),
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, PayoutEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = NoopPublisher{}
)
