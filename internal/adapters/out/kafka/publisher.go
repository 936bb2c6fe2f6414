// Package kafka publishes integration events to the message broker.
// Publishing happens after the database transaction commits and is
// fire-and-forget from the command's point of view: the caller logs a
// failed publish and moves on.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"fulfillment/internal/core/ports"
)

// eventTypeOrderStageChanged identifies the stage change event on the wire.
const eventTypeOrderStageChanged = "fulfillment.order.stage-changed"

// Publisher writes integration events to a single Kafka topic. Messages
// are keyed by order ID so every event for one order lands on the same
// partition and consumers see its stage history in order.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka publisher for the given brokers and topic.
//
// Parameters:
//   - brokers: Kafka bootstrap addresses
//   - topic: Topic receiving all stage change events
//   - logger: Structured logger
//
// Returns:
//   - *Publisher: The configured publisher; Close releases its writer
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Publisher{
		writer: writer,
		logger: logger.With("component", "kafka_publisher"),
	}
}

type orderStageChangedPayload struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	FromStageID string    `json:"from_stage_id"`
	ToStageID   string    `json:"to_stage_id"`
	UserID      string    `json:"user_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// PublishOrderStageChanged emits one stage change event.
func (p *Publisher) PublishOrderStageChanged(ctx context.Context, event ports.OrderStageChanged) error {
	message, err := buildOrderStageChangedMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("publish stage change for order %s: %w", event.OrderID, err)
	}
	return nil
}

func buildOrderStageChangedMessage(event ports.OrderStageChanged) (kafka.Message, error) {
	payload := orderStageChangedPayload{
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		FromStageID: event.FromStageID.String(),
		ToStageID:   event.ToStageID.String(),
		UserID:      event.UserID.String(),
		OccurredAt:  event.OccurredAt.UTC(),
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal stage change event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventTypeOrderStageChanged)},
			{Key: "content-type", Value: []byte("application/json")},
		},
		Time: event.OccurredAt,
	}, nil
}

// Close releases the underlying writer and its connections.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
