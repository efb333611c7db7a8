package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Prompt lifecycle event types.
const (
	PromptEventTypeCreated = "created"
	PromptEventTypeUpdated = "updated"
	PromptEventTypeDeleted = "deleted"
)

// PromptEvent describes a change to an input prompt. Consumed by interested
// services (audit, cache invalidation); delivery is best-effort.
type PromptEvent struct {
	EventType string     `json:"event_type"`
	PromptID  int64      `json:"prompt_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// PromptEventPublisher publishes prompt lifecycle events.
// Publishing is fire-and-forget from the caller's perspective: a failed
// publish must never fail the request that triggered it.
type PromptEventPublisher interface {
	PublishPromptEvent(ctx context.Context, event PromptEvent) error
}

type rabbitMQPromptEventPublisher struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewRabbitMQPromptEventPublisher opens a channel on the given connection and
// declares the events queue. Queue parameters must match the consumers
// (durable=true).
func NewRabbitMQPromptEventPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (PromptEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("prompt event publisher: failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("prompt event publisher: failed to declare queue '%s': %w", queueName, err)
	}

	logger.Info("RabbitMQPromptEventPublisher initialized", zap.String("queue", queueName))
	return &rabbitMQPromptEventPublisher{
		conn:      conn,
		channel:   ch,
		queueName: queueName,
		logger:    logger.Named("prompt_event_publisher"),
	}, nil
}

func (p *rabbitMQPromptEventPublisher) PublishPromptEvent(ctx context.Context, event PromptEvent) error {
	if p.channel == nil {
		p.logger.Error("RabbitMQ channel is not initialized (nil)")
		return errors.New("rabbitmq channel is not initialized")
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal PromptEvent",
			zap.String("event_type", event.EventType),
			zap.Int64("prompt_id", event.PromptID),
			zap.Error(err))
		return fmt.Errorf("failed to prepare prompt event message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		"",          // exchange (default)
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish prompt event",
			zap.String("event_type", event.EventType),
			zap.Int64("prompt_id", event.PromptID),
			zap.Error(err))
		return fmt.Errorf("failed to publish prompt event: %w", err)
	}

	p.logger.Debug("Prompt event published",
		zap.String("event_type", event.EventType),
		zap.Int64("prompt_id", event.PromptID))
	return nil
}

// NoopPromptEventPublisher discards events. Used when eventing is disabled
// via configuration.
type NoopPromptEventPublisher struct{}

func (NoopPromptEventPublisher) PublishPromptEvent(_ context.Context, _ PromptEvent) error {
	return nil
}
