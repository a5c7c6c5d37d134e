package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"alfredoptarigan/hirehub/internal/models"
)

// AnalysisEvent is published on every status change of an analysis.
type AnalysisEvent struct {
	AnalysisID         uuid.UUID             `json:"analysis_id"`
	Status             models.AnalysisStatus `json:"status"`
	CompatibilityScore *int                  `json:"compatibility_score,omitempty"`
	Error              string                `json:"error,omitempty"`
	Timestamp          time.Time             `json:"timestamp"`
}

type EventPublisher interface {
	PublishStatus(ctx context.Context, event AnalysisEvent) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() EventPublisher { return noopPublisher{} }

func (noopPublisher) PublishStatus(context.Context, AnalysisEvent) error { return nil }
func (noopPublisher) Close() error                                      { return nil }

type amqpPublisher struct {
	conn     *amqp.Connection
	exchange string
	mu       sync.Mutex
	log      *zap.Logger
}

// NewAMQPPublisher dials the broker and declares a durable topic exchange.
// Events are routed as "analysis.<id>".
func NewAMQPPublisher(url, exchange string, log *zap.Logger) (EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &amqpPublisher{conn: conn, exchange: exchange, log: log}, nil
}

func (p *amqpPublisher) PublishStatus(_ context.Context, event AnalysisEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	routingKey := fmt.Sprintf("analysis.%s", event.AnalysisID)
	err = ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.log.Debug("📣 Analysis event published", zap.String("routing_key", routingKey), zap.String("status", string(event.Status)))
	return nil
}

func (p *amqpPublisher) Close() error {
	return p.conn.Close()
}
