package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"trade2cart/internal/config"
)

const OrderCompletedRoutingKey = "order.completed"

// OrderCompletedEvent is published after a bill commit succeeds.
type OrderCompletedEvent struct {
	OrderID    string    `json:"orderId"`
	VendorID   string    `json:"vendorId"`
	CustomerID string    `json:"customerId"`
	BillID     string    `json:"billId"`
	TotalBill  float64   `json:"totalBill"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher emits workflow events to a topic exchange. Publishing is
// best-effort: a failed publish never fails the commit that triggered it.
type Publisher interface {
	PublishOrderCompleted(ctx context.Context, event OrderCompletedEvent) error
	Close() error
}

type amqpPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewPublisher connects to the broker with retry and declares the topic
// exchange. Returns a no-op publisher when no AMQP URL is configured.
func NewPublisher(cfg config.EventsConfig, logger *zap.Logger) (Publisher, error) {
	if cfg.AMQPURL == "" {
		logger.Info("event publishing disabled, no AMQP URL configured")
		return noopPublisher{}, nil
	}

	var conn *amqp.Connection
	var err error
	for i := 0; i < 5; i++ {
		conn, err = amqp.Dial(cfg.AMQPURL)
		if err == nil {
			break
		}
		wait := time.Duration(i*i)*time.Second + time.Second
		logger.Warn("broker connection failed, retrying", zap.Duration("wait", wait), zap.Error(err))
		time.Sleep(wait)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange %s: %w", cfg.Exchange, err)
	}

	return &amqpPublisher{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
		logger:   logger,
	}, nil
}

func (p *amqpPublisher) PublishOrderCompleted(ctx context.Context, event OrderCompletedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		OrderCompletedRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", p.exchange, err)
	}

	p.logger.Debug("event published",
		zap.String("routingKey", OrderCompletedRoutingKey),
		zap.String("orderId", event.OrderID),
	)
	return nil
}

func (p *amqpPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			return err
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderCompleted(context.Context, OrderCompletedEvent) error { return nil }
func (noopPublisher) Close() error                                                     { return nil }
