package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

const routingKeyPrefix = "slots."

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher публикует события слотов в topic exchange
type RabbitMQPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  amqpChannel
	exchange string
	logger   *zap.Logger
}

// NewRabbitMQPublisher подключается к брокеру и объявляет exchange
func NewRabbitMQPublisher(url, exchange string, logger *zap.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	logger.Info("RabbitMQ publisher connected", zap.String("exchange", exchange))

	return &RabbitMQPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event model.SlotEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(ctx, p.exchange, RoutingKey(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.logger.Debug("Slot event published",
		zap.String("type", string(event.Type)),
		zap.String("id", event.ID))
	return nil
}

// Close закрывает канал и соединение
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.Close(); err != nil {
		p.logger.Warn("Failed to close rabbitmq channel", zap.Error(err))
	}
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

// RoutingKey строит ключ маршрутизации вида slots.<type>
func RoutingKey(typ model.SlotEventType) string {
	return routingKeyPrefix + string(typ)
}

func newPublishing(event model.SlotEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal slot event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.At,
		Type:         string(event.Type),
		Body:         body,
	}, nil
}
