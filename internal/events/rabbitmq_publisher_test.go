package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type channelStub struct {
	sent   []published
	err    error
	closed bool
}

func (c *channelStub) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *channelStub) Close() error {
	c.closed = true
	return nil
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "slots.extra_added", RoutingKey(model.SlotEventExtraAdded))
	assert.Equal(t, "slots.expired_purged", RoutingKey(model.SlotEventExpiredPurged))
}

func TestPublishSendsJSONToExchange(t *testing.T) {
	ch := &channelStub{}
	p := &RabbitMQPublisher{channel: ch, exchange: "slots.events", logger: zaptest.NewLogger(t)}

	at := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	event := model.SlotEvent{
		Type: model.SlotEventFixedSuppressed,
		ID:   "abc",
		Date: "2025-06-10",
		Time: "08:30",
		At:   at,
	}

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	assert.Equal(t, "slots.events", sent.exchange)
	assert.Equal(t, "slots.fixed_suppressed", sent.key)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)
	assert.Equal(t, "abc", sent.msg.MessageId)

	var decoded model.SlotEvent
	require.NoError(t, json.Unmarshal(sent.msg.Body, &decoded))
	assert.Equal(t, event.Type, decoded.Type)
	assert.Equal(t, event.Date, decoded.Date)
	assert.Equal(t, event.Time, decoded.Time)
	assert.True(t, at.Equal(decoded.At))
}

func TestPublishWrapsChannelError(t *testing.T) {
	ch := &channelStub{err: errors.New("channel closed")}
	p := &RabbitMQPublisher{channel: ch, exchange: "slots.events", logger: zaptest.NewLogger(t)}

	err := p.Publish(context.Background(), model.SlotEvent{Type: model.SlotEventExtraRemoved})
	assert.ErrorContains(t, err, "extra_removed")
}

func TestCloseWithoutConnection(t *testing.T) {
	ch := &channelStub{}
	p := &RabbitMQPublisher{channel: ch, logger: zaptest.NewLogger(t)}

	assert.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), model.SlotEvent{}))
}
