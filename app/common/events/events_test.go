package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	evt := Event{Type: TypeOrderPlaced, Channel: "web", UserID: "u1", OrderID: 42, Total: 26990, Name: "Juan"}
	got := evt.Summary()
	assert.Contains(t, got, "Nuevo pedido #42 por $26.990")
	assert.Contains(t, got, "(web u1)")
	assert.Contains(t, got, "Nombre: Juan")
	assert.NotContains(t, got, "Email:")
}

func TestKey(t *testing.T) {
	assert.Equal(t, []byte("telegram:99"), Event{Channel: "telegram", UserID: "99"}.Key())
}

type captureWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducerKeysByConversation(t *testing.T) {
	w := &captureWriter{}
	p := NewProducerWithWriter(w)
	err := p.Publish(context.Background(),
		Event{Type: TypeLeadCaptured, Channel: "telegram", UserID: "99"},
		Event{Type: TypeOrderPlaced, Channel: "telegram", UserID: "99", OrderID: 7, Total: 24990})
	require.NoError(t, err)
	require.Len(t, w.msgs, 2)
	assert.Equal(t, []byte("telegram:99"), w.msgs[0].Key)

	var got Event
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &got))
	assert.Equal(t, int64(7), got.OrderID)
	assert.Equal(t, int64(24990), got.Total)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNilProducerDropsEvents(t *testing.T) {
	p := NewProducer(KafkaConf{Topic: "chatbot-events"})
	assert.Nil(t, p)
	assert.NoError(t, p.Publish(context.Background(), Event{Type: TypeLeadCaptured}))
	assert.NoError(t, p.Close())
}

func TestWriterDoesNotBlockOnBroker(t *testing.T) {
	w := newWriter(KafkaConf{Broker: []string{"127.0.0.1:1"}, Topic: "chatbot-events"})
	w.MaxAttempts = 1
	defer w.Close()
	assert.True(t, w.Async)
	assert.NotNil(t, w.Completion)

	start := time.Now()
	err := w.WriteMessages(context.Background(), kafka.Message{Value: []byte(`{}`)})
	assert.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestConsumeUnconfiguredReturns(t *testing.T) {
	err := Consume(context.Background(), KafkaConf{}, func(context.Context, Event) error { return nil })
	assert.NoError(t, err)
}
