package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
)

type KafkaConf struct {
	Broker []string `json:",optional"`
	Topic  string   `json:",default=chatbot-events"`
	Group  string   `json:",optional"`
}

func (c KafkaConf) Enabled() bool {
	return len(c.Broker) > 0 && c.Topic != ""
}

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	w MessageWriter
}

// NewProducer returns nil when Kafka is not configured; a nil *Producer
// drops every event.
func NewProducer(c KafkaConf) *Producer {
	if !c.Enabled() {
		return nil
	}
	return NewProducerWithWriter(newWriter(c))
}

// newWriter batches in the background: WriteMessages returns at once and a
// broker outage only shows up in the completion log, never in a reply.
func newWriter(c KafkaConf) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Broker...),
		Topic:                  c.Topic,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           5 * time.Millisecond,
		Async:                  true,
		Completion:             logCompletion,
	}
}

func logCompletion(msgs []kafka.Message, err error) {
	if err != nil {
		logx.Errorw("publish events failed", logx.Field("count", len(msgs)), logx.Field("err", err.Error()))
	}
}

func NewProducerWithWriter(w MessageWriter) *Producer {
	return &Producer{w: w}
}

func (p *Producer) Publish(ctx context.Context, evs ...Event) error {
	if p == nil || len(evs) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(evs))
	for _, e := range evs {
		body, err := json.Marshal(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{Key: e.Key(), Value: body})
	}
	return p.w.WriteMessages(ctx, msgs...)
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.w.Close()
}

// Consume reads the topic with the configured consumer group until ctx is
// done. Unconfigured Kafka returns nil at once. Messages that fail to decode
// or to handle are logged and committed so one bad event cannot stall the
// group.
func Consume(ctx context.Context, c KafkaConf, handle func(context.Context, Event) error) error {
	if !c.Enabled() || c.Group == "" {
		return nil
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     c.Broker,
		GroupID:     c.Group,
		Topic:       c.Topic,
		MinBytes:    1,
		MaxBytes:    10 << 20,
		StartOffset: kafka.FirstOffset,
	})
	defer r.Close()

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			logx.Errorw("fetch event failed", logx.Field("err", err.Error()))
			continue
		}
		var e Event
		if err := json.Unmarshal(m.Value, &e); err != nil {
			logx.Errorw("decode event failed", logx.Field("offset", m.Offset), logx.Field("err", err.Error()))
		} else if err := handle(ctx, e); err != nil {
			logx.Errorw("handle event failed", logx.Field("type", e.Type), logx.Field("err", err.Error()))
		}
		if err := r.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			logx.Errorw("commit event failed", logx.Field("err", err.Error()))
		}
	}
}
