package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"AeroBot/app/common/consts/biz"
	"AeroBot/app/services/chatbot/internal/agent/session"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

const (
	TaskDeliver   = "chatbot:deliver"
	DeliveryQueue = "delivery"
)

type (
	MetaSender interface {
		Enabled() bool
		Send(ctx context.Context, channel, to, body string) error
	}

	TelegramSender interface {
		Enabled() bool
		Send(ctx context.Context, chatID, text string, st session.State) error
	}

	Enqueuer interface {
		EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	}
)

var ErrUnknownChannel = errors.New("no outbound adapter for channel")

// Message is one outbound reply; it is also the payload of TaskDeliver.
type Message struct {
	Channel string        `json:"channel"`
	To      string        `json:"to"`
	Text    string        `json:"text"`
	State   session.State `json:"state,omitempty"`
}

// Outbox delivers replies for the push channels. Replies go through the
// asynq queue when one is configured and are sent inline otherwise.
type Outbox struct {
	meta     MetaSender
	telegram TelegramSender
	queue    Enqueuer
}

func NewOutbox(meta MetaSender, telegram TelegramSender, queue Enqueuer) *Outbox {
	return &Outbox{meta: meta, telegram: telegram, queue: queue}
}

// Post hands m over for delivery and never blocks on the channel API.
func (o *Outbox) Post(ctx context.Context, m Message) {
	logger := logx.WithContext(ctx)
	if o.queue != nil {
		payload, err := json.Marshal(m)
		if err == nil {
			_, err = o.queue.EnqueueContext(ctx, asynq.NewTask(TaskDeliver, payload),
				asynq.Queue(DeliveryQueue), asynq.MaxRetry(5))
		}
		if err == nil {
			return
		}
		logger.Errorw("enqueue delivery failed, sending inline",
			logx.Field("channel", m.Channel), logx.Field("err", err.Error()))
	}

	detached := context.WithoutCancel(ctx)
	threading.GoSafe(func() {
		if err := o.Send(detached, m); err != nil {
			logx.WithContext(detached).Errorw("deliver reply failed",
				logx.Field("channel", m.Channel),
				logx.Field("to", m.To),
				logx.Field("err", err.Error()))
		}
	})
}

// Send delivers m synchronously. Channels without credentials are skipped.
func (o *Outbox) Send(ctx context.Context, m Message) error {
	switch m.Channel {
	case biz.ChannelWhatsApp, biz.ChannelInstagram:
		if o.meta == nil || !o.meta.Enabled() {
			logx.WithContext(ctx).Infow("meta channel not configured, reply dropped", logx.Field("channel", m.Channel))
			return nil
		}
		return o.meta.Send(ctx, m.Channel, m.To, m.Text)
	case biz.ChannelTelegram:
		if o.telegram == nil || !o.telegram.Enabled() {
			logx.WithContext(ctx).Infow("telegram not configured, reply dropped")
			return nil
		}
		return o.telegram.Send(ctx, m.To, m.Text, m.State)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChannel, m.Channel)
	}
}

// ProcessTask is the asynq handler of TaskDeliver.
func (o *Outbox) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var m Message
	if err := json.Unmarshal(t.Payload(), &m); err != nil {
		return fmt.Errorf("decode delivery: %v: %w", err, asynq.SkipRetry)
	}
	err := o.Send(ctx, m)
	if errors.Is(err, ErrUnknownChannel) {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return err
}
