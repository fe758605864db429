package notify

import (
	"context"

	"AeroBot/app/common/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/time/rate"
)

// Sender is the part of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier forwards chatbot events to the merchant's admin chat. Without a
// sender events are only logged.
type Notifier struct {
	sender  Sender
	chatID  int64
	limiter *rate.Limiter
	types   map[string]bool
}

func New(sender Sender, chatID int64, ratePerSecond float64, types []string) *Notifier {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	n := &Notifier{
		sender:  sender,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), 3),
	}
	if len(types) > 0 {
		n.types = make(map[string]bool, len(types))
		for _, t := range types {
			n.types[t] = true
		}
	}
	return n
}

func (n *Notifier) Wants(eventType string) bool {
	return n.types == nil || n.types[eventType]
}

func (n *Notifier) Handle(ctx context.Context, e events.Event) error {
	if !n.Wants(e.Type) {
		return nil
	}
	summary := e.Summary()
	if n.sender == nil {
		logx.WithContext(ctx).Infow("chatbot event",
			logx.Field("type", e.Type),
			logx.Field("channel", e.Channel),
			logx.Field("summary", summary))
		return nil
	}
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := n.sender.Send(tgbotapi.NewMessage(n.chatID, summary))
	return err
}
