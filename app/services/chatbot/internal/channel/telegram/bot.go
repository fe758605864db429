package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"AeroBot/app/services/chatbot/internal/agent/reply"
	"AeroBot/app/services/chatbot/internal/agent/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/time/rate"
)

var (
	ErrNotConfigured  = errors.New("telegram bot not configured")
	ErrWebhookActive  = errors.New("telegram webhook is set, polling not started")
	ErrAlreadyPolling = errors.New("telegram polling already running")
)

// Bot wraps the Bot API client. A nil *Bot is a disabled channel.
type Bot struct {
	api     *tgbotapi.BotAPI
	limiter *rate.Limiter

	mu      sync.Mutex
	polling bool
}

// New authenticates against the Bot API with getMe.
func New(token string, ratePerSecond float64) (*Bot, error) {
	return NewWithEndpoint(token, tgbotapi.APIEndpoint, &http.Client{Timeout: 30 * time.Second}, ratePerSecond)
}

// NewWithEndpoint is New against another API endpoint, formatted like
// tgbotapi.APIEndpoint.
func NewWithEndpoint(token, endpoint string, client tgbotapi.HTTPClient, ratePerSecond float64) (*Bot, error) {
	if token == "" {
		return nil, ErrNotConfigured
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	if ratePerSecond <= 0 {
		ratePerSecond = 25
	}
	return &Bot{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
	}, nil
}

func (b *Bot) Enabled() bool {
	return b != nil && b.api != nil
}

// Send posts text to chatID with the reply keyboard of state st.
func (b *Bot) Send(ctx context.Context, chatID, text string, st session.State) error {
	if !b.Enabled() {
		return ErrNotConfigured
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: bad chat id %q: %w", chatID, err)
	}
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(id, text)
	msg.ReplyMarkup = reply.Keyboard(st)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// WebhookURL reports the webhook registered for the bot, empty when none.
func (b *Bot) WebhookURL() (string, error) {
	if !b.Enabled() {
		return "", ErrNotConfigured
	}
	info, err := b.api.GetWebhookInfo()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// SetWebhook registers url; Telegram echoes secret back in the
// X-Telegram-Bot-Api-Secret-Token header of every delivery.
func (b *Bot) SetWebhook(url, secret string) error {
	if !b.Enabled() {
		return ErrNotConfigured
	}
	params := tgbotapi.Params{"url": url}
	params.AddNonEmpty("secret_token", secret)
	resp, err := b.api.MakeRequest("setWebhook", params)
	if err != nil {
		return fmt.Errorf("telegram setWebhook: %w", err)
	}
	if !resp.Ok {
		return fmt.Errorf("telegram setWebhook: %s", resp.Description)
	}
	return nil
}

// DeleteWebhook removes the webhook and drops the updates queued for it.
func (b *Bot) DeleteWebhook() error {
	if !b.Enabled() {
		return ErrNotConfigured
	}
	resp, err := b.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true})
	if err != nil {
		return fmt.Errorf("telegram deleteWebhook: %w", err)
	}
	if !resp.Ok {
		return fmt.Errorf("telegram deleteWebhook: %s", resp.Description)
	}
	return nil
}

// StartPolling long-polls getUpdates in the background until ctx ends and
// hands every text message to handle. At most one poller runs per Bot, and
// none while a webhook is registered.
func (b *Bot) StartPolling(ctx context.Context, handle func(ctx context.Context, in Incoming)) error {
	if !b.Enabled() {
		return ErrNotConfigured
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.polling {
		return ErrAlreadyPolling
	}
	if url, err := b.WebhookURL(); err != nil {
		logx.Errorw("telegram getWebhookInfo failed", logx.Field("err", err.Error()))
	} else if url != "" {
		return ErrWebhookActive
	}

	b.polling = true
	logx.Infow("telegram polling started", logx.Field("bot", b.api.Self.UserName))

	go b.poll(ctx, handle)
	return nil
}

// Polling reports whether a poller is running.
func (b *Bot) Polling() bool {
	if !b.Enabled() {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.polling
}

// poll runs getUpdates until ctx ends; the offset acknowledges every update
// already handed out.
func (b *Bot) poll(ctx context.Context, handle func(ctx context.Context, in Incoming)) {
	defer func() {
		b.mu.Lock()
		b.polling = false
		b.mu.Unlock()
		logx.Infow("telegram polling stopped")
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 10
	for ctx.Err() == nil {
		updates, err := b.api.GetUpdates(u)
		if err != nil {
			logx.Errorw("telegram getUpdates failed", logx.Field("err", err.Error()))
			select {
			case <-ctx.Done():
				return
			case <-time.After(3 * time.Second):
			}
			continue
		}
		for _, update := range updates {
			if update.UpdateID >= u.Offset {
				u.Offset = update.UpdateID + 1
			}
			if ctx.Err() != nil {
				return
			}
			if in, ok := FromUpdate(update); ok {
				handle(ctx, in)
			}
		}
	}
}
