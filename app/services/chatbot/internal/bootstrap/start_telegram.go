package bootstrap

import (
	"AeroBot/app/services/chatbot/internal/logic"
	"AeroBot/app/services/chatbot/internal/svc"

	"github.com/zeromicro/go-zero/core/logx"
)

// StartTelegram registers the configured webhook, or falls back to polling
// when no webhook URL is configured.
func StartTelegram(sc *svc.ServiceContext) {
	if !sc.Telegram.Enabled() {
		return
	}
	tc := sc.Config.Telegram
	if tc.WebhookURL != "" {
		if err := sc.Telegram.SetWebhook(tc.WebhookURL, tc.SecretToken); err != nil {
			logx.Errorw("register telegram webhook failed", logx.Field("err", err.Error()))
		}
		return
	}
	if err := logic.StartTelegramPolling(sc); err != nil {
		logx.Infow("telegram polling not started", logx.Field("reason", err.Error()))
	}
}
