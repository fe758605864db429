package svc

import (
	"AeroBot/app/services/notifier/internal/config"
	"AeroBot/app/services/notifier/internal/notify"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/zeromicro/go-zero/core/logx"
)

type ServiceContext struct {
	Config   config.Config
	Notifier *notify.Notifier
}

func NewServiceContext(c config.Config) *ServiceContext {
	logx.MustSetup(c.LogConf)

	var sender notify.Sender
	if c.Telegram.Token != "" && c.Telegram.AdminChatID != 0 {
		bot, err := tgbotapi.NewBotAPI(c.Telegram.Token)
		if err != nil {
			logx.Errorw("init telegram bot failed", logx.Field("err", err))
		} else {
			sender = bot
			logx.Infow("telegram notifications enabled", logx.Field("bot", bot.Self.UserName))
		}
	} else {
		logx.Infow("telegram notifications disabled, events are only logged")
	}

	return &ServiceContext{
		Config:   c,
		Notifier: notify.New(sender, c.Telegram.AdminChatID, c.Telegram.RatePerSecond, c.Types),
	}
}
