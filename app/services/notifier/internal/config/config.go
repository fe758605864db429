package config

import (
	"AeroBot/app/common/events"

	"github.com/zeromicro/go-zero/core/logx"
)

type Config struct {
	LogConf   logx.LogConf
	KafkaConf events.KafkaConf
	Telegram  TelegramConf `json:",optional"`
	Workers   int          `json:",default=1"`
	// Types limits the forwarded event types; empty forwards all of them.
	Types []string `json:",optional"`
}

type TelegramConf struct {
	Token         string  `json:",optional"`
	AdminChatID   int64   `json:",optional"`
	RatePerSecond float64 `json:",default=1"`
}
