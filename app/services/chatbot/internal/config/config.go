package config

import (
	"AeroBot/app/common/config"
	"AeroBot/app/common/events"
	"AeroBot/app/services/chatbot/internal/agent/catalog"

	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf

	Store config.StoreConf
	// Redis backs webhook de-duplication.
	Redis           redis.RedisConf `json:",optional"`
	DedupTTLSeconds int             `json:",default=86400"`

	AsynqConf       AsynqRedisConf  `json:",optional"`
	AsynqServerConf AsynqServerConf `json:",optional"`

	KafkaConf events.KafkaConf `json:",optional"`

	ChatModel ModelConf    `json:",optional"`
	Meta      MetaConf     `json:",optional"`
	Telegram  TelegramConf `json:",optional"`
	Payment   PaymentConf  `json:",optional"`
	Admin     AdminConf

	SnowflakeNode int64 `json:",optional"`
	// Catalog replaces the built-in price list when set.
	Catalog []catalog.Product `json:",optional"`
}

type AsynqRedisConf struct {
	Addr string `json:",optional"`
}

type AsynqServerConf struct {
	Concurrency int            `json:",default=10"`
	Queues      map[string]int `json:",optional"`
}

type ModelConf struct {
	BaseUrl        string `json:",optional"`
	APIKey         string `json:",optional"`
	Model          string `json:",optional"`
	TimeoutSeconds int    `json:",default=15"`
}

func (m ModelConf) Enabled() bool {
	return m.APIKey != "" && m.Model != ""
}

type MetaConf struct {
	VerifyToken    string `json:",optional"`
	AccessToken    string `json:",optional"`
	PhoneNumberID  string `json:",optional"`
	GraphURL       string `json:",default=https://graph.facebook.com/v20.0"`
	TimeoutSeconds int    `json:",default=15"`
}

type TelegramConf struct {
	Token       string `json:",optional"`
	SecretToken string `json:",optional"`
	// WebhookURL is registered at startup; polling starts instead when empty.
	WebhookURL    string  `json:",optional"`
	RatePerSecond float64 `json:",default=25"`
}

type PaymentConf struct {
	BaseURL string `json:",default=https://pagos.aerocamaras.cl"`
}

type AdminConf struct {
	AccessSecret string
	AccessExpire int64  `json:",default=7200"`
	Username     string `json:",default=admin"`
	// PasswordHash is a bcrypt hash, see tools/adminpass.
	PasswordHash string `json:",optional"`
}
