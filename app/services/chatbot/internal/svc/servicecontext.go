package svc

import (
	"context"
	"time"

	commonconfig "AeroBot/app/common/config"
	"AeroBot/app/common/events"
	"AeroBot/app/common/middleware"
	"AeroBot/app/common/snowflake"
	"AeroBot/app/dal/chatbot"
	"AeroBot/app/services/chatbot/internal/agent/catalog"
	"AeroBot/app/services/chatbot/internal/agent/conversation"
	"AeroBot/app/services/chatbot/internal/agent/generator"
	"AeroBot/app/services/chatbot/internal/channel"
	"AeroBot/app/services/chatbot/internal/channel/meta"
	"AeroBot/app/services/chatbot/internal/channel/telegram"
	"AeroBot/app/services/chatbot/internal/config"
	"AeroBot/app/services/chatbot/internal/dedup"
	"AeroBot/app/services/chatbot/internal/store"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest"
)

type ServiceContext struct {
	Config config.Config

	DB       sqlx.SqlConn
	Sessions *store.SessionStore
	Orders   *store.OrderStore
	Catalog  *catalog.Catalog

	Generator *generator.Generator
	Producer  *events.Producer
	Driver    *conversation.Driver

	Meta        *meta.Client
	Telegram    *telegram.Bot
	AsynqClient *asynq.Client
	Outbox      *channel.Outbox
	Dedup       *dedup.Guard

	AuthMiddleware rest.Middleware

	// Lifetime outlives single requests; background pollers run under it.
	Lifetime context.Context
	stop     context.CancelFunc
}

func NewServiceContext(c config.Config) *ServiceContext {
	logx.MustSetup(c.Log)

	if c.SnowflakeNode > 0 {
		if err := snowflake.SetNodeID(c.SnowflakeNode); err != nil {
			logx.Errorf("failed to set snowflake node id: %v", err)
		}
	}

	db := c.Store.MustNewConn()
	if c.Store.Migrate {
		logx.Must(commonconfig.ApplySchema(context.Background(), db, chatbot.Schema))
	}

	cat := catalog.Default()
	if len(c.Catalog) > 0 {
		cat = catalog.MustNew(c.Catalog)
	}

	gen := newGenerator(c.ChatModel, cat)
	producer := events.NewProducer(c.KafkaConf)
	sessions := store.NewSessionStore(db)
	orders := store.NewOrderStore(db)

	metaClient := meta.NewClient(c.Meta.GraphURL, c.Meta.AccessToken, c.Meta.PhoneNumberID,
		time.Duration(c.Meta.TimeoutSeconds)*time.Second)

	var bot *telegram.Bot
	if c.Telegram.Token != "" {
		b, err := telegram.New(c.Telegram.Token, c.Telegram.RatePerSecond)
		if err != nil {
			logx.Errorw("init telegram bot failed", logx.Field("err", err.Error()))
		} else {
			bot = b
		}
	}

	var (
		asynqClient *asynq.Client
		queue       channel.Enqueuer
	)
	if c.AsynqConf.Addr != "" {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: c.AsynqConf.Addr})
		queue = asynqClient
	}

	var rds *redis.Redis
	if c.Redis.Host != "" {
		rds = redis.MustNewRedis(c.Redis)
	}

	lifetime, stop := context.WithCancel(context.Background())

	return &ServiceContext{
		Config:    c,
		DB:        db,
		Sessions:  sessions,
		Orders:    orders,
		Catalog:   cat,
		Generator: gen,
		Producer:  producer,
		Driver: conversation.NewDriver(conversation.Deps{
			Sessions:   sessions,
			Orders:     orders,
			Catalog:    cat,
			Generator:  gen,
			Publisher:  producer,
			PaymentURL: c.Payment.BaseURL,
		}),
		Meta:           metaClient,
		Telegram:       bot,
		AsynqClient:    asynqClient,
		Outbox:         channel.NewOutbox(metaClient, bot, queue),
		Dedup:          dedup.New(rds, c.DedupTTLSeconds),
		AuthMiddleware: middleware.NewAuthMiddleware(c.Admin.AccessSecret).Handle,
		Lifetime:       lifetime,
		stop:           stop,
	}
}

func newGenerator(c config.ModelConf, cat *catalog.Catalog) *generator.Generator {
	if !c.Enabled() {
		return nil
	}
	cm, err := ark.NewChatModel(context.Background(), &ark.ChatModelConfig{
		BaseURL: c.BaseUrl,
		APIKey:  c.APIKey,
		Model:   c.Model,
	})
	if err != nil {
		logx.Errorw("init ark chat model failed", logx.Field("err", err))
		return nil
	}
	logx.Infow("ark chat model ready", logx.Field("model", c.Model))
	return generator.New(cm, cat, time.Duration(c.TimeoutSeconds)*time.Second)
}

// Close releases the clients opened by NewServiceContext.
func (s *ServiceContext) Close() {
	if s.stop != nil {
		s.stop()
	}
	if err := s.Producer.Close(); err != nil {
		logx.Errorw("close event producer failed", logx.Field("err", err.Error()))
	}
	if s.AsynqClient != nil {
		_ = s.AsynqClient.Close()
	}
}
