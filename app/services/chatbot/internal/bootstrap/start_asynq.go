package bootstrap

import (
	"AeroBot/app/services/chatbot/internal/channel"
	"AeroBot/app/services/chatbot/internal/mq"
	"AeroBot/app/services/chatbot/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
)

// StartAsynq runs the delivery worker. Without an asynq address replies are
// sent inline and no worker is started.
func StartAsynq(sc *svc.ServiceContext) func() {
	addr := sc.Config.AsynqConf.Addr
	if addr == "" {
		return func() {}
	}
	queues := sc.Config.AsynqServerConf.Queues
	if len(queues) == 0 {
		queues = map[string]int{channel.DeliveryQueue: 1}
	}
	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: addr}, asynq.Config{
		Concurrency: sc.Config.AsynqServerConf.Concurrency,
		Queues:      queues,
	})
	mux := mq.NewAsynqMux(sc)
	go func() {
		if err := srv.Run(mux); err != nil {
			logx.Errorw("asynq delivery worker stopped", logx.Field("err", err.Error()))
		}
	}()
	return func() {
		srv.Shutdown()
	}
}
