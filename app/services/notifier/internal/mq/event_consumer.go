package mq

import (
	"context"

	"AeroBot/app/common/events"
	"AeroBot/app/services/notifier/internal/svc"

	"github.com/zeromicro/go-zero/core/logx"
)

func StartEventConsumer(ctx context.Context, sc *svc.ServiceContext) error {
	kc := sc.Config.KafkaConf
	if !kc.Enabled() || kc.Group == "" {
		logx.Infow("skip event consumer, kafka config missing")
		return nil
	}
	return events.Consume(ctx, kc, sc.Notifier.Handle)
}
