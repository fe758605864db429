package logic

import (
	"context"

	"AeroBot/app/services/chatbot/internal/channel"
	"AeroBot/app/services/chatbot/internal/channel/meta"
	"AeroBot/app/services/chatbot/internal/svc"

	"github.com/zeromicro/go-zero/core/logx"
)

type MetaWebhookLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewMetaWebhookLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MetaWebhookLogic {
	return &MetaWebhookLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// MetaWebhook runs one turn per received message and posts the replies.
// Meta retries on anything but 200, so failures are only logged.
func (l *MetaWebhookLogic) MetaWebhook(body []byte) {
	msgs, err := meta.ParseWebhook(body)
	if err != nil {
		l.Logger.Errorw("decode meta webhook failed", logx.Field("err", err.Error()))
		return
	}
	for _, m := range msgs {
		if !l.svcCtx.Dedup.First(l.ctx, m.Channel, m.MessageID) {
			l.Logger.Infow("duplicate meta message skipped", logx.Field("message_id", m.MessageID))
			continue
		}
		out, err := l.svcCtx.Driver.HandleTurn(l.ctx, m.Channel, m.From, m.Text)
		if err != nil {
			l.Logger.Errorw("meta turn failed",
				logx.Field("channel", m.Channel),
				logx.Field("user_id", m.From),
				logx.Field("err", err.Error()))
			continue
		}
		l.svcCtx.Outbox.Post(l.ctx, channel.Message{Channel: m.Channel, To: m.From, Text: out.Text})
	}
}
