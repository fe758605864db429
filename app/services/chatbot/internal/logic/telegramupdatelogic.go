package logic

import (
	"context"
	"strconv"

	"AeroBot/app/common/consts/biz"
	"AeroBot/app/services/chatbot/internal/channel"
	"AeroBot/app/services/chatbot/internal/channel/telegram"
	"AeroBot/app/services/chatbot/internal/svc"

	"github.com/zeromicro/go-zero/core/logx"
)

type TelegramUpdateLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewTelegramUpdateLogic(ctx context.Context, svcCtx *svc.ServiceContext) *TelegramUpdateLogic {
	return &TelegramUpdateLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// TelegramUpdate serves both the webhook and the poller. The reply carries
// the keyboard of the state the turn ended in.
func (l *TelegramUpdateLogic) TelegramUpdate(in telegram.Incoming) {
	if !l.svcCtx.Dedup.First(l.ctx, biz.ChannelTelegram, strconv.Itoa(in.UpdateID)) {
		l.Logger.Infow("duplicate telegram update skipped", logx.Field("update_id", in.UpdateID))
		return
	}
	out, err := l.svcCtx.Driver.HandleTurn(l.ctx, biz.ChannelTelegram, in.ChatID, in.Text)
	if err != nil {
		l.Logger.Errorw("telegram turn failed", logx.Field("chat_id", in.ChatID), logx.Field("err", err.Error()))
		return
	}
	l.svcCtx.Outbox.Post(l.ctx, channel.Message{
		Channel: biz.ChannelTelegram,
		To:      in.ChatID,
		Text:    out.Text,
		State:   out.State,
	})
}
