package logic

import (
	"context"
	stderrors "errors"

	"AeroBot/app/common/consts/errno"
	"AeroBot/app/common/response"
	"AeroBot/app/services/chatbot/internal/channel/telegram"
	"AeroBot/app/services/chatbot/internal/svc"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type TelegramPollingLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewTelegramPollingLogic(ctx context.Context, svcCtx *svc.ServiceContext) *TelegramPollingLogic {
	return &TelegramPollingLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *TelegramPollingLogic) StartPolling() (*response.Status, error) {
	if !l.svcCtx.Telegram.Enabled() {
		return nil, errors.New(int(errno.ChannelDisabled), "telegram bot token not configured")
	}
	if err := StartTelegramPolling(l.svcCtx); err != nil {
		return nil, l.pollingError(err)
	}
	resp := response.OK("Polling iniciado")
	return &resp, nil
}

// DeleteWebhook drops the webhook with its pending updates and switches the
// bot to polling.
func (l *TelegramPollingLogic) DeleteWebhook() (*response.Status, error) {
	if !l.svcCtx.Telegram.Enabled() {
		return nil, errors.New(int(errno.ChannelDisabled), "telegram bot token not configured")
	}
	if err := l.svcCtx.Telegram.DeleteWebhook(); err != nil {
		l.Logger.Errorw("delete telegram webhook failed", logx.Field("err", err.Error()))
		return nil, errors.New(int(errno.InternalError), err.Error())
	}
	if err := StartTelegramPolling(l.svcCtx); err != nil {
		return nil, l.pollingError(err)
	}
	resp := response.OK("Webhook eliminado, polling iniciado")
	return &resp, nil
}

func (l *TelegramPollingLogic) pollingError(err error) error {
	if stderrors.Is(err, telegram.ErrWebhookActive) {
		return errors.New(int(errno.ChannelDisabled), "telegram webhook is set, delete it first")
	}
	l.Logger.Errorw("start telegram polling failed", logx.Field("err", err.Error()))
	return errors.New(int(errno.InternalError), err.Error())
}

// StartTelegramPolling runs the poller under the service lifetime. A poller
// that is already running counts as started.
func StartTelegramPolling(sc *svc.ServiceContext) error {
	err := sc.Telegram.StartPolling(sc.Lifetime, func(ctx context.Context, in telegram.Incoming) {
		NewTelegramUpdateLogic(ctx, sc).TelegramUpdate(in)
	})
	if stderrors.Is(err, telegram.ErrAlreadyPolling) {
		return nil
	}
	return err
}
