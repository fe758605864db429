// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package logic

import (
	"context"
	"strings"

	"AeroBot/app/common/consts/biz"
	"AeroBot/app/common/consts/errno"
	"AeroBot/app/services/chatbot/internal/svc"
	"AeroBot/app/services/chatbot/internal/types"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type WebchatSendLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewWebchatSendLogic(ctx context.Context, svcCtx *svc.ServiceContext) *WebchatSendLogic {
	return &WebchatSendLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *WebchatSendLogic) WebchatSend(req *types.WebchatSendRequest) (resp *types.WebchatSendResponse, err error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, errors.New(int(errno.InvalidParam), "text is empty")
	}
	userID := strings.TrimSpace(req.UserId)
	if userID == "" {
		userID = uuid.NewString()
	}

	out, err := l.svcCtx.Driver.HandleTurn(l.ctx, biz.ChannelWeb, userID, req.Text)
	if err != nil {
		l.Logger.Errorw("webchat turn failed", logx.Field("user_id", userID), logx.Field("err", err.Error()))
		return nil, errors.New(int(errno.InternalError), "conversation failed")
	}

	return &types.WebchatSendResponse{
		UserId: userID,
		Reply:  out.Text,
		State:  out.State.String(),
	}, nil
}
