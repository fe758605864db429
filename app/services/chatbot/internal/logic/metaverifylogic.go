package logic

import (
	"context"

	"AeroBot/app/common/consts/errno"
	"AeroBot/app/services/chatbot/internal/channel/meta"
	"AeroBot/app/services/chatbot/internal/svc"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type MetaVerifyLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewMetaVerifyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MetaVerifyLogic {
	return &MetaVerifyLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *MetaVerifyLogic) MetaVerify(mode, token, challenge string) (string, error) {
	out, ok := meta.Verify(mode, token, challenge, l.svcCtx.Config.Meta.VerifyToken)
	if !ok {
		l.Logger.Infow("meta webhook verification rejected", logx.Field("mode", mode))
		return "", errors.New(int(errno.Forbidden), "Verification failed")
	}
	return out, nil
}
