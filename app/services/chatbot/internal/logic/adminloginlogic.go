// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package logic

import (
	"context"
	"crypto/subtle"
	"time"

	"AeroBot/app/common/consts/errno"
	"AeroBot/app/common/util"
	"AeroBot/app/services/chatbot/internal/svc"
	"AeroBot/app/services/chatbot/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
	"golang.org/x/crypto/bcrypt"
)

type AdminLoginLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAdminLoginLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AdminLoginLogic {
	return &AdminLoginLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *AdminLoginLogic) AdminLogin(req *types.AdminLoginRequest) (resp *types.AdminLoginResponse, err error) {
	admin := l.svcCtx.Config.Admin
	if req.Username == "" || req.Password == "" {
		return nil, errors.New(int(errno.InvalidParam), "username and password are required")
	}
	if admin.PasswordHash == "" {
		l.Logger.Infow("admin login attempted with no password hash configured")
		return nil, errors.New(int(errno.InvalidCredentials), "invalid username or password")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(admin.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		l.Logger.Infow("admin login rejected", logx.Field("username", req.Username))
		return nil, errors.New(int(errno.InvalidCredentials), "invalid username or password")
	}

	token, _, err := util.SignToken(admin.AccessSecret, time.Duration(admin.AccessExpire)*time.Second, admin.Username)
	if err != nil {
		l.Logger.Errorw("sign admin token failed", logx.Field("err", err.Error()))
		return nil, errors.New(int(errno.InternalError), "sign token failed")
	}

	return &types.AdminLoginResponse{
		AccessToken: token,
		ExpiresIn:   admin.AccessExpire,
	}, nil
}
