package util

import (
	"context"
	"net/http"

	"AeroBot/app/common/consts/biz"
	"AeroBot/app/common/consts/errno"

	"github.com/zeromicro/x/errors"
)

func AdminFromCtx(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", errors.New(int(errno.TokenEmpty), "missing context")
	}
	if val, ok := ctx.Value(biz.ADMIN_KEY).(string); ok && val != "" {
		return val, nil
	}
	return "", errors.New(int(errno.TokenEmpty), "unauthorized")
}

func InjectAdmin2Ctx(r *http.Request, username string) {
	ctx := context.WithValue(r.Context(), biz.ADMIN_KEY, username)
	*r = *r.WithContext(ctx)
}
