package response

import (
	"context"
	stderrors "errors"
	"net/http"

	"AeroBot/app/common/consts/errno"

	"github.com/zeromicro/x/errors"
)

// ErrorHandler renders coded errors as Response bodies. Errors without a code
// come from request parsing and are reported as invalid params.
func ErrorHandler(_ context.Context, err error) (int, any) {
	var cm *errors.CodeMsg
	if !stderrors.As(err, &cm) {
		return http.StatusBadRequest, NewResponse(errno.InvalidParam, err.Error())
	}
	return httpStatus(cm.Code), NewResponse(cm.Code, cm.Msg)
}

func httpStatus(code int) int {
	switch code {
	case errno.TokenEmpty, errno.AccessTokenExpired, errno.InvalidCredentials:
		return http.StatusUnauthorized
	case errno.Forbidden:
		return http.StatusForbidden
	case errno.InvalidParam, errno.ChannelDisabled:
		return http.StatusBadRequest
	case errno.OrderNotFound, errno.ProductNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
