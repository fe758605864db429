package middleware

import (
	stderrors "errors"
	"net/http"
	"strings"

	"AeroBot/app/common/consts/biz"
	"AeroBot/app/common/consts/errno"
	"AeroBot/app/common/util"

	"github.com/zeromicro/go-zero/rest/httpx"
	"github.com/zeromicro/x/errors"
)

// AuthMiddleware guards the admin routes with an HS256 access token taken from
// the cookie, the access_token header or a bearer Authorization header.
type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken := tokenFromRequest(r)
		if accessToken == "" {
			httpx.ErrorCtx(r.Context(), w, errors.New(int(errno.TokenEmpty), "token is null"))
			return
		}

		claims, err := util.ParseToken(accessToken, m.secret)
		switch {
		case stderrors.Is(err, util.ErrTokenExpired):
			httpx.ErrorCtx(r.Context(), w, errors.New(int(errno.AccessTokenExpired), "token expired"))
			return
		case err != nil:
			httpx.ErrorCtx(r.Context(), w, errors.New(int(errno.Forbidden), "invalid token"))
			return
		}

		util.InjectAdmin2Ctx(r, claims.Username)
		next(w, r)
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(biz.ACCESSTOKEN); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if headerToken := r.Header.Get(biz.ACCESSTOKEN); headerToken != "" {
		return headerToken
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
