package util

import (
	"net/http"
	"time"

	"AeroBot/app/common/consts/biz"
)

// 封装 setcookie
func SetTokenCookie(w http.ResponseWriter, accessToken string, accessExpiresIn int64) {
	if accessToken == "" {
		return
	}
	ttl := biz.TokenExpire
	if accessExpiresIn > 0 {
		ttl = time.Duration(accessExpiresIn) * time.Second
	}
	http.SetCookie(w, &http.Cookie{
		Name:     biz.ACCESSTOKEN,
		Value:    accessToken,
		Path:     "/admin",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
	})
}
