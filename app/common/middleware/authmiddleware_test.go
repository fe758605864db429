package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"AeroBot/app/common/consts/biz"
	"AeroBot/app/common/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	m := NewAuthMiddleware("secret")
	var seen string
	next := func(w http.ResponseWriter, r *http.Request) {
		seen, _ = util.AdminFromCtx(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.Handle(next)(rec, httptest.NewRequest(http.MethodGet, "/admin/lead", nil))
		assert.NotEqual(t, http.StatusNoContent, rec.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/lead", nil)
		req.Header.Set(biz.ACCESSTOKEN, "garbage")
		rec := httptest.NewRecorder()
		m.Handle(next)(rec, req)
		assert.NotEqual(t, http.StatusNoContent, rec.Code)
	})

	t.Run("bearer token", func(t *testing.T) {
		token, _, err := util.SignToken("secret", time.Minute, "ops")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin/lead", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		m.Handle(next)(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "ops", seen)
	})

	t.Run("cookie token", func(t *testing.T) {
		seen = ""
		token, _, err := util.SignToken("secret", time.Minute, "ops")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin/lead", nil)
		req.AddCookie(&http.Cookie{Name: biz.ACCESSTOKEN, Value: token})
		rec := httptest.NewRecorder()
		m.Handle(next)(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "ops", seen)
	})
}
