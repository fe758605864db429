package handler

import (
	"io"
	"net/http"

	"AeroBot/app/common/response"
	"AeroBot/app/services/chatbot/internal/logic"
	"AeroBot/app/services/chatbot/internal/svc"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

const maxWebhookBody = 1 << 20

// MetaVerifyHandler reads the hub.* parameters straight from the query: the
// dotted names do not fit form tags.
func MetaVerifyHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		l := logic.NewMetaVerifyLogic(r.Context(), svcCtx)
		challenge, err := l.MetaVerify(q.Get("hub.mode"), q.Get("hub.verify_token"), q.Get("hub.challenge"))
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, challenge)
	}
}

func MetaWebhookHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			logx.WithContext(r.Context()).Errorw("read meta webhook failed", logx.Field("err", err.Error()))
		} else {
			logic.NewMetaWebhookLogic(r.Context(), svcCtx).MetaWebhook(body)
		}
		httpx.OkJsonCtx(r.Context(), w, response.OK(""))
	}
}
