package handler

import (
	"net/http"

	"AeroBot/app/services/chatbot/internal/channel/telegram"
	"AeroBot/app/services/chatbot/internal/logic"
	"AeroBot/app/services/chatbot/internal/svc"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

type telegramAck struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func TelegramWebhookHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !telegram.SecretMatches(r, svcCtx.Config.Telegram.SecretToken) {
			httpx.WriteJsonCtx(r.Context(), w, http.StatusForbidden, telegramAck{Error: "invalid secret token"})
			return
		}
		if !svcCtx.Telegram.Enabled() {
			httpx.OkJsonCtx(r.Context(), w, telegramAck{Ok: true})
			return
		}

		update, err := telegram.ParseUpdate(r)
		if err != nil {
			logx.WithContext(r.Context()).Errorw("decode telegram update failed", logx.Field("err", err.Error()))
		} else if in, ok := telegram.FromUpdate(update); ok {
			logic.NewTelegramUpdateLogic(r.Context(), svcCtx).TelegramUpdate(in)
		}
		httpx.OkJsonCtx(r.Context(), w, telegramAck{Ok: true})
	}
}

func StartPollingHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewTelegramPollingLogic(r.Context(), svcCtx)
		resp, err := l.StartPolling()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func DeleteWebhookHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewTelegramPollingLogic(r.Context(), svcCtx)
		resp, err := l.DeleteWebhook()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
