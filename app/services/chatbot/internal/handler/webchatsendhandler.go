// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"AeroBot/app/services/chatbot/internal/logic"
	"AeroBot/app/services/chatbot/internal/svc"
	"AeroBot/app/services/chatbot/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func WebchatSendHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.WebchatSendRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := logic.NewWebchatSendLogic(r.Context(), svcCtx)
		resp, err := l.WebchatSend(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
