package handler

import (
	"net/http"

	"AeroBot/app/common/response"
	"AeroBot/app/services/chatbot/internal/svc"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func HealthHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.OkJsonCtx(r.Context(), w, response.OK("Chatbot Aerocámaras (CLP) activo"))
	}
}
