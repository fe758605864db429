package mq

import (
	"AeroBot/app/services/chatbot/internal/channel"
	"AeroBot/app/services/chatbot/internal/svc"

	"github.com/hibiken/asynq"
)

func NewAsynqMux(sc *svc.ServiceContext) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(channel.TaskDeliver, sc.Outbox.ProcessTask)
	return mux
}
