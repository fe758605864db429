package main

import (
	"flag"
	"fmt"

	"AeroBot/app/common/response"
	"AeroBot/app/services/chatbot/internal/bootstrap"
	"AeroBot/app/services/chatbot/internal/config"
	"AeroBot/app/services/chatbot/internal/handler"
	"AeroBot/app/services/chatbot/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

var configFile = flag.String("f", "etc/chatbot.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(c)
	defer ctx.Close()

	httpx.SetErrorHandlerCtx(response.ErrorHandler)
	handler.RegisterHandlers(server, ctx)

	stopAsynq := bootstrap.StartAsynq(ctx)
	defer stopAsynq()
	bootstrap.StartTelegram(ctx)

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}
