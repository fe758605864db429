package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"AeroBot/app/services/notifier/internal/config"
	"AeroBot/app/services/notifier/internal/mq"
	"AeroBot/app/services/notifier/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"
)

var configFile = flag.String("f", "etc/notifier.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)
	ctx := svc.NewServiceContext(c)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// readers of one group split the topic partitions between them
	group, groupCtx := errgroup.WithContext(rootCtx)
	for i := 0; i < c.Workers; i++ {
		group.Go(func() error { return mq.StartEventConsumer(groupCtx, ctx) })
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logx.Errorw("notifier stopped with error", logx.Field("err", err))
		os.Exit(1)
	}

	logx.Info("notifier shutdown gracefully")
}
