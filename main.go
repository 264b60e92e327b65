package main

import (
	"context"
	"os"
	"os/signal"

	"deprebuddy/app/api"
	"deprebuddy/app/client/gsearch"
	"deprebuddy/app/client/llm"
	"deprebuddy/app/config"
	"deprebuddy/app/service/conversation"
	"deprebuddy/app/service/session"
	"deprebuddy/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, llm.NewClient)
	do.Provide(di, gsearch.NewClient)
	do.Provide(di, session.New)
	do.Provide(di, conversation.New)
	do.Provide(di, api.New)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	group, groupCtx := errgroup.WithContext(appCtx)
	group.Go(func() error {
		return do.MustInvoke[*api.Service](di).Run(groupCtx)
	})

	log.Info("Service started")

	if err = group.Wait(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
