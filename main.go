package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mooncalendar/config"
	"mooncalendar/logger"
	"mooncalendar/telegram"
)

func main() {
	// Load the configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal(err)
	}
	logger.Init(cfg)

	a, err := newApp(cfg, os.Stdout)
	if err != nil {
		logger.Log.Fatal(err)
	}

	if cfg.TelegramEnabled() {
		publisher, err := telegram.NewPublisher(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logger.Log.Fatal(err)
		}
		a.publisher = publisher
	}

	// Print the report for the requested month, or the current one
	if err := a.report(time.Now()); err != nil {
		logger.Log.Fatal(err)
	}

	if a.publisher == nil || cfg.CronExpression == "" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.serve(ctx); err != nil {
		logger.Log.Fatal(err)
	}
}
