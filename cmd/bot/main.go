package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/achievements"
	"github.com/itgubeeva-pixel/carecloud/internal/bot"
	"github.com/itgubeeva-pixel/carecloud/internal/config"
	"github.com/itgubeeva-pixel/carecloud/internal/notify"
	"github.com/itgubeeva-pixel/carecloud/internal/reminder"
	"github.com/itgubeeva-pixel/carecloud/internal/service"
	"github.com/itgubeeva-pixel/carecloud/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	if cfg.BotToken == "" {
		logger.Fatalf("BOT_TOKEN is required")
	}

	store, err := storage.New(cfg, logger)
	if err != nil {
		logger.Fatalf("init storage: %v", err)
	}
	defer store.Close()

	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatalf("init telegram bot: %v", err)
	}

	channel := notify.NewTelegramChannel(tb, logger)
	scheduler := reminder.NewScheduler(store, channel, logger)
	svc := service.New(store, achievements.NewEvaluator(store, logger), logger)

	if err := scheduler.Restore(context.Background()); err != nil {
		logger.Errorf("restore reminders: %v", err)
	}

	b := bot.New(tb, svc, scheduler, channel, logger)

	go func() {
		logger.Infof("bot started, env=%s backend=%s", cfg.Env, cfg.StorageBackend)
		b.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	scheduler.Shutdown()
	b.Stop()
}

func newLogger(cfg *config.Config) internal.Logger {
	var z *zap.Logger
	var err error
	if cfg.Env == "production" {
		z, err = zap.NewProduction()
	} else {
		z, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("init logger: " + err.Error())
	}
	return internal.NewZapLogger(z.Sugar())
}
