package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/achievements"
	"github.com/itgubeeva-pixel/carecloud/internal/api"
	"github.com/itgubeeva-pixel/carecloud/internal/config"
	"github.com/itgubeeva-pixel/carecloud/internal/service"
	"github.com/itgubeeva-pixel/carecloud/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	store, err := storage.New(cfg, logger)
	if err != nil {
		logger.Fatalf("init storage: %v", err)
	}
	defer store.Close()

	svc := service.New(store, achievements.NewEvaluator(store, logger), logger)
	router := api.NewRouter(svc, logger)

	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infof("stats API listening on %s, env=%s", cfg.APIAddr, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
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
