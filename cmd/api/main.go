package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedback-insights-go/internal/api"
	"feedback-insights-go/internal/config"
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/metrics"
	"feedback-insights-go/internal/processor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().WithError(err).Fatal("invalid configuration")
	}

	log := logger.NewWithOptions(logger.Options{
		Level:       cfg.Logging.Level,
		Environment: cfg.Logging.Environment,
	})
	log.WithField("service", "feedback-insights-go").
		WithField("llm_provider", cfg.LLM.Provider).
		WithField("llm_enabled", cfg.LLM.AIEnabled()).
		WithField("filler_policy", cfg.Analysis.FillerPolicy).
		Info("starting service")

	opts := api.Options{
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		DatasetPath:    cfg.Dataset.Path,
		DemoLimit:      cfg.Dataset.DemoLimit,
	}
	var rec metrics.Recorder = metrics.NoOp{}
	if cfg.Metrics.Enabled {
		m := metrics.New()
		rec, opts.Metrics = m, m.Handler()
	}

	proc := processor.NewFromConfig(cfg, rec, log)
	handler := api.NewHandler(proc, opts, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server terminated")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
