// Package main runs the Asista core: the record store, the alarm
// scheduler and the localhost REST/WebSocket surface the UI shell
// talks to.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oguzkagan/asista/backend/internal/alarm"
	"github.com/oguzkagan/asista/backend/internal/config"
	"github.com/oguzkagan/asista/backend/internal/httpapi"
	"github.com/oguzkagan/asista/backend/internal/kvstore"
	"github.com/oguzkagan/asista/backend/internal/logging"
	"github.com/oguzkagan/asista/backend/internal/notes"
	"github.com/oguzkagan/asista/backend/internal/settings"
)

// Version is set at build time.
var Version = "0.1.0"

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Init(os.Stdout, "info")
		logging.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	logging.Init(os.Stdout, cfg.LogLevel)
	logging.Info().Str("version", Version).Str("data_dir", cfg.DataDir).Msg("asista core starting")

	kv, err := kvstore.Open(cfg.DataDir)
	if err != nil {
		logging.Error().Err(err).Msg("failed to open record store")
		os.Exit(1)
	}
	defer kv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settingsSvc := settings.NewService(kv)

	hub := httpapi.NewHub()
	go hub.Run(ctx)

	alarmStore := alarm.NewStore(kv, nil)
	scheduler := alarm.NewScheduler(alarmStore, hub, &alarm.SchedulerConfig{
		TickInterval: cfg.TickInterval,
		Language:     settingsSvc.Language,
	})
	scheduler.Start(ctx)

	noteStore := notes.NewStore(kv, nil)
	noteStore.Load()

	server := httpapi.NewServer(alarmStore, noteStore, settingsSvc, hub)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Routes(),
	}

	go func() {
		logging.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error().Err(err).Msg("http server failed")
			cancel()
		}
	}()

	// Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-ctx.Done():
	}

	// Stop the match loop before tearing down the surface it notifies
	scheduler.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Warn().Err(err).Msg("http shutdown incomplete")
	}

	logging.Info().Msg("asista core stopped")
}
