package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopkeep/internal/api"
	"shopkeep/internal/config"
	"shopkeep/internal/journal"
	"shopkeep/internal/sessions"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	presets, err := config.LoadPresets(cfg.PresetsFile)
	if err != nil {
		logger.Error("load presets failed", "err", err)
		os.Exit(1)
	}
	preset, err := presets.Get(cfg.Preset)
	if err != nil {
		logger.Error("preset lookup failed", "err", err)
		os.Exit(1)
	}

	j, err := journal.Open(ctx, cfg)
	if err != nil {
		logger.Error("journal open failed", "journal", cfg.Journal, "err", err)
		os.Exit(1)
	}
	defer j.Close()

	registry := sessions.NewRegistry(sessions.Options{
		Preset:    preset,
		Journal:   j,
		Logger:    logger,
		LogWindow: cfg.LogWindow,
	})

	server := api.New(logger, registry)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("shop api listening", "addr", cfg.Addr, "preset", preset.Name, "journal", cfg.Journal)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
