package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/agent"
	"github.com/foodify/driver-agent/internal/config"
	"github.com/foodify/driver-agent/internal/logger"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New("info").Fatal("Failed to load config", zap.Error(err))
	}

	log := logger.New(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	a, err := agent.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to build driver agent", zap.Error(err))
	}

	log.Info("Driver agent starting", zap.String("api", cfg.API.BaseURL), zap.String("realtime", cfg.Realtime.URL))
	if err := a.Run(ctx); err != nil {
		log.Fatal("Driver agent failed", zap.Error(err))
	}
	log.Info("Driver agent gracefully stopped")
}
