package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/songzhibin97/cryptogainers/internal/app"
	"github.com/songzhibin97/cryptogainers/internal/chart"
	"github.com/songzhibin97/cryptogainers/internal/configs"
	"github.com/songzhibin97/cryptogainers/internal/console"
	"github.com/songzhibin97/cryptogainers/internal/data/collector"
	"github.com/songzhibin97/cryptogainers/internal/report"
)

var log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

func newLogger(cfg configs.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	os.Exit(run())
}

func run() int {
	// 加载配置, 可选 yaml 由 GAINERS_CONFIG 指定
	config, err := configs.Load()
	if err != nil {
		log.Error("Error loading config", "err", err)
		return 1
	}

	runID := uuid.New()
	log = newLogger(config.Log).With("run_id", runID.String())
	log.Debug("Loaded config", "config", config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化各个组件
	source, err := app.NewDataSource(config.Source, log)
	if err != nil {
		log.Error("Error creating data source", "err", err)
		return 1
	}
	log.Debug("init source", "source", source.Name())

	store, closeStore, err := app.NewStorage(config.Store, runID)
	if err != nil {
		log.Error("Error creating storage", "err", err)
		return 1
	}
	defer closeStore()
	log.Debug("init storage", "backend", config.Store.Backend)

	pipeline := app.NewPipeline(
		config.PageSize,
		config.TopN,
		collector.NewCollector(source, log),
		report.NewWriter(store, log),
		chart.NewRenderer(store, log, config.TopN),
		console.NewPrinter(os.Stdout),
		log,
	)

	if err := pipeline.Run(ctx); err != nil {
		log.Error("Error saving report", "err", err)
		return 1
	}
	return 0
}
