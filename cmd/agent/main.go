package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/TemirB/order-print-agent/internal/cache"
	"github.com/TemirB/order-print-agent/internal/config"
	"github.com/TemirB/order-print-agent/internal/domain"
	"github.com/TemirB/order-print-agent/internal/engine"
	"github.com/TemirB/order-print-agent/internal/events"
	"github.com/TemirB/order-print-agent/internal/httpapi"
	"github.com/TemirB/order-print-agent/internal/ledger"
	"github.com/TemirB/order-print-agent/internal/observability"
	"github.com/TemirB/order-print-agent/internal/printer"
	"github.com/TemirB/order-print-agent/internal/source"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewInmem(1000)

	pool := ledger.Connect(ctx, cfg.DSN())
	defer pool.Close()

	repo := ledger.New(pool, cfg.Tables)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal("schema init failed", zap.Error(err))
	}

	src := source.NewClient(cfg.Src, logger)
	bridge := printer.NewBridge(cfg.Printer, logger)

	details, err := cache.New(cfg.DetailCacheCap, src, metrics)
	if err != nil {
		logger.Fatal("detail cache init failed", zap.Error(err))
	}

	bus := engine.NewBus(logger)

	if cfg.Kafka.Topic != "" {
		sink := events.NewSink(cfg.Kafka.Brokers, cfg.Kafka.Topic, bus, logger)
		sink.Run(ctx)
		defer func() { _ = sink.Close() }()
		logger.Info("kafka event sink enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	eng := engine.New(src, repo, bridge, bus, logger, metrics, engine.Options{
		Status:          cfg.Src.Status,
		PollInterval:    cfg.Poll.Interval,
		PollWindow:      cfg.Poll.Window,
		DispatchDelay:   cfg.Dispatch.Delay,
		DispatchTimeout: cfg.Dispatch.Timeout,
		Dispatch: domain.DispatchOptions{
			Silent:     true,
			Background: true,
			DeviceName: cfg.Printer.DeviceName,
		},
	})
	if err := eng.Start(ctx); err != nil {
		logger.Fatal("engine start failed", zap.Error(err))
	}
	defer eng.Stop()

	api := httpapi.New(eng, details, repo, logger, metrics)
	logger.Info("control api listening", zap.String("addr", cfg.HTTPAddr))
	if err := api.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen failed", zap.Error(err))
	}
}
