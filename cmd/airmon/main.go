package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/airlens/airmon/internal/app"
	"github.com/airlens/airmon/internal/config"
	"github.com/airlens/airmon/internal/logging"
	"github.com/airlens/airmon/internal/telemetry"
)

func main() {
	// load config
	cfg := config.Load()

	// Setup Structured Logging
	logger, err := logging.New(cfg.Debug)
	if err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize Tracing
	shutdownTracer, err := telemetry.InitTracer()
	if err != nil {
		logger.Error("failed to init tracer", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				logger.Error("failed to shutdown tracer", zap.Error(err))
			}
		}()
	}

	// Initialize Application
	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		os.Exit(1)
	}

	// Root Context with cancellation on Interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("airmon starting")

	if err := application.Run(ctx); err != nil {
		logger.Error("application error", zap.Error(err))
		cancel()
		os.Exit(1)
	}
}
