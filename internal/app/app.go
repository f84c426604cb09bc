// Package app wires the collector's components together. It acts as
// the Facade for the entire system, orchestrating services and
// infrastructure.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/airlens/airmon/internal/adapters/controller"
	"github.com/airlens/airmon/internal/adapters/influx"
	"github.com/airlens/airmon/internal/adapters/reporting"
	"github.com/airlens/airmon/internal/adapters/storage"
	"github.com/airlens/airmon/internal/adapters/web"
	"github.com/airlens/airmon/internal/config"
	"github.com/airlens/airmon/internal/core/services/aggregate"
	"github.com/airlens/airmon/internal/core/services/causes"
	"github.com/airlens/airmon/internal/core/services/collect"
	"github.com/airlens/airmon/internal/telemetry"
)

// Application holds the core components of the collector.
type Application struct {
	Config    *config.Config
	Logger    *zap.Logger
	Collector *collect.Collector
	Writer    *influx.Writer
	Store     *storage.SQLiteStore
	WebServer *web.Server
	Exporter  *reporting.PDFExporter

	controller *controller.SmartZoneClient
	scheduler  *cron.Cron
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	app := &Application{
		Config: cfg,
		Logger: logger,
	}
	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}
	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	telemetry.InitMetrics()
	cfg := app.Config

	app.controller = controller.NewSmartZoneClient(controller.Options{
		BaseURL:         cfg.ControllerURL,
		Username:        cfg.ControllerUser,
		Password:        cfg.ControllerPassword,
		QueryAPIVersion: cfg.QueryAPIVersion,
		LoginAPIVersion: cfg.LoginAPIVersion,
		Timeout:         cfg.ControllerTimeout,
		InsecureTLS:     cfg.InsecureTLS,
	}, app.Logger.Named("controller"))

	app.Writer = influx.NewWriter(influx.Options{
		URL:    cfg.InfluxURL,
		Org:    cfg.InfluxOrg,
		Bucket: cfg.InfluxBucket,
		Token:  cfg.InfluxToken,
	}, app.Logger.Named("influx"))

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening snapshot store %s: %w", cfg.DBPath, err)
	}
	app.Store = store

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	app.Collector = collect.NewCollector(
		app.controller,
		app.Writer,
		aggregate.NewAggregator(),
		causes.NewAssigner(rng),
		store,
		app.Logger.Named("collect"),
	)

	app.Exporter = reporting.NewPDFExporter()
	app.WebServer = web.NewServer(cfg.Addr, store, app.Exporter, app.Logger.Named("web"))
	app.Collector.AddListener(app.WebServer.Hub)

	return nil
}

// Run drives the application until ctx is cancelled. In once mode a
// single cycle runs and the process exits; in report mode the latest
// snapshot is rendered to PDF.
func (app *Application) Run(ctx context.Context) error {
	defer app.close()

	if app.Config.ReportPath != "" {
		return app.writeReport()
	}

	if err := app.controller.Ping(ctx); err != nil {
		return fmt.Errorf("controller unreachable: %w", err)
	}
	app.Logger.Info("controller connection verified", zap.String("url", app.Config.ControllerURL))

	if err := app.Writer.Health(ctx); err != nil {
		// The store may come up after us; cycles will log failures.
		app.Logger.Warn("time-series store not healthy at startup", zap.Error(err))
	}

	if app.Config.Once {
		return app.Collector.RunCycle(ctx)
	}

	app.WebServer.Start()

	// First cycle immediately, then on the interval. Slow cycles skip
	// their next slot instead of overlapping.
	if err := app.Collector.RunCycle(ctx); err != nil {
		app.Logger.Error("collection cycle failed", zap.Error(err))
	}

	app.scheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	schedule := fmt.Sprintf("@every %s", app.Config.Interval)
	if _, err := app.scheduler.AddFunc(schedule, func() {
		if err := app.Collector.RunCycle(ctx); err != nil {
			app.Logger.Error("collection cycle failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("scheduling collection: %w", err)
	}
	app.scheduler.Start()
	app.Logger.Info("collector scheduled", zap.Duration("interval", app.Config.Interval))

	<-ctx.Done()

	stopCtx := app.scheduler.Stop()
	<-stopCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.WebServer.Shutdown(shutdownCtx); err != nil {
		app.Logger.Warn("status server shutdown", zap.Error(err))
	}
	return nil
}

// writeReport renders the latest snapshot to the configured path.
func (app *Application) writeReport() error {
	snap, found, err := app.Store.LatestCycle()
	if err != nil {
		return fmt.Errorf("loading latest cycle: %w", err)
	}
	if !found {
		return fmt.Errorf("no cycle collected yet; run the collector first")
	}

	pdf, err := app.Exporter.ExportVenueReport(snap)
	if err != nil {
		return err
	}
	if err := os.WriteFile(app.Config.ReportPath, pdf, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	app.Logger.Info("report written", zap.String("path", app.Config.ReportPath))
	return nil
}

func (app *Application) close() {
	app.Writer.Close()
	if err := app.Store.Close(); err != nil {
		app.Logger.Warn("closing snapshot store", zap.Error(err))
	}
}
