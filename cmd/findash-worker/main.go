// Command findash-worker mirrors the dashboard into Google Sheets. It
// re-exports on every change event from AMQP and on a cron schedule.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"findash/internal/amqp"
	"findash/internal/cli"
	"findash/internal/config"
	"findash/internal/log"
	"findash/internal/sheets"
	gsheet "findash/internal/sheets/google"
	"findash/internal/sheets/memory"
	"findash/internal/worker"
)

const (
	shutdownTimeout   = 30 * time.Second
	cacheSweepPeriod  = 5 * time.Minute
	initialExportWait = 2 * time.Minute
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting findash-worker", log.FieldBackend, cfg.DataBackend)

	store, err := cli.InitStore(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", log.FieldError, err)
		os.Exit(1)
	}

	// The worker only reads; change events come from other processes.
	engine, err := cli.NewEngine(context.Background(), cfg, store.Store, logger, nil)
	if err != nil {
		logger.Error("Failed to open finance engine", log.FieldError, err)
		_ = store.Cleanup()
		os.Exit(1)
	}
	engine.Caches.StartCleanup(cacheSweepPeriod)

	writer, err := newWriter(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}

	mirror := worker.NewMirrorWorker(engine.Finance, writer, logger)

	var amqpClient *amqp.Client
	if cfg.AMQPEnabled() {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
	} else {
		logger.Info("AMQP disabled - relying on the export schedule only")
	}

	ctx, done := cli.GracefulShutdown(logger, shutdownTimeout, func(shutdownCtx context.Context) {
		if err := mirror.StopSchedule(shutdownCtx); err != nil {
			logger.Warn("Export schedule did not stop cleanly", log.FieldError, err)
		}
		engine.Caches.Stop()
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Warn("Failed to close AMQP client", log.FieldError, err)
			}
		}
		if err := engine.Finance.Close(); err != nil {
			logger.Warn("Failed to close store", log.FieldError, err)
		}
	})

	// Catch up on anything written while the worker was down.
	initCtx, cancel := context.WithTimeout(ctx, initialExportWait)
	if err := mirror.ExportNow(initCtx); err != nil {
		logger.Error("Startup export failed", log.FieldError, err)
	}
	cancel()

	if err := mirror.StartSchedule(ctx, cfg.ExportSchedule); err != nil {
		logger.Error("Failed to start export schedule", log.FieldError, err)
		os.Exit(1)
	}

	if amqpClient != nil {
		go consume(ctx, amqpClient, mirror, logger)
	}

	cli.WaitForShutdown(ctx, done)
}

// consume keeps the change consumer running, reconnecting after broker
// failures until ctx is done.
func consume(ctx context.Context, c *amqp.Client, mirror *worker.MirrorWorker, logger *log.Logger) {
	for {
		err := c.ConsumeChanges(ctx, mirror.HandleChange)
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Change consumption failed", log.FieldError, err)
		if err := c.Reconnect(ctx); err != nil {
			return
		}
	}
}

// newWriter returns the Sheets client, or an in-memory writer when no
// spreadsheet is configured so the worker can still run locally.
func newWriter(cfg *config.Config, logger *log.Logger) (sheets.DashboardWriter, error) {
	if !cfg.SheetsEnabled() {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided, exports stay in memory")
		return memory.New(), nil
	}
	client, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	return client, nil
}
