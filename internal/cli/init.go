// Package cli provides common initialization shared by cmd/findash and
// cmd/findash-worker.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"findash/internal/aggregate"
	"findash/internal/backend"
	"findash/internal/cache"
	"findash/internal/config"
	"findash/internal/core"
	"findash/internal/log"
	"findash/internal/services"
	"findash/internal/storage"
)

// snapshotCacheSize bounds memoized dashboards; one per revision/day pair.
const snapshotCacheSize = 16

// SetupLogger initializes structured logging at the given LOG_LEVEL and
// sets it as the default logger.
func SetupLogger(level string) *log.Logger {
	lvl := log.ParseLevel(level)
	logger := log.New(log.Config{
		Level:     lvl,
		Component: log.ComponentApp,
		Handler:   slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the configured persistent store.
func InitStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (*backend.StoreResult, error) {
	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	return backend.NewFactory(logger).CreateStore(ctx, bc)
}

// Engine bundles the finance service with the cache manager sweeping its
// snapshot cache.
type Engine struct {
	Finance *services.FinanceService
	Caches  *cache.Manager
}

// NewEngine builds a FinanceService over store according to cfg. notifier
// may be nil.
func NewEngine(ctx context.Context, cfg *config.Config, store storage.Store, logger *log.Logger, notifier services.Notifier) (*Engine, error) {
	opts := []services.Option{
		services.WithLogger(logger),
		services.WithFiscalYear(cfg.FiscalYear),
		services.WithSeed(cfg.SeedDemo),
	}

	if cfg.RollupBaseline == config.BaselineDemo {
		opts = append(opts, services.WithBaseline(aggregate.DemoBaseline))
	}
	if notifier != nil {
		opts = append(opts, services.WithNotifier(notifier))
	}

	caches := cache.NewManager(logger)
	if cfg.SnapshotCacheTTL > 0 {
		snapshots := cache.NewLRUCache[core.Dashboard](snapshotCacheSize, cfg.SnapshotCacheTTL)
		caches.Register(snapshots)
		opts = append(opts, services.WithSnapshotCache(snapshots))
	}

	svc, err := services.NewFinanceService(ctx, store, opts...)
	if err != nil {
		return nil, fmt.Errorf("open finance engine: %w", err)
	}
	return &Engine{Finance: svc, Caches: caches}, nil
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when shutdown is complete.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func(ctx context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		cancel()

		finished := make(chan struct{})
		go func() {
			if cleanup != nil {
				cleanup(shutdownCtx)
			}
			close(finished)
		}()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown timeout reached")
		case <-finished:
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled and cleanup ran.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
