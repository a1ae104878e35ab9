// Package worker keeps an external sheet in step with the engine state.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"findash/internal/amqp"
	"findash/internal/core"
	"findash/internal/log"
	"findash/internal/sheets"
)

// Engine is the part of services.FinanceService the worker needs.
type Engine interface {
	Reload(ctx context.Context) error
	Snapshot() core.Dashboard
}

// MirrorWorker reloads the engine on change events and writes the
// dashboard snapshot to a sheet. A cron schedule re-exports periodically
// in case events were lost.
type MirrorWorker struct {
	engine Engine
	writer sheets.DashboardWriter
	logger *log.Logger

	// exportMu serializes reload+write so snapshots reach the sheet in order.
	exportMu     sync.Mutex
	lastExported int64
	exports      int

	mu        sync.Mutex
	scheduler *cron.Cron
}

func NewMirrorWorker(engine Engine, writer sheets.DashboardWriter, logger *log.Logger) *MirrorWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &MirrorWorker{
		engine: engine,
		writer: writer,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleChange processes a single change message from AMQP. Returning an
// error requeues the message.
func (w *MirrorWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	w.logger.InfoContext(ctx, "Processing change message",
		log.NewFields().WithChange(msg.Collection, msg.RecordID, msg.Revision).ToSlice()...)
	return w.sync(ctx)
}

// ExportNow reloads and writes the current snapshot.
func (w *MirrorWorker) ExportNow(ctx context.Context) error {
	return w.sync(ctx)
}

func (w *MirrorWorker) sync(ctx context.Context) error {
	w.exportMu.Lock()
	defer w.exportMu.Unlock()

	if err := w.engine.Reload(ctx); err != nil {
		return fmt.Errorf("reload engine: %w", err)
	}

	start := time.Now()
	d := w.engine.Snapshot()
	if err := w.writer.WriteDashboard(ctx, d); err != nil {
		return fmt.Errorf("write dashboard: %w", err)
	}
	w.lastExported = d.Revision
	w.exports++

	w.logger.InfoContext(ctx, "Dashboard exported",
		log.FieldRevision, d.Revision,
		log.FieldDuration, time.Since(start).Milliseconds())
	return nil
}

// LastExported returns the engine revision of the last successful export.
func (w *MirrorWorker) LastExported() (revision int64, exports int) {
	w.exportMu.Lock()
	defer w.exportMu.Unlock()
	return w.lastExported, w.exports
}

// StartSchedule runs ExportNow on the cron schedule until StopSchedule is
// called. An empty schedule disables periodic exports.
func (w *MirrorWorker) StartSchedule(ctx context.Context, schedule string) error {
	if schedule == "" {
		w.logger.InfoContext(ctx, "Export schedule disabled")
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.scheduler != nil {
		return fmt.Errorf("export schedule is already running")
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { w.scheduledExport(ctx) }); err != nil {
		return fmt.Errorf("parse export schedule %q: %w", schedule, err)
	}
	c.Start()
	w.scheduler = c

	w.logger.InfoContext(ctx, "Export schedule started", "schedule", schedule)
	return nil
}

func (w *MirrorWorker) scheduledExport(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.ExportNow(ctx); err != nil {
		w.logger.ErrorContext(ctx, "Scheduled export failed", log.FieldError, err)
	}
}

// StopSchedule stops the cron scheduler and waits for a running export,
// or until ctx is done.
func (w *MirrorWorker) StopSchedule(ctx context.Context) error {
	w.mu.Lock()
	c := w.scheduler
	w.scheduler = nil
	w.mu.Unlock()
	if c == nil {
		return nil
	}

	select {
	case <-c.Stop().Done():
		w.logger.InfoContext(ctx, "Export schedule stopped")
		return nil
	case <-ctx.Done():
		w.logger.WarnContext(ctx, "Export schedule stop timed out")
		return ctx.Err()
	}
}
