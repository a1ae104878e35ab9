// Package goals keeps the revenue and profit targets and measures progress
// against them.
package goals

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"findash/internal/core"
	"findash/internal/log"
	"findash/internal/storage"
)

// Tracker owns the singleton goal targets.
type Tracker struct {
	mu     sync.RWMutex
	goals  core.Goals
	store  storage.Store
	logger *log.Logger
}

// Open loads the stored targets, falling back to core.DefaultGoals when
// none are stored or the stored value is unreadable. Other load errors are
// returned.
func Open(ctx context.Context, store storage.Store, logger *log.Logger) (*Tracker, error) {
	if logger == nil {
		logger = log.Discard()
	}
	t := &Tracker{store: store, logger: logger.WithComponent(log.ComponentGoals)}

	g, _, err := storage.LoadOrDefault(ctx, store, core.KeyGoals, core.DefaultGoals())
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		t.logger.WarnContext(ctx, "Stored goals unreadable, using defaults", log.FieldError, err)
		g = core.DefaultGoals()
	case err != nil:
		t.logger.ErrorContext(ctx, "Failed to load goals", log.FieldError, err)
		return nil, fmt.Errorf("load %s: %w", core.KeyGoals, err)
	}
	if g.Validate() != nil {
		t.logger.WarnContext(ctx, "Stored goals out of range, using defaults")
		g = core.DefaultGoals()
	}
	t.goals = g
	return t, nil
}

func (t *Tracker) Get() core.Goals {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.goals
}

// Set validates and stores new targets. On a failed write the targets are
// still applied in memory and the error is returned.
func (t *Tracker) Set(ctx context.Context, g core.Goals) error {
	if err := g.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.goals = g
	if err := t.store.Save(ctx, core.KeyGoals, g); err != nil {
		t.logger.ErrorContext(ctx, "Failed to persist goals", log.FieldError, err)
		return fmt.Errorf("save %s: %w", core.KeyGoals, err)
	}
	return nil
}

// Report measures the summary against the current targets.
func (t *Tracker) Report(s core.Summary) core.GoalProgress {
	g := t.Get()
	return core.GoalProgress{
		Goals:   g,
		Revenue: Progress(g.Revenue, s.RevenueYTD),
		Profit:  Progress(g.Profit, s.NetProfit),
	}
}

// Progress returns value/target clamped to [0, 1]. A target that is zero or
// negative counts as already met.
func Progress(target, value core.Money) float64 {
	if !target.IsPositive() {
		return 1
	}
	if !value.IsPositive() {
		return 0
	}
	if value.Cents >= target.Cents {
		return 1
	}
	return float64(value.Cents) / float64(target.Cents)
}
