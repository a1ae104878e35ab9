package services

import (
	"context"
	"time"

	"findash/internal/aggregate"
	"findash/internal/cache"
	"findash/internal/core"
	"findash/internal/log"
)

// Notifier receives a best-effort event after every applied mutation.
type Notifier interface {
	NotifyChange(ctx context.Context, change core.Change) error
}

// Option configures a FinanceService.
type Option func(*FinanceService)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *FinanceService) { s.now = now }
}

// WithFiscalYear pins the rollup year. Zero follows the clock.
func WithFiscalYear(year int) Option {
	return func(s *FinanceService) { s.year = year }
}

// WithBaseline sets the source of opening monthly figures, resolved for
// the fiscal year on every read. The default is none.
func WithBaseline(src aggregate.BaselineSource) Option {
	return func(s *FinanceService) { s.baseline = src }
}

func WithNotifier(n Notifier) Option {
	return func(s *FinanceService) { s.notifier = n }
}

func WithLogger(l *log.Logger) Option {
	return func(s *FinanceService) { s.logger = l }
}

// WithSnapshotCache memoizes Snapshot results.
func WithSnapshotCache(c cache.Cache[core.Dashboard]) Option {
	return func(s *FinanceService) { s.snapshots = c }
}

// WithSeed controls whether never-written collections receive the demo
// starter records. Enabled by default.
func WithSeed(enabled bool) Option {
	return func(s *FinanceService) { s.seed = enabled }
}
