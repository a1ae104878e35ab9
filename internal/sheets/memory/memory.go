// Package memory is an in-process DashboardWriter used by tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"findash/internal/core"
	"findash/internal/sheets"
)

type Writer struct {
	mu     sync.Mutex
	last   core.Dashboard
	blocks []sheets.Block
	writes int
	err    error
}

var _ sheets.DashboardWriter = (*Writer)(nil)

func New() *Writer {
	return &Writer{}
}

// FailWith makes subsequent writes return err. Nil restores success.
func (w *Writer) FailWith(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
}

func (w *Writer) WriteDashboard(ctx context.Context, d core.Dashboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.last = d
	w.blocks = sheets.Blocks(d)
	w.writes++
	return nil
}

// Last returns the most recently written dashboard.
func (w *Writer) Last() (core.Dashboard, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last, w.writes > 0
}

// Blocks returns the ranges rendered by the last write.
func (w *Writer) Blocks() []sheets.Block {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]sheets.Block(nil), w.blocks...)
}

func (w *Writer) Writes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes
}
