// Package services holds the finance engine: it owns the record
// collections and the goal targets and derives every dashboard view from
// them on read.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"findash/internal/aggregate"
	"findash/internal/cache"
	"findash/internal/core"
	"findash/internal/goals"
	"findash/internal/log"
	"findash/internal/records"
	"findash/internal/storage"
)

// FinanceService is the engine. Reads issued after a write returns observe
// that write. It is safe for concurrent use.
type FinanceService struct {
	mu sync.RWMutex

	store    storage.Store
	now      func() time.Time
	year     int
	baseline aggregate.BaselineSource
	seed     bool

	invoices *records.Collection[core.Invoice]
	expenses *records.Collection[core.Expense]
	vendors  *records.Collection[core.Vendor]
	accounts *records.Collection[core.Account]
	goals    *goals.Tracker
	revision int64

	notifier  Notifier
	snapshots cache.Cache[core.Dashboard]
	logger    *log.Logger
}

// NewFinanceService loads every collection from store. Corrupt values fall
// back to defaults; read failures and context cancellation are returned.
func NewFinanceService(ctx context.Context, store storage.Store, opts ...Option) (*FinanceService, error) {
	s := &FinanceService{
		store: store,
		now:   time.Now,
		seed:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Discard()
	}
	s.logger = s.logger.WithComponent(log.ComponentFinance)

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Finance engine ready",
		log.FieldYear, s.fiscalYear(),
		"invoices", s.invoices.Len(),
		"expenses", s.expenses.Len(),
		"vendors", s.vendors.Len(),
		"accounts", s.accounts.Len())
	return s, nil
}

func (s *FinanceService) load(ctx context.Context) error {
	now := s.now()
	invOpts := records.Invoices(nil)
	expOpts := records.Expenses(nil)
	venOpts := records.Vendors(nil)
	accOpts := records.Accounts(nil)
	if s.seed {
		// A baseline already carries the opening figures; seeded invoices
		// and expenses would be counted on top of it.
		if s.baseline == nil {
			invOpts.Seed = seedInvoices(now)
			expOpts.Seed = seedExpenses(now)
		}
		venOpts.Seed = seedVendors
		accOpts.Seed = seedAccounts(now)
	}

	var (
		invoices *records.Collection[core.Invoice]
		expenses *records.Collection[core.Expense]
		vendors  *records.Collection[core.Vendor]
		accounts *records.Collection[core.Account]
		tracker  *goals.Tracker
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		invoices, err = records.Open(gctx, s.store, invOpts, s.logger)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = records.Open(gctx, s.store, expOpts, s.logger)
		return err
	})
	g.Go(func() (err error) {
		vendors, err = records.Open(gctx, s.store, venOpts, s.logger)
		return err
	})
	g.Go(func() (err error) {
		accounts, err = records.Open(gctx, s.store, accOpts, s.logger)
		return err
	})
	g.Go(func() (err error) {
		tracker, err = goals.Open(gctx, s.store, s.logger)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load collections: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices, s.expenses, s.vendors, s.accounts, s.goals = invoices, expenses, vendors, accounts, tracker
	s.revision++
	if s.snapshots != nil {
		s.snapshots.Clear()
	}
	return nil
}

// Reload re-reads every collection from the store. Used by processes that
// observe writes made elsewhere.
func (s *FinanceService) Reload(ctx context.Context) error {
	if err := s.load(ctx); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Collections reloaded", log.FieldRevision, s.Revision())
	return nil
}

func (s *FinanceService) fiscalYear() int {
	if s.year != 0 {
		return s.year
	}
	return s.now().Year()
}

func (s *FinanceService) baselineFor(year int) aggregate.Baseline {
	if s.baseline == nil {
		return nil
	}
	return s.baseline(year)
}

// Revision increases with every applied mutation and reload.
func (s *FinanceService) Revision() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Write interface

func (s *FinanceService) AddInvoice(ctx context.Context, d core.InvoiceDraft) (core.Invoice, error) {
	if err := d.Validate(); err != nil {
		return core.Invoice{}, err
	}
	date := d.Date
	if date.IsZero() {
		date = core.DateOf(s.now())
	}
	if !d.DueDate.IsZero() && d.DueDate.Before(date.Time) {
		return core.Invoice{}, &core.ValidationError{Field: "dueDate", Err: core.ErrInvalidDate}
	}
	amount, err := d.Total()
	if err != nil {
		return core.Invoice{}, err
	}
	var items []core.LineItem
	if len(d.Items) > 0 {
		items = make([]core.LineItem, len(d.Items))
		for i, it := range d.Items {
			it.Description = strings.TrimSpace(it.Description)
			items[i] = it
		}
	}

	s.mu.Lock()
	inv, err := s.invoices.Add(ctx, func(id string) core.Invoice {
		return core.Invoice{
			ID:      id,
			Client:  strings.TrimSpace(d.Client),
			Amount:  amount,
			Date:    date,
			DueDate: d.DueDate,
			Status:  core.InvoicePending,
			Items:   items,
		}
	})
	change := s.appliedLocked(core.KeyInvoices, inv.ID)
	s.mu.Unlock()

	s.notify(ctx, change)
	return inv, err
}

func (s *FinanceService) AddExpense(ctx context.Context, d core.ExpenseDraft) (core.Expense, error) {
	if err := d.Validate(); err != nil {
		return core.Expense{}, err
	}
	date := d.Date
	if date.IsZero() {
		date = core.DateOf(s.now())
	}

	s.mu.Lock()
	exp, err := s.expenses.Add(ctx, func(id string) core.Expense {
		return core.Expense{
			ID:       id,
			Vendor:   strings.TrimSpace(d.Vendor),
			Amount:   d.Amount,
			Date:     date,
			Category: strings.TrimSpace(d.Category),
			Status:   core.ExpensePaid,
		}
	})
	change := s.appliedLocked(core.KeyExpenses, exp.ID)
	s.mu.Unlock()

	s.notify(ctx, change)
	return exp, err
}

func (s *FinanceService) AddVendor(ctx context.Context, d core.VendorDraft) (core.Vendor, error) {
	if err := d.Validate(); err != nil {
		return core.Vendor{}, err
	}

	s.mu.Lock()
	v, err := s.vendors.Add(ctx, func(id string) core.Vendor {
		return core.Vendor{
			ID:       id,
			Name:     strings.TrimSpace(d.Name),
			Email:    strings.TrimSpace(d.Email),
			Phone:    strings.TrimSpace(d.Phone),
			Category: strings.TrimSpace(d.Category),
		}
	})
	change := s.appliedLocked(core.KeyVendors, v.ID)
	s.mu.Unlock()

	s.notify(ctx, change)
	return v, err
}

func (s *FinanceService) AddAccount(ctx context.Context, d core.AccountDraft) (core.Account, error) {
	if err := d.Validate(); err != nil {
		return core.Account{}, err
	}
	ts := s.now().UTC()

	s.mu.Lock()
	a, err := s.accounts.Add(ctx, func(id string) core.Account {
		return core.Account{
			ID:          id,
			Name:        strings.TrimSpace(d.Name),
			Institution: strings.TrimSpace(d.Institution),
			Type:        d.Type,
			Balance:     d.Balance,
			LastUpdated: ts,
		}
	})
	change := s.appliedLocked(core.KeyAccounts, a.ID)
	s.mu.Unlock()

	s.notify(ctx, change)
	return a, err
}

// UpdateGoals replaces the targets.
func (s *FinanceService) UpdateGoals(ctx context.Context, g core.Goals) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	err := s.goals.Set(ctx, g)
	change := s.appliedLocked(core.KeyGoals, "")
	s.mu.Unlock()

	s.notify(ctx, change)
	return err
}

func (s *FinanceService) appliedLocked(collection, id string) core.Change {
	s.revision++
	return core.Change{Collection: collection, RecordID: id, Revision: s.revision}
}

func (s *FinanceService) notify(ctx context.Context, c core.Change) {
	fields := log.NewFields().WithChange(c.Collection, c.RecordID, c.Revision)
	if s.notifier == nil {
		s.logger.DebugContext(ctx, "No notifier configured, skipping change event", fields.ToSlice()...)
		return
	}
	if err := s.notifier.NotifyChange(ctx, c); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish change event", fields.WithError(err).ToSlice()...)
	}
}

// Read interface

func (s *FinanceService) Invoices() []core.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.invoices.All()
}

func (s *FinanceService) Expenses() []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expenses.All()
}

func (s *FinanceService) Vendors() []core.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vendors.All()
}

func (s *FinanceService) Accounts() []core.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.All()
}

// Account finds an account by id. A missing id reports false.
func (s *FinanceService) Account(id string) (core.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.Find(id)
}

func (s *FinanceService) Goals() core.Goals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.goals.Get()
}

func (s *FinanceService) MonthlyData() []core.MonthlyBucket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.monthlyLocked()
}

func (s *FinanceService) Summary() core.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aggregate.Summarize(s.monthlyLocked(), s.accounts.All())
}

func (s *FinanceService) Aging() core.AgingReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aggregate.Aging(s.invoices.All(), s.now())
}

func (s *FinanceService) BalanceSheet() core.BalanceSheet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := s.accounts.All()
	summary := aggregate.Summarize(s.monthlyLocked(), accounts)
	return aggregate.Balance(summary, s.invoices.All(), accounts)
}

func (s *FinanceService) GoalProgress() core.GoalProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.goals.Report(aggregate.Summarize(s.monthlyLocked(), s.accounts.All()))
}

func (s *FinanceService) ProfitLoss() core.ProfitLoss {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aggregate.ProfitLoss(aggregate.Summarize(s.monthlyLocked(), s.accounts.All()))
}

func (s *FinanceService) CashFlow() core.CashFlowStatement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary := aggregate.Summarize(s.monthlyLocked(), s.accounts.All())
	return aggregate.CashFlow(summary)
}

// ExpenseCategories totals fiscal-year expenses by category.
func (s *FinanceService) ExpenseCategories() []core.CategoryTotal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aggregate.ExpensesByCategory(s.fiscalYear(), s.expenses.All())
}

// Activity is the derived deposit and withdrawal feed, newest first.
func (s *FinanceService) Activity() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aggregate.Activity(s.invoices.All(), s.expenses.All())
}

func (s *FinanceService) Insights() []core.Insight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	buckets := s.monthlyLocked()
	summary := aggregate.Summarize(buckets, s.accounts.All())
	return aggregate.Insights(summary, buckets, s.expenses.All(), core.PeriodOf(core.DateOf(s.now())))
}

// Snapshot computes every derived view at a single revision.
func (s *FinanceService) Snapshot() core.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	key := fmt.Sprintf("%d@%s", s.revision, core.DateOf(now))
	if s.snapshots != nil {
		if d, ok := s.snapshots.Get(key); ok {
			return d
		}
	}

	year := s.fiscalYear()
	invoices := s.invoices.All()
	expenses := s.expenses.All()
	buckets := aggregate.Monthly(year, s.baselineFor(year), invoices, expenses)
	summary := aggregate.Summarize(buckets, s.accounts.All())
	pl := aggregate.ProfitLoss(summary)
	d := core.Dashboard{
		Revision:     s.revision,
		AsOf:         now.UTC(),
		Summary:      summary,
		Monthly:      buckets,
		Aging:        aggregate.Aging(invoices, now),
		BalanceSheet: aggregate.Balance(summary, invoices, s.accounts.All()),
		ProfitLoss:   pl,
		CashFlow:     aggregate.CashFlow(summary),
		Categories:   aggregate.ExpensesByCategory(year, expenses),
		Progress:     s.goals.Report(summary),
		Insights:     aggregate.Insights(summary, buckets, expenses, core.PeriodOf(core.DateOf(now))),
	}
	if s.snapshots != nil {
		s.snapshots.Set(key, d)
	}
	return d
}

func (s *FinanceService) monthlyLocked() []core.MonthlyBucket {
	year := s.fiscalYear()
	return aggregate.Monthly(year, s.baselineFor(year), s.invoices.All(), s.expenses.All())
}

// Close releases the underlying store.
func (s *FinanceService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
