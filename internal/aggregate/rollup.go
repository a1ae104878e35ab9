// Package aggregate derives the dashboard views from raw records. Every
// function is pure; callers pass the clock in.
package aggregate

import (
	"time"

	"findash/internal/core"
)

// Fallback constants used when no cash account carries a positive total.
var (
	FallbackCashBase   = core.NewMoney(85000)
	FallbackProfitBase = core.NewMoney(320000)
)

// Figures are the opening revenue and expenses of one month.
type Figures struct {
	Revenue  core.Money
	Expenses core.Money
}

// Baseline maps periods to opening figures. A nil Baseline starts every
// month at zero.
type Baseline map[core.Period]Figures

// BaselineSource returns the baseline of a fiscal year. DemoBaseline is one.
type BaselineSource func(year int) Baseline

var demoFigures = [12][2]int64{
	{95000, 70000}, {105000, 72000}, {100000, 75000}, {120000, 80000},
	{125000, 82000}, {140000, 90000}, {135000, 88000}, {150000, 95000},
	{145000, 92000}, {160000, 98000}, {170000, 105000}, {180000, 110000},
}

// DemoBaseline returns the demo opening figures placed in year.
func DemoBaseline(year int) Baseline {
	b := make(Baseline, 12)
	for i, f := range demoFigures {
		p := core.Period{Year: year, Month: time.Month(i + 1)}
		b[p] = Figures{Revenue: core.NewMoney(f[0]), Expenses: core.NewMoney(f[1])}
	}
	return b
}

// Monthly builds the twelve buckets of year. Invoices add to the revenue of
// the month they were issued in and expenses to the month they were
// incurred in; records dated outside year are ignored.
func Monthly(year int, baseline Baseline, invoices []core.Invoice, expenses []core.Expense) []core.MonthlyBucket {
	buckets := make([]core.MonthlyBucket, 12)
	index := make(map[core.Period]int, 12)
	for i := range buckets {
		p := core.Period{Year: year, Month: time.Month(i + 1)}
		f := baseline[p]
		buckets[i] = core.MonthlyBucket{
			Period:   p,
			Month:    p.Label(),
			Revenue:  f.Revenue,
			Expenses: f.Expenses,
		}
		index[p] = i
	}

	for _, inv := range invoices {
		if i, ok := index[core.PeriodOf(inv.Date)]; ok {
			buckets[i].Revenue = buckets[i].Revenue.Add(inv.Amount)
		}
	}
	for _, exp := range expenses {
		if i, ok := index[core.PeriodOf(exp.Date)]; ok {
			buckets[i].Expenses = buckets[i].Expenses.Add(exp.Amount)
		}
	}

	for i := range buckets {
		buckets[i].Recompute()
	}
	return buckets
}

// Summarize folds the monthly series and the accounts into the YTD summary.
func Summarize(buckets []core.MonthlyBucket, accounts []core.Account) core.Summary {
	var s core.Summary
	for _, b := range buckets {
		s.RevenueYTD = s.RevenueYTD.Add(b.Revenue)
		s.ExpensesYTD = s.ExpensesYTD.Add(b.Expenses)
	}
	s.NetProfit = s.RevenueYTD.Sub(s.ExpensesYTD)
	s.CashOnHand = CashOnHand(accounts, s.NetProfit)
	return s
}

// CashOnHand sums Checking and Savings balances. When that sum is not
// positive it returns FallbackCashBase + (netProfit - FallbackProfitBase).
func CashOnHand(accounts []core.Account, netProfit core.Money) core.Money {
	var cash core.Money
	for _, a := range accounts {
		if a.Type.IsCash() {
			cash = cash.Add(a.Balance)
		}
	}
	if cash.IsPositive() {
		return cash
	}
	return FallbackCashBase.Add(netProfit.Sub(FallbackProfitBase))
}
