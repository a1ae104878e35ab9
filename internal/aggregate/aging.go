package aggregate

import (
	"math"
	"time"

	"findash/internal/core"
)

// Aging buckets every unpaid invoice by how far past due it is at now.
// Invoices due after now, or without a due date, are Current. Days90
// collects everything more than 60 days overdue.
func Aging(invoices []core.Invoice, now time.Time) core.AgingReport {
	var r core.AgingReport
	for _, inv := range invoices {
		if inv.Status == core.InvoicePaid {
			continue
		}
		switch days := DaysOverdue(inv.DueDate, now); {
		case days < 0:
			r.Current = r.Current.Add(inv.Amount)
		case days <= 30:
			r.Days30 = r.Days30.Add(inv.Amount)
		case days <= 60:
			r.Days60 = r.Days60.Add(inv.Amount)
		default:
			r.Days90 = r.Days90.Add(inv.Amount)
		}
		r.Total = r.Total.Add(inv.Amount)
	}
	return r
}

// DaysOverdue returns the whole days, rounded up, between due and now. It
// returns -1 when due is after now or unset.
func DaysOverdue(due core.Date, now time.Time) int {
	if due.IsZero() || due.After(now) {
		return -1
	}
	return int(math.Ceil(now.Sub(due.Time).Hours() / 24))
}

// Receivables sums every unpaid invoice.
func Receivables(invoices []core.Invoice) core.Money {
	var total core.Money
	for _, inv := range invoices {
		if inv.Status != core.InvoicePaid {
			total = total.Add(inv.Amount)
		}
	}
	return total
}
