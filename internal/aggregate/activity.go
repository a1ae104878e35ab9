package aggregate

import (
	"fmt"
	"sort"

	"findash/internal/core"
)

// SalesCategory labels invoice deposits in the activity feed.
const SalesCategory = "Sales"

// Activity derives an account activity feed: paid invoices are deposits
// and paid expenses are withdrawals, newest first.
func Activity(invoices []core.Invoice, expenses []core.Expense) []core.Transaction {
	out := make([]core.Transaction, 0, len(invoices)+len(expenses))
	for _, inv := range invoices {
		if inv.Status != core.InvoicePaid {
			continue
		}
		out = append(out, core.Transaction{
			ID:          inv.ID,
			Date:        inv.Date,
			Description: fmt.Sprintf("Invoice #%s - %s", shortID(inv.ID), inv.Client),
			Category:    SalesCategory,
			Amount:      inv.Amount,
			Direction:   core.Credit,
		})
	}
	for _, exp := range expenses {
		if exp.Status != core.ExpensePaid {
			continue
		}
		out = append(out, core.Transaction{
			ID:          exp.ID,
			Date:        exp.Date,
			Description: exp.Vendor,
			Category:    NormalizeCategory(exp.Category),
			Amount:      exp.Amount,
			Direction:   core.Debit,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

func shortID(id string) string {
	if len(id) > 4 {
		return id[:4]
	}
	return id
}
