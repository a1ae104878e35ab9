package records

import "findash/internal/core"

// Typed option sets for the four record collections.

func Invoices(seed func() []core.Invoice) Options[core.Invoice] {
	return Options[core.Invoice]{Key: core.KeyInvoices, IDOf: func(r core.Invoice) string { return r.ID }, Seed: seed}
}

func Expenses(seed func() []core.Expense) Options[core.Expense] {
	return Options[core.Expense]{Key: core.KeyExpenses, IDOf: func(r core.Expense) string { return r.ID }, Seed: seed}
}

func Vendors(seed func() []core.Vendor) Options[core.Vendor] {
	return Options[core.Vendor]{Key: core.KeyVendors, IDOf: func(r core.Vendor) string { return r.ID }, Seed: seed}
}

func Accounts(seed func() []core.Account) Options[core.Account] {
	return Options[core.Account]{Key: core.KeyAccounts, IDOf: func(r core.Account) string { return r.ID }, Seed: seed}
}
