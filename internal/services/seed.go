package services

import (
	"time"

	"github.com/google/uuid"

	"findash/internal/core"
)

// Starter records written the first time a collection key is opened.
// Dates are relative to the engine clock so the demo data always looks
// recent.

func seedInvoices(now time.Time) func() []core.Invoice {
	return func() []core.Invoice {
		today := core.DateOf(now)
		return []core.Invoice{
			{ID: uuid.NewString(), Client: "Acme Corp", Amount: core.NewMoney(15000), Date: today.AddDays(-8), DueDate: today.AddDays(6), Status: core.InvoicePaid},
			{ID: uuid.NewString(), Client: "Globex Inc", Amount: core.NewMoney(8500), Date: today.AddDays(-4), DueDate: today.AddDays(11), Status: core.InvoicePending},
			{ID: uuid.NewString(), Client: "Soylent Corp", Amount: core.NewMoney(12000), Date: today.AddDays(-24), DueDate: today.AddDays(-9), Status: core.InvoiceOverdue},
		}
	}
}

func seedExpenses(now time.Time) func() []core.Expense {
	return func() []core.Expense {
		today := core.DateOf(now)
		return []core.Expense{
			{ID: uuid.NewString(), Vendor: "Office Supply Co", Amount: core.NewMoney(450), Date: today.AddDays(-6), Category: "Office", Status: core.ExpensePaid},
			{ID: uuid.NewString(), Vendor: "AWS", Amount: core.NewMoney(1200), Date: today.AddDays(-10), Category: "Software", Status: core.ExpensePaid},
			{ID: uuid.NewString(), Vendor: "Landlord Inc", Amount: core.NewMoney(5000), Date: today.AddDays(-14), Category: "Rent", Status: core.ExpensePaid},
		}
	}
}

func seedVendors() []core.Vendor {
	return []core.Vendor{
		{ID: uuid.NewString(), Name: "Office Supply Co", Email: "sales@officesupply.com", Phone: "555-0101", Category: "Supplies"},
		{ID: uuid.NewString(), Name: "AWS", Email: "billing@aws.com", Category: "Software"},
		{ID: uuid.NewString(), Name: "Landlord Inc", Email: "rent@landlord.com", Phone: "555-9999", Category: "Real Estate"},
	}
}

func seedAccounts(now time.Time) func() []core.Account {
	return func() []core.Account {
		ts := now.UTC()
		return []core.Account{
			{ID: uuid.NewString(), Name: "Chase Business Complete", Institution: "Chase", Type: core.Checking, Balance: core.NewMoney(12500), LastUpdated: ts},
			{ID: uuid.NewString(), Name: "Amex Business Gold", Institution: "American Express", Type: core.CreditCard, Balance: core.NewMoney(-1250), LastUpdated: ts},
		}
	}
}
