package aggregate

import "findash/internal/core"

// Fixed presentational balance-sheet lines.
var (
	FixedAssets     = core.NewMoney(150000)
	AccountsPayable = core.NewMoney(12000)
	LongTermDebt    = core.NewMoney(45000)
	OwnerEquity     = core.NewMoney(100000)
)

// Balance builds the balance sheet. RetainedEarnings absorbs whatever makes
// assets equal liabilities plus equity.
func Balance(summary core.Summary, invoices []core.Invoice, accounts []core.Account) core.BalanceSheet {
	b := core.BalanceSheet{
		Cash:            summary.CashOnHand,
		Receivables:     Receivables(invoices),
		FixedAssets:     FixedAssets,
		AccountsPayable: AccountsPayable,
		CreditCards:     CreditCardDebt(accounts),
		LongTermDebt:    LongTermDebt,
		OwnerEquity:     OwnerEquity,
	}
	b.TotalAssets = b.Cash.Add(b.Receivables).Add(b.FixedAssets)
	b.TotalLiabilities = b.AccountsPayable.Add(b.CreditCards).Add(b.LongTermDebt)
	b.RetainedEarnings = b.TotalAssets.Sub(b.TotalLiabilities).Sub(b.OwnerEquity)
	b.TotalEquity = b.OwnerEquity.Add(b.RetainedEarnings)
	return b
}

// CreditCardDebt is the amount owed on credit card accounts, as a positive
// figure. Credit balances in the business's favour are ignored.
func CreditCardDebt(accounts []core.Account) core.Money {
	var owed core.Money
	for _, a := range accounts {
		if a.Type == core.CreditCard && a.Balance.IsNegative() {
			owed = owed.Add(a.Balance.Neg())
		}
	}
	return owed
}
