package core

import "time"

// MonthlyBucket is one month of the rollup series.
type MonthlyBucket struct {
	Period   Period `json:"period"`
	Month    string `json:"month"`
	Revenue  Money  `json:"revenue"`
	Expenses Money  `json:"expenses"`
	Profit   Money  `json:"profit"`
	CashFlow Money  `json:"cashFlow"`
}

// Recompute derives Profit and CashFlow from Revenue and Expenses.
// CashFlow mirrors profit.
func (b *MonthlyBucket) Recompute() {
	b.Profit = b.Revenue.Sub(b.Expenses)
	b.CashFlow = b.Profit
}

// Summary is the year-to-date view. It is never persisted.
type Summary struct {
	RevenueYTD  Money `json:"revenueYTD"`
	ExpensesYTD Money `json:"expensesYTD"`
	NetProfit   Money `json:"netProfit"`
	CashOnHand  Money `json:"cashOnHand"`
}

// AgingReport groups unpaid invoice amounts by days past due. Days90 holds
// everything more than 60 days overdue.
type AgingReport struct {
	Current Money `json:"current"`
	Days30  Money `json:"days30"`
	Days60  Money `json:"days60"`
	Days90  Money `json:"days90"`
	Total   Money `json:"total"`
}

// BalanceSheet is a presentational balance sheet. RetainedEarnings is a
// balancing figure, not tracked retained earnings.
type BalanceSheet struct {
	Cash        Money `json:"cash"`
	Receivables Money `json:"accountsReceivable"`
	FixedAssets Money `json:"fixedAssets"`
	TotalAssets Money `json:"totalAssets"`

	AccountsPayable  Money `json:"accountsPayable"`
	CreditCards      Money `json:"creditCards"`
	LongTermDebt     Money `json:"longTermDebt"`
	TotalLiabilities Money `json:"totalLiabilities"`

	OwnerEquity      Money `json:"ownerEquity"`
	RetainedEarnings Money `json:"retainedEarnings"`
	TotalEquity      Money `json:"totalEquity"`
}

// Balanced reports whether assets equal liabilities plus equity.
func (b BalanceSheet) Balanced() bool {
	return b.TotalAssets == b.TotalLiabilities.Add(b.TotalEquity)
}

// ProfitLoss is the year-to-date income statement. COGS is an estimate.
type ProfitLoss struct {
	Revenue           Money           `json:"revenue"`
	COGS              Money           `json:"cogs"`
	GrossProfit       Money           `json:"grossProfit"`
	OperatingExpenses Money           `json:"operatingExpenses"`
	OperatingLines    []StatementLine `json:"operatingLines"`
	NetProfit         Money           `json:"netProfit"`
	// Margins are percentages of revenue, zero without revenue.
	GrossMargin float64 `json:"grossMargin"`
	NetMargin   float64 `json:"netMargin"`
}

// StatementLine is one labelled statement figure.
type StatementLine struct {
	Label  string `json:"label"`
	Amount Money  `json:"amount"`
}

// CashFlowStatement explains the change in cash over the year. Investing
// and financing figures are fixed presentational values.
type CashFlowStatement struct {
	NetIncome     Money `json:"netIncome"`
	NonCash       Money `json:"nonCashAdjustments"`
	Operating     Money `json:"operating"`
	Investing     Money `json:"investing"`
	Financing     Money `json:"financing"`
	NetChange     Money `json:"netChange"`
	BeginningCash Money `json:"beginningCash"`
	EndingCash    Money `json:"endingCash"`
}

// CategoryTotal is the sum of expenses in one display category.
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   Money  `json:"amount"`
}

type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
)

// Transaction is a derived account activity line.
type Transaction struct {
	ID          string    `json:"id"`
	Date        Date      `json:"date"`
	Description string    `json:"desc"`
	Category    string    `json:"category"`
	Amount      Money     `json:"amount"`
	Direction   Direction `json:"type"`
}

type InsightKind string

const (
	InsightSuccess InsightKind = "success"
	InsightWarning InsightKind = "warning"
	InsightInfo    InsightKind = "info"
)

type Insight struct {
	Kind    InsightKind `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// GoalProgress holds ratios in [0, 1] against the goal targets.
type GoalProgress struct {
	Goals   Goals   `json:"goals"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// Change describes one applied mutation.
type Change struct {
	Collection string
	RecordID   string
	Revision   int64
}

// Dashboard is every derived view computed at a single revision.
type Dashboard struct {
	Revision     int64             `json:"revision"`
	AsOf         time.Time         `json:"asOf"`
	Summary      Summary           `json:"summary"`
	Monthly      []MonthlyBucket   `json:"monthlyData"`
	Aging        AgingReport       `json:"aging"`
	BalanceSheet BalanceSheet      `json:"balanceSheet"`
	ProfitLoss   ProfitLoss        `json:"profitLoss"`
	CashFlow     CashFlowStatement `json:"cashFlow"`
	Categories   []CategoryTotal   `json:"expenseCategories"`
	Progress     GoalProgress      `json:"goalProgress"`
	Insights     []Insight         `json:"insights"`
}
