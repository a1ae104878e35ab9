package sheets

import (
	"fmt"

	"findash/internal/core"
)

// Block is one rectangular range of a dashboard sheet.
type Block struct {
	Name   string
	Anchor string // top-left cell, e.g. "A1"
	Rows   [][]any
}

// Blocks renders a dashboard into the ranges written to a sheet. Amounts
// are emitted as numbers so sheet formulas can use them.
func Blocks(d core.Dashboard) []Block {
	return []Block{
		{Name: "summary", Anchor: "A1", Rows: SummaryRows(d)},
		{Name: "monthly", Anchor: "D1", Rows: MonthlyRows(d.Monthly)},
		{Name: "aging", Anchor: "K1", Rows: AgingRows(d.Aging)},
		{Name: "balance", Anchor: "N1", Rows: BalanceRows(d.BalanceSheet)},
		{Name: "insights", Anchor: "Q1", Rows: InsightRows(d.Insights)},
		{Name: "profitLoss", Anchor: "U1", Rows: ProfitLossRows(d.ProfitLoss)},
		{Name: "cashFlow", Anchor: "X1", Rows: CashFlowRows(d.CashFlow)},
		{Name: "categories", Anchor: "AA1", Rows: CategoryRows(d.Categories)},
	}
}

func num(m core.Money) any { return m.Float64() }

func SummaryRows(d core.Dashboard) [][]any {
	return [][]any{
		{"Metric", "Value"},
		{"Revenue YTD", num(d.Summary.RevenueYTD)},
		{"Expenses YTD", num(d.Summary.ExpensesYTD)},
		{"Net Profit", num(d.Summary.NetProfit)},
		{"Cash on Hand", num(d.Summary.CashOnHand)},
		{"Revenue Goal", fmt.Sprintf("%.0f%%", d.Progress.Revenue*100)},
		{"Profit Goal", fmt.Sprintf("%.0f%%", d.Progress.Profit*100)},
		{"Revision", d.Revision},
		{"As Of", d.AsOf.Format("2006-01-02 15:04:05")},
	}
}

func MonthlyRows(buckets []core.MonthlyBucket) [][]any {
	rows := make([][]any, 0, len(buckets)+1)
	rows = append(rows, []any{"Period", "Month", "Revenue", "Expenses", "Profit", "Cash Flow"})
	for _, b := range buckets {
		rows = append(rows, []any{b.Period.String(), b.Month, num(b.Revenue), num(b.Expenses), num(b.Profit), num(b.CashFlow)})
	}
	return rows
}

func AgingRows(a core.AgingReport) [][]any {
	return [][]any{
		{"Aging", "Amount"},
		{"Current", num(a.Current)},
		{"1-30 Days", num(a.Days30)},
		{"31-60 Days", num(a.Days60)},
		{"61+ Days", num(a.Days90)},
		{"Total", num(a.Total)},
	}
}

func BalanceRows(b core.BalanceSheet) [][]any {
	return [][]any{
		{"Balance Sheet", "Amount"},
		{"Cash", num(b.Cash)},
		{"Accounts Receivable", num(b.Receivables)},
		{"Fixed Assets", num(b.FixedAssets)},
		{"Total Assets", num(b.TotalAssets)},
		{"Accounts Payable", num(b.AccountsPayable)},
		{"Credit Cards", num(b.CreditCards)},
		{"Long-Term Debt", num(b.LongTermDebt)},
		{"Total Liabilities", num(b.TotalLiabilities)},
		{"Owner's Equity", num(b.OwnerEquity)},
		{"Retained Earnings", num(b.RetainedEarnings)},
		{"Total Equity", num(b.TotalEquity)},
	}
}

func ProfitLossRows(pl core.ProfitLoss) [][]any {
	rows := [][]any{
		{"Profit & Loss", "Amount"},
		{"Revenue", num(pl.Revenue)},
		{"Cost of Goods Sold", num(pl.COGS)},
		{"Gross Profit", num(pl.GrossProfit)},
	}
	for _, l := range pl.OperatingLines {
		rows = append(rows, []any{l.Label, num(l.Amount)})
	}
	return append(rows,
		[]any{"Total Operating Expenses", num(pl.OperatingExpenses)},
		[]any{"Net Profit", num(pl.NetProfit)},
		[]any{"Gross Margin", fmt.Sprintf("%.1f%%", pl.GrossMargin)},
		[]any{"Net Margin", fmt.Sprintf("%.1f%%", pl.NetMargin)},
	)
}

func CashFlowRows(cf core.CashFlowStatement) [][]any {
	return [][]any{
		{"Cash Flow", "Amount"},
		{"Net Income", num(cf.NetIncome)},
		{"Non-Cash Adjustments", num(cf.NonCash)},
		{"Operating Activities", num(cf.Operating)},
		{"Investing Activities", num(cf.Investing)},
		{"Financing Activities", num(cf.Financing)},
		{"Net Change in Cash", num(cf.NetChange)},
		{"Beginning Cash", num(cf.BeginningCash)},
		{"Ending Cash", num(cf.EndingCash)},
	}
}

func CategoryRows(totals []core.CategoryTotal) [][]any {
	rows := make([][]any, 0, len(totals)+1)
	rows = append(rows, []any{"Category", "Amount"})
	for _, c := range totals {
		rows = append(rows, []any{c.Category, num(c.Amount)})
	}
	return rows
}

// InsightRows always renders MaxInsightRows data rows so stale advice from
// a previous write is overwritten.
func InsightRows(insights []core.Insight) [][]any {
	rows := [][]any{{"Type", "Title", "Message"}}
	for i := 0; i < MaxInsightRows; i++ {
		if i < len(insights) {
			in := insights[i]
			rows = append(rows, []any{string(in.Kind), in.Title, in.Message})
			continue
		}
		rows = append(rows, []any{"", "", ""})
	}
	return rows
}

// MaxInsightRows is the number of insight rows reserved on the sheet.
const MaxInsightRows = 3
