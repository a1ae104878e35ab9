package aggregate

import (
	"github.com/shopspring/decimal"

	"findash/internal/core"
)

// Fixed presentational statement figures.
var (
	// COGSPercent of revenue is treated as cost of goods sold.
	COGSPercent int64 = 30
	// NonCashAddBack is added to net income for operating cash flow.
	NonCashAddBack    = core.NewMoney(50000)
	InvestingCashFlow = core.NewMoney(-120000)
	FinancingCashFlow = core.NewMoney(45000)
)

// operatingSplit divides operating expenses into display lines. Shares are
// percentages and sum to 100.
var operatingSplit = []struct {
	label string
	share int64
}{
	{"Salaries & Wages", 50},
	{"Marketing", 20},
	{"Rent & Utilities", 15},
	{"Software & IT", 10},
	{"Travel & Meals", 5},
}

// ProfitLoss builds the income statement from the summary. COGS is
// COGSPercent of revenue rounded to whole units; operating expenses are
// whatever of ExpensesYTD is not COGS.
func ProfitLoss(summary core.Summary) core.ProfitLoss {
	revenue := summary.RevenueYTD
	cogs := wholeUnits(revenue.Percent(COGSPercent))
	opEx := summary.ExpensesYTD.Sub(cogs)

	pl := core.ProfitLoss{
		Revenue:           revenue,
		COGS:              cogs,
		GrossProfit:       revenue.Sub(cogs),
		OperatingExpenses: opEx,
		NetProfit:         summary.NetProfit,
	}
	for _, s := range operatingSplit {
		pl.OperatingLines = append(pl.OperatingLines, core.StatementLine{
			Label:  s.label,
			Amount: wholeUnits(opEx.Percent(s.share)),
		})
	}
	pl.GrossMargin = margin(pl.GrossProfit, revenue)
	pl.NetMargin = margin(pl.NetProfit, revenue)
	return pl
}

// CashFlow builds the cash-flow statement. Ending cash is the cash on hand;
// beginning cash is whatever the net change leaves.
func CashFlow(summary core.Summary) core.CashFlowStatement {
	cf := core.CashFlowStatement{
		NetIncome:  summary.NetProfit,
		NonCash:    NonCashAddBack,
		Operating:  summary.NetProfit.Add(NonCashAddBack),
		Investing:  InvestingCashFlow,
		Financing:  FinancingCashFlow,
		EndingCash: summary.CashOnHand,
	}
	cf.NetChange = cf.Operating.Add(cf.Investing).Add(cf.Financing)
	cf.BeginningCash = cf.EndingCash.Sub(cf.NetChange)
	return cf
}

func wholeUnits(m core.Money) core.Money {
	return core.NewMoney(m.Decimal().Round(0).IntPart())
}

// margin returns part as a percentage of whole with one decimal place.
func margin(part, whole core.Money) float64 {
	if !whole.IsPositive() {
		return 0
	}
	f, _ := part.Decimal().Div(whole.Decimal()).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return f
}
