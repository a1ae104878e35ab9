package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"findash/internal/core"
)

// MaxInsights caps the advisory list.
const MaxInsights = 3

var (
	rentWarningThreshold = core.NewMoney(4000)
	taxTipThreshold      = core.NewMoney(10000)
	runwayThreshold      = core.NewMoney(20000)
)

// TaxSetAsidePercent is the share of net profit suggested for taxes.
const TaxSetAsidePercent = 25

// Insights produces up to MaxInsights advisory messages. ref selects the
// month compared against its predecessor for revenue growth; when ref is
// not in buckets the last bucket is used.
func Insights(summary core.Summary, buckets []core.MonthlyBucket, expenses []core.Expense, ref core.Period) []core.Insight {
	var out []core.Insight

	if cur, prev, ok := monthPair(buckets, ref); ok && prev.Revenue.IsPositive() && cur.Revenue.Cents > prev.Revenue.Cents {
		growth := cur.Revenue.Decimal().Sub(prev.Revenue.Decimal()).
			Div(prev.Revenue.Decimal()).Mul(decimal.NewFromInt(100))
		out = append(out, core.Insight{
			Kind:    core.InsightSuccess,
			Title:   "Revenue Growth",
			Message: fmt.Sprintf("Revenue is up %s%% compared to last month.", growth.StringFixed(0)),
		})
	}

	if rent, ok := largestRent(expenses); ok && rent.Amount.Cents > rentWarningThreshold.Cents {
		msg := "Your Rent expense is a large fixed cost. Consider renegotiating your lease."
		if summary.ExpensesYTD.IsPositive() {
			share := rent.Amount.Decimal().Div(summary.ExpensesYTD.Decimal()).Mul(decimal.NewFromInt(100))
			msg = fmt.Sprintf("Your Rent expense is %s%% of your total burn. Consider renegotiating your lease.", share.StringFixed(1))
		}
		out = append(out, core.Insight{Kind: core.InsightWarning, Title: "High Fixed Costs", Message: msg})
	}

	if summary.NetProfit.Cents > taxTipThreshold.Cents {
		out = append(out, core.Insight{
			Kind:  core.InsightInfo,
			Title: "Tax Optimization",
			Message: fmt.Sprintf("Set aside $%s for taxes (%d%% of net profit).",
				summary.NetProfit.Percent(TaxSetAsidePercent).Decimal().StringFixed(0), TaxSetAsidePercent),
		})
	}

	if summary.CashOnHand.Cents > runwayThreshold.Cents {
		out = append(out, core.Insight{
			Kind:    core.InsightSuccess,
			Title:   "Healthy Runway",
			Message: "Cash on hand is comfortably above your monthly burn.",
		})
	}

	if len(out) > MaxInsights {
		out = out[:MaxInsights]
	}
	return out
}

func monthPair(buckets []core.MonthlyBucket, ref core.Period) (cur, prev core.MonthlyBucket, ok bool) {
	if len(buckets) < 2 {
		return cur, prev, false
	}
	i := len(buckets) - 1
	for j, b := range buckets {
		if b.Period == ref {
			i = j
			break
		}
	}
	if i == 0 {
		return cur, prev, false
	}
	return buckets[i], buckets[i-1], true
}

func largestRent(expenses []core.Expense) (core.Expense, bool) {
	var (
		best  core.Expense
		found bool
	)
	for _, e := range expenses {
		if NormalizeCategory(e.Category) != "Rent" {
			continue
		}
		if !found || e.Amount.Cents > best.Amount.Cents {
			best, found = e, true
		}
	}
	return best, found
}
