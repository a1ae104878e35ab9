package main

import (
	"github.com/spf13/cobra"
)

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Year-to-date revenue, expenses, net profit and cash on hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.Summary())
		},
	}
}

func (a *app) monthlyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monthly",
		Short: "Twelve-month rollup for the fiscal year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.MonthlyData())
		},
	}
}

func (a *app) agingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aging",
		Short: "Unpaid invoice amounts by days past due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.Aging())
		},
	}
}

func (a *app) balanceSheetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance-sheet",
		Short: "Assets, liabilities and equity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.BalanceSheet())
		},
	}
}

func (a *app) profitLossCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profit-loss",
		Short: "Income statement with COGS, gross profit and operating expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.ProfitLoss())
		},
	}
}

func (a *app) cashFlowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cash-flow",
		Short: "Operating, investing and financing cash flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.CashFlow())
		},
	}
}

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Fiscal-year expenses by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.ExpenseCategories())
		},
	}
}

func (a *app) insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Up to three advisory messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.Insights())
		},
	}
}

func (a *app) activityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Invoices and expenses as one signed transaction feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.Activity())
		},
	}
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Every derived view in one document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.Snapshot())
		},
	}
}
