package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"findash/internal/core"
)

func (a *app) goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Goal targets and progress toward them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.GoalProgress())
		},
	}

	var revenue, profit string
	set := &cobra.Command{
		Use:   "set",
		Short: "Replace the revenue and profit targets",
		Example: `  findash goals set --revenue 200000 --profit 80000
  findash goals set --profit 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := a.engine.Finance.Goals()
			if cmd.Flags().Changed("revenue") {
				m, err := core.ParseAmount(revenue)
				if err != nil {
					return err
				}
				g.Revenue = m
			}
			if cmd.Flags().Changed("profit") {
				m, err := core.ParseAmount(profit)
				if err != nil {
					return err
				}
				g.Profit = m
			}
			if err := a.engine.Finance.UpdateGoals(cmd.Context(), g); err != nil {
				return err
			}
			return a.print(a.engine.Finance.GoalProgress())
		},
	}
	set.Flags().StringVar(&revenue, "revenue", "", "annual revenue target")
	set.Flags().StringVar(&profit, "profit", "", "annual profit target")
	set.MarkFlagsOneRequired("revenue", "profit")

	cmd.AddCommand(set)
	return cmd
}

func (a *app) invoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "List invoices, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.Invoices())
		},
	}

	var client, amount, date, due string
	var items []string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a pending invoice",
		Example: `  findash invoices add --client "Acme Corp" --amount 5000 --due 2025-03-15
  findash invoices add --client "Acme Corp" --item "Consulting:10:150" --item "Hosting:1:49.99"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var m core.Money
			if amount != "" {
				var err error
				if m, err = core.ParseAmount(amount); err != nil {
					return err
				}
			}
			lines := make([]core.LineItem, 0, len(items))
			for i, raw := range items {
				it, err := parseLineItem(raw)
				if err != nil {
					return &core.ValidationError{Field: fmt.Sprintf("item %d", i+1), Err: err}
				}
				lines = append(lines, it)
			}
			d, err := parseOptionalDate("date", date)
			if err != nil {
				return err
			}
			dd, err := parseOptionalDate("due", due)
			if err != nil {
				return err
			}
			inv, err := a.engine.Finance.AddInvoice(cmd.Context(), core.InvoiceDraft{
				Client: client, Amount: m, Items: lines, Date: d, DueDate: dd,
			})
			if err != nil {
				return err
			}
			return a.print(inv)
		},
	}
	add.Flags().StringVar(&client, "client", "", "client name")
	add.Flags().StringVar(&amount, "amount", "", "invoice amount")
	add.Flags().StringVar(&date, "date", "", "issue date YYYY-MM-DD (default today)")
	add.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD")
	add.Flags().StringArrayVar(&items, "item", nil, "line item DESCRIPTION:QUANTITY:PRICE, repeatable; replaces --amount")
	_ = add.MarkFlagRequired("client")
	add.MarkFlagsOneRequired("amount", "item")
	add.MarkFlagsMutuallyExclusive("amount", "item")

	cmd.AddCommand(add)
	return cmd
}

func (a *app) expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.Expenses())
		},
	}

	var vendor, amount, date, category string
	add := &cobra.Command{
		Use:     "add",
		Short:   "Record a paid expense",
		Example: `  findash expenses add --vendor AWS --amount 1200 --category Software`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := core.ParseAmount(amount)
			if err != nil {
				return err
			}
			d, err := parseOptionalDate("date", date)
			if err != nil {
				return err
			}
			exp, err := a.engine.Finance.AddExpense(cmd.Context(), core.ExpenseDraft{
				Vendor: vendor, Amount: m, Date: d, Category: category,
			})
			if err != nil {
				return err
			}
			return a.print(exp)
		},
	}
	add.Flags().StringVar(&vendor, "vendor", "", "vendor name")
	add.Flags().StringVar(&amount, "amount", "", "expense amount")
	add.Flags().StringVar(&date, "date", "", "expense date YYYY-MM-DD (default today)")
	add.Flags().StringVar(&category, "category", "", "expense category")
	_ = add.MarkFlagRequired("vendor")
	_ = add.MarkFlagRequired("amount")

	cmd.AddCommand(add)
	return cmd
}

func (a *app) vendorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "List vendors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.Vendors())
		},
	}

	var draft core.VendorDraft
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a vendor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.engine.Finance.AddVendor(cmd.Context(), draft)
			if err != nil {
				return err
			}
			return a.print(v)
		},
	}
	add.Flags().StringVar(&draft.Name, "name", "", "vendor name")
	add.Flags().StringVar(&draft.Email, "email", "", "contact email")
	add.Flags().StringVar(&draft.Phone, "phone", "", "contact phone")
	add.Flags().StringVar(&draft.Category, "category", "", "vendor category")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(add)
	return cmd
}

func (a *app) accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.engine.Finance.Accounts())
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, ok := a.engine.Finance.Account(args[0])
			if !ok {
				return fmt.Errorf("account %q not found", args[0])
			}
			return a.print(acc)
		},
	}

	var name, institution, typ, balance string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record an account",
		Example: `  findash accounts add --name "Chase Business" --institution Chase --type Checking --balance 12500
  findash accounts add --name Amex --institution "American Express" --type "Credit Card" --balance=-1250`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := core.ParseAccountType(typ)
			if err != nil {
				return err
			}
			bal := core.Money{}
			if balance != "" {
				if bal, err = core.ParseSignedAmount(balance); err != nil {
					return err
				}
			}
			acc, err := a.engine.Finance.AddAccount(cmd.Context(), core.AccountDraft{
				Name: name, Institution: institution, Type: t, Balance: bal,
			})
			if err != nil {
				return err
			}
			return a.print(acc)
		},
	}
	add.Flags().StringVar(&name, "name", "", "account name")
	add.Flags().StringVar(&institution, "institution", "", "bank or card issuer")
	add.Flags().StringVar(&typ, "type", string(core.Checking), "Checking, Savings or Credit Card")
	add.Flags().StringVar(&balance, "balance", "", "current balance, negative for debt")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(show, add)
	return cmd
}

// parseLineItem reads DESCRIPTION:QUANTITY:PRICE. The description may
// itself contain colons.
func parseLineItem(s string) (core.LineItem, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return core.LineItem{}, fmt.Errorf("%q: want DESCRIPTION:QUANTITY:PRICE", s)
	}
	n := len(parts)
	qty, err := strconv.ParseFloat(strings.TrimSpace(parts[n-2]), 64)
	if err != nil {
		return core.LineItem{}, fmt.Errorf("%q: %w", s, core.ErrInvalidQuantity)
	}
	price, err := core.ParseAmount(parts[n-1])
	if err != nil {
		return core.LineItem{}, err
	}
	return core.LineItem{
		Description: strings.Join(parts[:n-2], ":"),
		Quantity:    qty,
		Price:       price,
	}, nil
}

func parseOptionalDate(field, s string) (core.Date, error) {
	if s == "" {
		return core.Date{}, nil
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}, &core.ValidationError{Field: field, Err: core.ErrInvalidDate}
	}
	return d, nil
}
