package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"findash/internal/amqp"
	"findash/internal/cli"
	"findash/internal/config"
	"findash/internal/log"
	"findash/internal/services"
)

var version = "0.1.0"

// app holds what a single command invocation needs. The engine is opened
// in PersistentPreRunE and closed by run.
type app struct {
	out    io.Writer
	logger *log.Logger
	cfg    *config.Config
	engine *cli.Engine
	amqp   *amqp.Client

	backend string
	dbPath  string
	year    int
}

// run executes one command line and always releases the engine, including
// when the command itself failed.
func run(out io.Writer, args []string) error {
	a := &app{out: out}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	err := root.Execute()
	return errors.Join(err, a.close())
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "findash",
		Short: "Small-business finance dashboard",
		Long: `findash keeps invoices, expenses, vendors, accounts and goal targets
in a local store and derives the monthly rollup, year-to-date summary,
receivables aging, balance sheet, goal progress and insights from them.

All output is JSON.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
	}

	root.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend (sqlite|memory), overrides DATA_BACKEND")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path, overrides SQLITE_DB_PATH")
	root.PersistentFlags().IntVar(&a.year, "year", 0, "fiscal year, overrides FISCAL_YEAR")

	root.AddCommand(
		a.summaryCmd(),
		a.monthlyCmd(),
		a.agingCmd(),
		a.balanceSheetCmd(),
		a.profitLossCmd(),
		a.cashFlowCmd(),
		a.categoriesCmd(),
		a.insightsCmd(),
		a.activityCmd(),
		a.dashboardCmd(),
		a.goalsCmd(),
		a.invoicesCmd(),
		a.expensesCmd(),
		a.vendorsCmd(),
		a.accountsCmd(),
	)
	return root
}

func (a *app) open(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if a.backend != "" {
		cfg.DataBackend = a.backend
	}
	if a.dbPath != "" {
		cfg.SQLiteDBPath = a.dbPath
	}
	if a.year != 0 {
		cfg.FiscalYear = a.year
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cli.SetupLogger(cfg.LogLevel).WithComponent(log.ComponentCLI)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := cli.InitStore(ctx, cfg, a.logger)
	if err != nil {
		return err
	}

	var notifier *amqp.Client
	if cfg.AMQPEnabled() {
		notifier, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, a.logger)
		if err != nil {
			a.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without change events",
				log.FieldError, err)
			notifier = nil
		}
	}

	engine, err := cli.NewEngine(ctx, cfg, store.Store, a.logger, notifierOrNil(notifier))
	if err != nil {
		_ = store.Cleanup()
		if notifier != nil {
			_ = notifier.Close()
		}
		return err
	}
	a.engine = engine
	a.amqp = notifier
	return nil
}

// notifierOrNil avoids handing the engine a typed nil.
func notifierOrNil(c *amqp.Client) services.Notifier {
	if c == nil {
		return nil
	}
	return c
}

func (a *app) close() error {
	var errs []error
	if a.amqp != nil {
		errs = append(errs, a.amqp.Close())
		a.amqp = nil
	}
	if a.engine != nil {
		errs = append(errs, a.engine.Finance.Close())
		a.engine = nil
	}
	return errors.Join(errs...)
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
