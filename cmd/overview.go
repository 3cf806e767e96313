package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	finance "github.com/dberweger2017/Flet-finance"
	"github.com/dberweger2017/Flet-finance/renderer"
)

// overviewCmd holds the flags for the 'overview' subcommand.
type overviewCmd struct {
	date string
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "display the ledger dashboard" }
func (*overviewCmd) Usage() string {
	return `overview [-d <date>]

  Displays the full ledger state: account balances, liquidity and net worth
  per currency, pending transactions and overdue debts.
`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", finance.Today().String(), "Date for the overview.")
}

func (c *overviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := finance.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	o, err := ledger.Overview(on)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.OverviewMarkdown(o))
	return subcommands.ExitSuccess
}
