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

// addCmd records a manual pending transaction.
type addCmd struct {
	account     string
	amount      string
	category    string
	description string
	date        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a pending transaction" }
func (*addCmd) Usage() string {
	return `add -a <account_id> -m <amount> [-cat <category>] [-desc <text>] [-d <date>]

  Records a transaction in the pending queue. The amount is signed: negative
  for money leaving the account, positive for money coming in. Nothing affects
  balances until the transaction is approved.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id.")
	f.StringVar(&c.amount, "m", "", "Signed amount in the account currency (e.g. -42.50).")
	f.StringVar(&c.category, "cat", "", "Category label.")
	f.StringVar(&c.description, "desc", "", "Free-form description.")
	f.StringVar(&c.date, "d", "", "Transaction date, defaults to today.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	account, err := ledger.Store().Account(c.account)
	if err != nil {
		return fail(err)
	}
	amount, err := finance.ParseMoney(c.amount, account.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	var day finance.Date
	if c.date != "" {
		if day, err = finance.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	tx, err := ledger.CreatePending(account.ID, amount, c.category, c.description, day)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Created pending transaction %s: %s on %s\n", tx.ID, tx.Amount.SignedString(), tx.Date)
	return subcommands.ExitSuccess
}

// pendingCmd lists the pending queue.
type pendingCmd struct{}

func (*pendingCmd) Name() string     { return "pending" }
func (*pendingCmd) Synopsis() string { return "list transactions waiting for approval" }
func (*pendingCmd) Usage() string {
	return `pending

  Lists all pending transactions, oldest first.
`
}

func (c *pendingCmd) SetFlags(f *flag.FlagSet) {}

func (c *pendingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	pending, err := ledger.Pending()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.PendingMarkdown(pending))
	return subcommands.ExitSuccess
}
