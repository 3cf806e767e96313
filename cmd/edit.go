package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	finance "github.com/dberweger2017/Flet-finance"
)

// editCmd corrects a transaction that is still pending.
type editCmd struct {
	id          string
	amount      string
	category    string
	description string
	date        string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a pending transaction" }
func (*editCmd) Usage() string {
	return `edit -id <id> [-m <amount>] [-cat <category>] [-desc <text>] [-d <date>]

  Changes fields of a pending transaction. Approved transactions are
  immutable; record an offsetting transaction instead. Editing the amount of
  a same-currency transfer leg keeps the other leg in sync.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id.")
	f.StringVar(&c.amount, "m", "", "New signed amount.")
	f.StringVar(&c.category, "cat", "", "New category.")
	f.StringVar(&c.description, "desc", "", "New description.")
	f.StringVar(&c.date, "d", "", "New date.")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}

	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	var edit finance.PendingEdit
	if c.amount != "" {
		current, err := ledger.Store().Transaction(c.id)
		if err != nil {
			return fail(err)
		}
		amount, err := finance.ParseMoney(c.amount, current.Amount.Currency())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		edit.Amount = &amount
	}
	if c.category != "" {
		edit.Category = &c.category
	}
	if c.description != "" {
		edit.Description = &c.description
	}
	if c.date != "" {
		day, err := finance.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		edit.Date = &day
	}

	tx, err := ledger.EditPending(c.id, edit)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Updated %s: %s %q on %s\n", tx.ID, tx.Amount.SignedString(), tx.Description, tx.Date)
	return subcommands.ExitSuccess
}
