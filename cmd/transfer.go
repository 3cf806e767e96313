package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	finance "github.com/dberweger2017/Flet-finance"
)

// transferCmd records a pending transfer between two own accounts.
type transferCmd struct {
	from        string
	to          string
	amount      string
	amountIn    string
	category    string
	description string
	date        string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between two accounts" }
func (*transferCmd) Usage() string {
	return `transfer -from <account_id> -to <account_id> -m <amount> [-in <amount>] [-d <date>]

  Records a pending transfer as two linked legs, one per account. Both legs
  are approved or rejected together. When the accounts use different
  currencies, -in gives the amount credited on the receiving side.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source account id.")
	f.StringVar(&c.to, "to", "", "Destination account id.")
	f.StringVar(&c.amount, "m", "", "Amount debited from the source account (positive).")
	f.StringVar(&c.amountIn, "in", "", "Amount credited to the destination account. Defaults to -m.")
	f.StringVar(&c.category, "cat", "transfer", "Category label.")
	f.StringVar(&c.description, "desc", "", "Free-form description.")
	f.StringVar(&c.date, "d", "", "Transfer date, defaults to today.")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	from, err := ledger.Store().Account(c.from)
	if err != nil {
		return fail(err)
	}
	to, err := ledger.Store().Account(c.to)
	if err != nil {
		return fail(err)
	}

	out, err := finance.ParseMoney(c.amount, from.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	in := out
	if c.amountIn != "" {
		if in, err = finance.ParseMoney(c.amountIn, to.Currency); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -in amount: %v\n", err)
			return subcommands.ExitUsageError
		}
	} else if from.Currency != to.Currency {
		fmt.Fprintln(os.Stderr, "Error: -in is required when the accounts use different currencies.")
		return subcommands.ExitUsageError
	}
	var day finance.Date
	if c.date != "" {
		if day, err = finance.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	debit, credit, err := ledger.CreatePendingTransfer(from.ID, to.ID, out, in, c.category, c.description, day)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Created pending transfer %s -> %s (%s / %s)\n", from.Name, to.Name, debit.ID, credit.ID)
	return subcommands.ExitSuccess
}
