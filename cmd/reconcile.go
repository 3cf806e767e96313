package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	finance "github.com/dberweger2017/Flet-finance"
)

// reconcileCmd aligns an account with the real-world balance reported by the
// bank.
type reconcileCmd struct {
	account   string
	balance   string
	statement string
	jsonPath  string
	date      string
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "align an account with its bank statement" }
func (*reconcileCmd) Usage() string {
	return `reconcile -a <account_id> (-m <balance> | -statement <file.json>) [-path <jsonpath>] [-d <date>]

  Compares the real balance against the derived one and, when they differ,
  records a single approved adjustment transaction closing the gap. The real
  balance is given directly with -m, or extracted from a JSON bank statement
  with -statement. The JSONPath of the balance field comes from -path or from
  the statements section of the config file.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id.")
	f.StringVar(&c.balance, "m", "", "Real balance reported by the bank.")
	f.StringVar(&c.statement, "statement", "", "JSON statement file to extract the balance from.")
	f.StringVar(&c.jsonPath, "path", "", "JSONPath of the balance inside the statement.")
	f.StringVar(&c.date, "d", "", "Adjustment date, defaults to today.")
}

func (c *reconcileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required.")
		return subcommands.ExitUsageError
	}
	if (c.balance == "") == (c.statement == "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -m and -statement is required.")
		return subcommands.ExitUsageError
	}

	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	account, err := ledger.Store().Account(c.account)
	if err != nil {
		return fail(err)
	}

	var statement finance.Money
	if c.balance != "" {
		if statement, err = finance.ParseMoney(c.balance, account.Currency); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing balance: %v\n", err)
			return subcommands.ExitUsageError
		}
	} else {
		statement, err = c.extract(account)
		if err != nil {
			return fail(err)
		}
	}

	day := finance.Today()
	if c.date != "" {
		if day, err = finance.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	tx, adjusted, err := ledger.Reconcile(account.ID, statement, day)
	if err != nil {
		return fail(err)
	}
	if !adjusted {
		fmt.Printf("Account %q already matches %s, nothing to do.\n", account.Name, statement)
		return subcommands.ExitSuccess
	}
	fmt.Printf("Recorded adjustment %s on %q.\n", tx.Amount.SignedString(), account.Name)
	return subcommands.ExitSuccess
}

// extract pulls the real balance out of the JSON statement file.
func (c *reconcileCmd) extract(account finance.Account) (finance.Money, error) {
	path := c.jsonPath
	if path == "" {
		cfg, err := LoadConfig(*configFile)
		if err != nil {
			return finance.Money{}, err
		}
		path = cfg.Statements[account.ID]
	}
	if path == "" {
		return finance.Money{}, fmt.Errorf("no JSONPath configured for account %s, use -path or the statements config section", account.ID)
	}

	f, err := os.Open(c.statement)
	if err != nil {
		return finance.Money{}, err
	}
	defer f.Close()
	return finance.StatementBalance(f, path, account.Currency)
}
