package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"

	finance "github.com/dberweger2017/Flet-finance"
)

// accountCmd manages ledger accounts: creation and listing.
type accountCmd struct {
	name     string
	typ      string
	currency string
	limit    string
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "create or list ledger accounts" }
func (*accountCmd) Usage() string {
	return `account new -name <name> -type <debit|credit|savings> [-c <currency>] [-limit <amount>]
account ls

  Creates a new account or lists the existing ones with their balances.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name.")
	f.StringVar(&c.typ, "type", "debit", "Account type: debit, credit or savings.")
	f.StringVar(&c.currency, "c", "", "ISO 4217 currency code. Defaults to the configured currency.")
	f.StringVar(&c.limit, "limit", "", "Credit limit, credit accounts only (e.g. 1500.00).")
}

func (c *accountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch f.Arg(0) {
	case "new":
		return c.create()
	case "ls", "":
		return c.list()
	default:
		fmt.Fprintf(os.Stderr, "unknown account subcommand %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
}

func (c *accountCmd) create() subcommands.ExitStatus {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return fail(err)
	}
	currency := c.currency
	if currency == "" {
		currency = cfg.Currency
	}
	typ, err := finance.ParseAccountType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	limit := finance.M(0, currency)
	if c.limit != "" {
		if limit, err = finance.ParseMoney(c.limit, currency); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing credit limit: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	account, err := finance.NewAccount(c.name, typ, currency, limit)
	if err != nil {
		return fail(err)
	}

	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	if err := ledger.Store().PutAccount(account); err != nil {
		return fail(err)
	}
	fmt.Printf("Created %s account %q (%s) with id %s\n", account.Type, account.Name, account.Currency, account.ID)
	return subcommands.ExitSuccess
}

func (c *accountCmd) list() subcommands.ExitStatus {
	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	accounts, err := ledger.Store().Accounts()
	if err != nil {
		return fail(err)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })

	for _, a := range accounts {
		balance, err := ledger.Balance(a.ID, finance.Today())
		if err != nil {
			return fail(err)
		}
		state := ""
		if !a.Active {
			state = " (inactive)"
		}
		fmt.Printf("%s  %-20s %-8s %s%s\n", a.ID, a.Name, a.Type, balance.SignedString(), state)
	}
	return subcommands.ExitSuccess
}
