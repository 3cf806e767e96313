package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	finance "github.com/dberweger2017/Flet-finance"
)

// debtCmd tracks money owed to or by the user and settles it against an
// account.
type debtCmd struct {
	direction    string
	counterparty string
	amount       string
	currency     string
	due          string
	account      string
	date         string
}

func (*debtCmd) Name() string     { return "debt" }
func (*debtCmd) Synopsis() string { return "track and settle debts" }
func (*debtCmd) Usage() string {
	return `debt new -who <counterparty> -m <amount> [-dir <owed_by_me|owed_to_me>] [-due <date>] [-c <currency>]
debt ls
debt overdue
debt settle <debt_id> -a <account_id> [-d <date>]

  Tracks debts outside the account ledger. Settling a debt records an
  approved transaction on the chosen account and marks the debt paid, both
  or neither.
`
}

func (c *debtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.direction, "dir", "owed_by_me", "Debt direction: owed_by_me or owed_to_me.")
	f.StringVar(&c.counterparty, "who", "", "Counterparty name.")
	f.StringVar(&c.amount, "m", "", "Debt amount (positive).")
	f.StringVar(&c.currency, "c", "", "Currency code. Defaults to the configured currency.")
	f.StringVar(&c.due, "due", "", "Due date, defaults to today.")
	f.StringVar(&c.account, "a", "", "Account to settle against.")
	f.StringVar(&c.date, "d", "", "Settlement date, defaults to today.")
}

func (c *debtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch f.Arg(0) {
	case "new":
		return c.create()
	case "ls", "":
		return c.list(false)
	case "overdue":
		return c.list(true)
	case "settle":
		return c.settle(f.Arg(1))
	default:
		fmt.Fprintf(os.Stderr, "unknown debt subcommand %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
}

func (c *debtCmd) create() subcommands.ExitStatus {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return fail(err)
	}
	currency := c.currency
	if currency == "" {
		currency = cfg.Currency
	}
	direction, err := finance.ParseDebtDirection(c.direction)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	amount, err := finance.ParseMoney(c.amount, currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	due := finance.Today()
	if c.due != "" {
		if due, err = finance.ParseDate(c.due); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing due date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	debt, err := finance.NewDebt(direction, c.counterparty, amount, due)
	if err != nil {
		return fail(err)
	}

	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	if err := ledger.Store().PutDebt(debt); err != nil {
		return fail(err)
	}
	fmt.Printf("Created debt %s: %s %s, due %s, id %s\n", debt.Direction, debt.Amount, debt.Counterparty, debt.DueDate, debt.ID)
	return subcommands.ExitSuccess
}

func (c *debtCmd) list(overdueOnly bool) subcommands.ExitStatus {
	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	var debts []finance.Debt
	if overdueOnly {
		debts, err = ledger.OverdueDebts(finance.Today())
	} else {
		debts, err = ledger.Store().Debts()
	}
	if err != nil {
		return fail(err)
	}
	for _, d := range debts {
		state := string(d.Status)
		if d.IsOverdue(finance.Today()) {
			state = "overdue"
		}
		fmt.Printf("%s  %-12s %-20s %s due %s (%s)\n", d.ID, d.Direction, d.Counterparty, d.Amount, d.DueDate, state)
	}
	return subcommands.ExitSuccess
}

func (c *debtCmd) settle(debtID string) subcommands.ExitStatus {
	if debtID == "" || c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: debt settle <debt_id> -a <account_id>")
		return subcommands.ExitUsageError
	}
	day := finance.Today()
	if c.date != "" {
		var err error
		if day, err = finance.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	tx, err := ledger.SettleDebt(debtID, c.account, day)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Settled debt %s: recorded %s on %s\n", debtID, tx.Amount.SignedString(), tx.Date)
	return subcommands.ExitSuccess
}
