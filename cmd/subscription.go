package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	finance "github.com/dberweger2017/Flet-finance"
)

// subscriptionCmd manages recurring charges and generates their due
// transactions.
type subscriptionCmd struct {
	name      string
	account   string
	amount    string
	frequency string
	anchor    int
	date      string
}

func (*subscriptionCmd) Name() string     { return "sub" }
func (*subscriptionCmd) Synopsis() string { return "manage recurring subscriptions" }
func (*subscriptionCmd) Usage() string {
	return `sub new -name <name> -a <account_id> -m <amount> [-f <frequency>] [-day <n>]
sub ls
sub generate [-d <date>]

  Manages recurring subscriptions. "generate" emits one pending charge per
  elapsed billing cycle up to the given date; running it twice never
  duplicates charges.
`
}

func (c *subscriptionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Subscription name.")
	f.StringVar(&c.account, "a", "", "Account the charge is taken from.")
	f.StringVar(&c.amount, "m", "", "Charge amount per cycle (positive).")
	f.StringVar(&c.frequency, "f", "monthly", "Billing frequency: monthly, quarterly or yearly.")
	f.IntVar(&c.anchor, "day", 1, "Billing day of month (1-31, clamped to short months).")
	f.StringVar(&c.date, "d", "", "Generation cutoff date, defaults to today.")
}

func (c *subscriptionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch f.Arg(0) {
	case "new":
		return c.create()
	case "ls", "":
		return c.list()
	case "generate":
		return c.generate()
	default:
		fmt.Fprintf(os.Stderr, "unknown sub subcommand %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
}

func (c *subscriptionCmd) create() subcommands.ExitStatus {
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
	freq, err := finance.ParseFrequency(c.frequency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	sub, err := finance.NewSubscription(c.name, amount, account.ID, freq, c.anchor, finance.Today())
	if err != nil {
		return fail(err)
	}
	if err := ledger.Store().PutSubscription(sub); err != nil {
		return fail(err)
	}
	fmt.Printf("Created subscription %q (%s every %s, day %d) with id %s\n",
		sub.Name, sub.Amount, sub.Frequency, sub.Anchor, sub.ID)
	return subcommands.ExitSuccess
}

func (c *subscriptionCmd) list() subcommands.ExitStatus {
	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	subs, err := ledger.Store().Subscriptions()
	if err != nil {
		return fail(err)
	}
	for _, s := range subs {
		state := ""
		if s.Status == finance.SubscriptionPaused {
			state = " (paused)"
		}
		fmt.Printf("%s  %-20s %s every %s, day %d%s\n", s.ID, s.Name, s.Amount, s.Frequency, s.Anchor, state)
	}
	return subcommands.ExitSuccess
}

func (c *subscriptionCmd) generate() subcommands.ExitStatus {
	now := finance.Today()
	if c.date != "" {
		var err error
		if now, err = finance.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	generated, err := ledger.GenerateDueSubscriptionTransactions(now)
	if err != nil {
		return fail(err)
	}
	if len(generated) == 0 {
		fmt.Println("No subscription charges due.")
		return subcommands.ExitSuccess
	}
	for _, tx := range generated {
		fmt.Printf("Generated %s: %s %q on %s\n", tx.ID, tx.Amount.SignedString(), tx.Description, tx.Date)
	}
	return subcommands.ExitSuccess
}
