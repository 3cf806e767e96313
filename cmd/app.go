// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	finance "github.com/dberweger2017/Flet-finance"
	"github.com/dberweger2017/Flet-finance/store"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&accountCmd{}, "accounts")
	c.Register(&reconcileCmd{}, "accounts")

	c.Register(&addCmd{}, "transactions")
	c.Register(&transferCmd{}, "transactions")
	c.Register(&pendingCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&approveCmd{}, "transactions")
	c.Register(&rejectCmd{}, "transactions")

	c.Register(&subscriptionCmd{}, "subscriptions")

	c.Register(&debtCmd{}, "debts")

	c.Register(&overviewCmd{}, "reports")

	c.Register(&serveCmd{}, "server")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the config file (defaults to finance.yaml if it exists)")
var dbFile = flag.String("db", "", "Path to the ledger database file (overrides the config)")

// openLedger opens the configured database and wraps it in a ledger.
// The returned close function must be called before the process exits.
func openLedger() (*finance.Ledger, func() error, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, nil, err
	}
	path := cfg.DB
	if *dbFile != "" {
		path = *dbFile
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database %q: %w", path, err)
	}
	return finance.NewLedger(db), db.Close, nil
}

// fail prints the error and converts it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
