package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
)

// approveCmd confirms pending transactions so they hit the balance.
type approveCmd struct{}

func (*approveCmd) Name() string     { return "approve" }
func (*approveCmd) Synopsis() string { return "approve pending transactions" }
func (*approveCmd) Usage() string {
	return `approve <id> [<id>...]

  Approves the given pending transactions. Approving a transfer leg approves
  both legs of the transfer. Already approved or unknown ids are reported but
  do not stop the remaining ones.
`
}

func (c *approveCmd) SetFlags(f *flag.FlagSet) {}

func (c *approveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids := f.Args()
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one transaction id is required.")
		return subcommands.ExitUsageError
	}

	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	status := subcommands.ExitSuccess
	for _, res := range ledger.BulkApprove(ids, time.Now()) {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.ID, res.Err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("Approved %s\n", res.ID)
	}
	return status
}

// rejectCmd archives pending transactions without touching the balance.
type rejectCmd struct{}

func (*rejectCmd) Name() string     { return "reject" }
func (*rejectCmd) Synopsis() string { return "reject pending transactions" }
func (*rejectCmd) Usage() string {
	return `reject <id> [<id>...]

  Rejects the given pending transactions. Rejected transactions are kept for
  the record but never affect any balance. Rejecting a transfer leg rejects
  both legs.
`
}

func (c *rejectCmd) SetFlags(f *flag.FlagSet) {}

func (c *rejectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids := f.Args()
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one transaction id is required.")
		return subcommands.ExitUsageError
	}

	ledger, closeDB, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer closeDB()

	status := subcommands.ExitSuccess
	for _, res := range ledger.BulkReject(ids) {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.ID, res.Err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("Rejected %s\n", res.ID)
	}
	return status
}
