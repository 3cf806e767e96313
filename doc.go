// Package finance implements a personal ledger engine that derives account
// balances from a set of approved transactions while holding a separate queue
// of pending transactions that require explicit approval before they affect
// any balance.
//
// The core functionalities include:
//   - Account Ledger: balances, available balances, liquidity and net worth,
//     always recomputed as pure folds over the approved transaction history,
//     never cached as mutable state.
//   - Pending Lifecycle: creation, editing, approval and rejection of pending
//     transactions, with transfer pairs approved or rejected atomically.
//   - Subscription Scheduler: deterministic, idempotent emission of pending
//     transactions for due subscription cycles, one per missed cycle.
//   - Debt Settlement: converting a debt's payment into a linked approved
//     transaction in a single atomic write.
//   - Reconciliation: one-shot adjustment aligning a computed balance with an
//     externally reported statement balance.
//
// Monetary values are integer minor units tagged with a currency; arithmetic
// between currencies always fails, nothing is ever converted implicitly.
//
// This package serves as the foundational logic for the `flet` command-line
// tool and the dashboard API; persistence is delegated to a storage
// collaborator defined by the Store interface.
package finance
