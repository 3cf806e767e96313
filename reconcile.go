package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reconcile aligns an account's computed balance with an externally reported
// statement balance. A non-zero delta produces exactly one approved adjusting
// transaction dated asOf, so the balance equals the statement immediately
// after. A zero delta is a no-op and adjusted reports false. Reconciliation
// never touches pending items and never retries; it is a one-shot adjustment
// triggered by explicit user input.
func (l *Ledger) Reconcile(accountID string, statement Money, asOf Date) (tx Transaction, adjusted bool, err error) {
	account, err := l.store.Account(accountID)
	if err != nil {
		return Transaction{}, false, err
	}
	if statement.Currency() != account.Currency {
		return Transaction{}, false, fmt.Errorf("reconcile account %q: %w: %s != %s",
			account.Name, ErrCurrencyMismatch, statement.Currency(), account.Currency)
	}
	if asOf.IsZero() {
		asOf = Today()
	}
	balance, err := l.Balance(accountID, asOf)
	if err != nil {
		return Transaction{}, false, err
	}
	delta, err := statement.Sub(balance)
	if err != nil {
		return Transaction{}, false, err
	}
	if delta.IsZero() {
		return Transaction{}, false, nil // already balanced
	}
	tx = Transaction{
		ID:          uuid.NewString(),
		AccountID:   account.ID,
		Amount:      delta,
		Category:    "adjustment",
		Description: fmt.Sprintf("Reconciliation against statement balance %s", statement),
		Date:        asOf,
		Status:      StatusApproved,
		Origin:      OriginReconciliation,
		ApprovedAt:  time.Now().UTC(),
	}
	if err := l.store.PutTransaction(tx); err != nil {
		return Transaction{}, false, err
	}
	return tx, true, nil
}
