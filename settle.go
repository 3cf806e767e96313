package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// SettleDebt converts a debt's payment into one approved transaction on the
// settlement account and marks the debt paid, linking it to the transaction.
// A debt owed by the user debits the account; a debt owed to the user credits
// it. The write is atomic: either the transaction exists and the debt is
// paid, or neither happened.
func (l *Ledger) SettleDebt(debtID, accountID string, now Date) (Transaction, error) {
	debt, err := l.store.Debt(debtID)
	if err != nil {
		return Transaction{}, err
	}
	if debt.Status != DebtOpen {
		return Transaction{}, fmt.Errorf("settle debt %q: %w", debt.Counterparty, ErrAlreadySettled)
	}
	account, err := l.store.Account(accountID)
	if err != nil {
		return Transaction{}, err
	}
	if debt.Amount.Currency() != account.Currency {
		return Transaction{}, fmt.Errorf("settle debt %q on account %q: %w: %s != %s",
			debt.Counterparty, account.Name, ErrCurrencyMismatch, debt.Amount.Currency(), account.Currency)
	}
	if now.IsZero() {
		now = Today()
	}

	amount := debt.Amount
	description := fmt.Sprintf("Received payment from %s", debt.Counterparty)
	if debt.Direction == OwedByMe {
		amount = amount.Neg()
		description = fmt.Sprintf("Paid debt to %s", debt.Counterparty)
	}
	tx := Transaction{
		ID:          uuid.NewString(),
		AccountID:   account.ID,
		Amount:      amount,
		Category:    "debt",
		Description: description,
		Date:        now,
		Status:      StatusApproved,
		Origin:      OriginDebt,
		OriginRef:   debt.ID,
		ApprovedAt:  time.Now().UTC(),
	}
	debt.Status = DebtPaid
	debt.SettledBy = tx.ID

	err = l.store.Batch(func(s Store) error {
		if err := s.PutTransaction(tx); err != nil {
			return err
		}
		return s.PutDebt(debt)
	})
	if err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// OverdueDebts returns the open debts past due on the given day, ordered by
// due date. Overdue is recomputed on demand, never stored.
func (l *Ledger) OverdueDebts(now Date) ([]Debt, error) {
	if now.IsZero() {
		now = Today()
	}
	debts, err := l.store.Debts()
	if err != nil {
		return nil, err
	}
	var overdue []Debt
	for _, d := range debts {
		if d.IsOverdue(now) {
			overdue = append(overdue, d)
		}
	}
	sort.Slice(overdue, func(i, j int) bool { return overdue[i].DueDate.Before(overdue[j].DueDate) })
	return overdue, nil
}
