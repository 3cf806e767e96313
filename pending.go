package finance

import (
	"fmt"
	"time"
)

// Result is the per-id outcome of a bulk command.
type Result struct {
	ID  string
	Err error
}

// CreatePending validates and stores a manual pending transaction. The
// account must exist and be active, the amount must be non-zero and in the
// account's currency. Nothing is written when validation fails.
func (l *Ledger) CreatePending(accountID string, amount Money, category, description string, day Date) (Transaction, error) {
	account, err := l.store.Account(accountID)
	if err != nil {
		return Transaction{}, err
	}
	if amount.Currency() != account.Currency {
		return Transaction{}, fmt.Errorf("pending transaction on %q: %w: %s != %s",
			account.Name, ErrCurrencyMismatch, amount.Currency(), account.Currency)
	}
	tx, err := NewPending(accountID, amount, category, description, day, OriginManual, "")
	if err != nil {
		return Transaction{}, err
	}
	if err := l.store.PutTransaction(tx); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// CreatePendingTransfer validates and stores both legs of a transfer in one
// atomic write.
func (l *Ledger) CreatePendingTransfer(fromID, toID string, out, in Money, category, description string, day Date) (debit, credit Transaction, err error) {
	from, err := l.store.Account(fromID)
	if err != nil {
		return Transaction{}, Transaction{}, err
	}
	to, err := l.store.Account(toID)
	if err != nil {
		return Transaction{}, Transaction{}, err
	}
	debit, credit, err = NewTransferPair(from, to, out, in, category, description, day)
	if err != nil {
		return Transaction{}, Transaction{}, err
	}
	err = l.store.Batch(func(s Store) error {
		if err := s.PutTransaction(debit); err != nil {
			return err
		}
		return s.PutTransaction(credit)
	})
	if err != nil {
		return Transaction{}, Transaction{}, err
	}
	return debit, credit, nil
}

// PendingEdit carries the editable fields of a pending transaction. Nil
// fields are left unchanged.
type PendingEdit struct {
	Amount      *Money
	Category    *string
	Description *string
	Date        *Date
}

// EditPending mutates a pending transaction. Approved transactions are
// immutable; corrections to them require a new offsetting transaction.
// Editing the amount of a transfer leg whose counter leg carries the same
// currency mirrors the change onto the counter leg, keeping the pair
// invariant; legs in different currencies are edited independently.
func (l *Ledger) EditPending(id string, edit PendingEdit) (Transaction, error) {
	tx, err := l.store.Transaction(id)
	if err != nil {
		return Transaction{}, err
	}
	if tx.Status == StatusApproved {
		return Transaction{}, fmt.Errorf("edit transaction %s: %w", id, ErrImmutableApproved)
	}
	if tx.Status != StatusPending {
		return Transaction{}, fmt.Errorf("edit transaction %s: %w", id, ErrNotFound)
	}
	if edit.Amount != nil {
		if edit.Amount.IsZero() {
			return Transaction{}, fmt.Errorf("edit transaction %s: %w: amount is zero", id, ErrInvalidAmount)
		}
		if edit.Amount.Currency() != tx.Amount.Currency() {
			return Transaction{}, fmt.Errorf("edit transaction %s: %w: %s != %s",
				id, ErrCurrencyMismatch, edit.Amount.Currency(), tx.Amount.Currency())
		}
		tx.Amount = *edit.Amount
	}
	if edit.Category != nil {
		tx.Category = *edit.Category
	}
	if edit.Description != nil {
		tx.Description = *edit.Description
	}
	if edit.Date != nil && !edit.Date.IsZero() {
		tx.Date = *edit.Date
	}

	if tx.IsTransferLeg() && edit.Amount != nil {
		counter, err := l.counterLeg(tx)
		if err != nil {
			return Transaction{}, err
		}
		if counter.Amount.Currency() == tx.Amount.Currency() {
			counter.Amount = tx.Amount.Neg()
			err = l.store.Batch(func(s Store) error {
				if err := s.PutTransaction(tx); err != nil {
					return err
				}
				return s.PutTransaction(counter)
			})
			if err != nil {
				return Transaction{}, err
			}
			return tx, nil
		}
	}

	if err := l.store.PutTransaction(tx); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// counterLeg resolves the other leg of a transfer group.
func (l *Ledger) counterLeg(leg Transaction) (Transaction, error) {
	legs, err := l.store.Transactions(TxFilter{TransferGroup: leg.TransferGroup})
	if err != nil {
		return Transaction{}, err
	}
	for _, other := range legs {
		if other.ID != leg.ID {
			return other, nil
		}
	}
	return Transaction{}, fmt.Errorf("transfer group %s: %w", leg.TransferGroup, ErrIncompleteTransferGroup)
}

// Approve moves a pending transaction to the approved history. Transfer legs
// are approved as a group: both legs transition together or neither does.
// Ids that do not resolve to a pending transaction fail with ErrNotFound, so
// approving twice never double-applies.
func (l *Ledger) Approve(id string, at time.Time) error {
	tx, err := l.store.Transaction(id)
	if err != nil {
		return err
	}
	if tx.Status != StatusPending {
		return fmt.Errorf("approve transaction %s: not pending: %w", id, ErrNotFound)
	}
	if tx.IsTransferLeg() {
		return l.approveGroup(tx, at)
	}
	if _, err := l.store.Account(tx.AccountID); err != nil {
		return fmt.Errorf("approve transaction %s: account %s: %w", id, tx.AccountID, err)
	}
	tx.Status = StatusApproved
	tx.ApprovedAt = at.UTC()
	return l.store.PutTransaction(tx)
}

// approveGroup approves both legs of a transfer atomically. A missing leg or
// a missing counter account rejects the whole approval.
func (l *Ledger) approveGroup(leg Transaction, at time.Time) error {
	legs, err := l.store.Transactions(TxFilter{TransferGroup: leg.TransferGroup})
	if err != nil {
		return err
	}
	if len(legs) != 2 {
		return fmt.Errorf("transfer group %s has %d legs: %w", leg.TransferGroup, len(legs), ErrIncompleteTransferGroup)
	}
	for _, g := range legs {
		if g.Status != StatusPending {
			return fmt.Errorf("transfer group %s: leg %s is not pending: %w", leg.TransferGroup, g.ID, ErrIncompleteTransferGroup)
		}
		if _, err := l.store.Account(g.AccountID); err != nil {
			return fmt.Errorf("transfer group %s: account %s: %w", leg.TransferGroup, g.AccountID, ErrIncompleteTransferGroup)
		}
	}
	return l.store.Batch(func(s Store) error {
		for _, g := range legs {
			g.Status = StatusApproved
			g.ApprovedAt = at.UTC()
			if err := s.PutTransaction(g); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reject archives a pending transaction. It never affects a balance, and for
// subscription-generated items it leaves the subscription checkpoint alone:
// the cycle stays consumed and will not be regenerated. Transfer legs are
// rejected as a group.
func (l *Ledger) Reject(id string) error {
	tx, err := l.store.Transaction(id)
	if err != nil {
		return err
	}
	if tx.Status != StatusPending {
		return fmt.Errorf("reject transaction %s: not pending: %w", id, ErrNotFound)
	}
	if tx.IsTransferLeg() {
		legs, err := l.store.Transactions(TxFilter{TransferGroup: tx.TransferGroup})
		if err != nil {
			return err
		}
		return l.store.Batch(func(s Store) error {
			for _, g := range legs {
				g.Status = StatusRejected
				if err := s.PutTransaction(g); err != nil {
					return err
				}
			}
			return nil
		})
	}
	tx.Status = StatusRejected
	return l.store.PutTransaction(tx)
}

// BulkApprove applies Approve to each id, best effort: an invalid id reports
// its failure and the batch continues with the remainder.
func (l *Ledger) BulkApprove(ids []string, at time.Time) []Result {
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		results = append(results, Result{ID: id, Err: l.Approve(id, at)})
	}
	return results
}

// BulkReject applies Reject to each id, best effort.
func (l *Ledger) BulkReject(ids []string) []Result {
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		results = append(results, Result{ID: id, Err: l.Reject(id)})
	}
	return results
}
