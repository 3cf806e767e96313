package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a transaction.
type Status string

const (
	// StatusPending marks a transaction that does not affect any balance yet.
	StatusPending Status = "pending"
	// StatusApproved marks a transaction counted by every balance fold. Terminal.
	StatusApproved Status = "approved"
	// StatusRejected marks a discarded pending transaction, kept for audit but
	// never counted. Terminal.
	StatusRejected Status = "rejected"
)

// Origin identifies the subsystem that created a transaction.
type Origin string

const (
	OriginManual         Origin = "manual"
	OriginSubscription   Origin = "subscription"
	OriginDebt           Origin = "debt"
	OriginReconciliation Origin = "reconciliation"
	OriginTransfer       Origin = "transfer"
)

// Transaction is a single signed movement on one account. A transfer between
// two accounts is a pair of transactions sharing a TransferGroup, one leg per
// account, with opposite signs. Each leg is tagged with its own account's
// currency; the core never converts between the two.
type Transaction struct {
	ID               string    `json:"id"`
	AccountID        string    `json:"account_id"`
	CounterAccountID string    `json:"counter_account_id,omitempty"`
	Amount           Money     `json:"amount"`
	Category         string    `json:"category,omitempty"`
	Description      string    `json:"description,omitempty"`
	Date             Date      `json:"date"`
	Status           Status    `json:"status"`
	Origin           Origin    `json:"origin"`
	OriginRef        string    `json:"origin_ref,omitempty"`
	TransferGroup    string    `json:"transfer_group,omitempty"`
	ApprovedAt       time.Time `json:"approved_at,omitzero"`
}

// NewPending creates a pending transaction. The amount must be non-zero and
// the date defaults to today.
func NewPending(accountID string, amount Money, category, description string, day Date, origin Origin, originRef string) (Transaction, error) {
	if accountID == "" {
		return Transaction{}, fmt.Errorf("pending transaction: account reference is missing: %w", ErrNotFound)
	}
	if amount.IsZero() {
		return Transaction{}, fmt.Errorf("pending transaction: %w: amount is zero", ErrInvalidAmount)
	}
	if day.IsZero() {
		day = Today()
	}
	return Transaction{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        day,
		Status:      StatusPending,
		Origin:      origin,
		OriginRef:   originRef,
	}, nil
}

// NewTransferPair creates the two pending legs of a transfer: a debit leg on
// the source account and a credit leg on the destination account, sharing a
// fresh transfer group. Out and in are the positive amounts leaving and
// arriving, each in its own account's currency. When both accounts share a
// currency the absolute amounts must match.
func NewTransferPair(from, to Account, out, in Money, category, description string, day Date) (debit, credit Transaction, err error) {
	if !out.IsPositive() || !in.IsPositive() {
		return Transaction{}, Transaction{}, fmt.Errorf("transfer: %w: amounts must be positive", ErrInvalidAmount)
	}
	if out.Currency() != from.Currency {
		return Transaction{}, Transaction{}, fmt.Errorf("transfer out leg: %w: %s != %s", ErrCurrencyMismatch, out.Currency(), from.Currency)
	}
	if in.Currency() != to.Currency {
		return Transaction{}, Transaction{}, fmt.Errorf("transfer in leg: %w: %s != %s", ErrCurrencyMismatch, in.Currency(), to.Currency)
	}
	if from.Currency == to.Currency && !out.Equal(in) {
		return Transaction{}, Transaction{}, fmt.Errorf("transfer: %w: legs must carry the same amount, got %s and %s", ErrInvalidAmount, out, in)
	}
	if day.IsZero() {
		day = Today()
	}
	group := uuid.NewString()
	debit = Transaction{
		ID:               uuid.NewString(),
		AccountID:        from.ID,
		CounterAccountID: to.ID,
		Amount:           out.Neg(),
		Category:         category,
		Description:      description,
		Date:             day,
		Status:           StatusPending,
		Origin:           OriginTransfer,
		TransferGroup:    group,
	}
	credit = Transaction{
		ID:               uuid.NewString(),
		AccountID:        to.ID,
		CounterAccountID: from.ID,
		Amount:           in,
		Category:         category,
		Description:      description,
		Date:             day,
		Status:           StatusPending,
		Origin:           OriginTransfer,
		TransferGroup:    group,
	}
	return debit, credit, nil
}

// IsTransferLeg reports whether the transaction belongs to a transfer group.
func (t Transaction) IsTransferLeg() bool { return t.TransferGroup != "" }
