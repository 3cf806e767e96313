package finance

import (
	"fmt"

	"github.com/google/uuid"
)

// SubscriptionStatus is the state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive SubscriptionStatus = "active"
	SubscriptionPaused SubscriptionStatus = "paused"
)

// Subscription describes a recurring charge against a target account. The
// scheduler derives due cycle dates from the frequency and the anchor day,
// and uses LastGenerated as the per-subscription checkpoint that makes
// generation idempotent.
type Subscription struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Amount    Money              `json:"amount"`
	AccountID string             `json:"account_id"`
	Frequency Frequency          `json:"frequency"`
	Anchor    int                `json:"anchor"` // day of the cycle month, clamped to month length
	Status    SubscriptionStatus `json:"status"`
	Created   Date               `json:"created"`
	// LastGenerated is the most recent cycle date a pending transaction was
	// emitted for. Zero means never generated. It only advances.
	LastGenerated Date `json:"last_generated,omitzero"`
}

// NewSubscription creates an active subscription. The amount is the positive
// cost of one cycle, in the target account's currency.
func NewSubscription(name string, amount Money, accountID string, frequency Frequency, anchor int, created Date) (Subscription, error) {
	if name == "" {
		return Subscription{}, fmt.Errorf("subscription name is missing")
	}
	if !amount.IsPositive() {
		return Subscription{}, fmt.Errorf("subscription amount must be positive: %w", ErrInvalidAmount)
	}
	if accountID == "" {
		return Subscription{}, fmt.Errorf("subscription target account is missing: %w", ErrNotFound)
	}
	if anchor < 1 || anchor > 31 {
		return Subscription{}, fmt.Errorf("subscription anchor day must be in [1,31], got %d", anchor)
	}
	if created.IsZero() {
		created = Today()
	}
	return Subscription{
		ID:        uuid.NewString(),
		Name:      name,
		Amount:    amount,
		AccountID: accountID,
		Frequency: frequency,
		Anchor:    anchor,
		Status:    SubscriptionActive,
		Created:   created,
	}, nil
}

// firstCycle returns the first cycle date on or after the creation date.
func (s Subscription) firstCycle() Date {
	first := NewDate(s.Created.Year(), s.Created.Month(), clampDay(s.Created.Year(), s.Created.Month(), s.Anchor))
	if first.Before(s.Created) {
		return s.advance(first)
	}
	return first
}

// advance returns the cycle date one frequency step after the given cycle.
// The anchor day is re-applied from scratch so that a clamped cycle
// (e.g. Feb 28 for anchor 31) does not stick to the clamped day.
func (s Subscription) advance(cycle Date) Date {
	next := NewDate(cycle.Year(), cycle.Month()+1, 1).AddMonths(s.Frequency.Months() - 1)
	return NewDate(next.Year(), next.Month(), clampDay(next.Year(), next.Month(), s.Anchor))
}

// DueDates returns the cycle dates due for generation, in chronological
// order: every cycle after LastGenerated (or from creation when never
// generated) up to and including now. Paused subscriptions are never due.
// Missed cycles are all reported, one date per cycle, never collapsed.
func (s Subscription) DueDates(now Date) []Date {
	if s.Status != SubscriptionActive {
		return nil
	}
	var due []Date
	for cycle := s.firstCycle(); !cycle.After(now); cycle = s.advance(cycle) {
		if s.LastGenerated.IsZero() || cycle.After(s.LastGenerated) {
			due = append(due, cycle)
		}
	}
	return due
}

// pendingCharge builds the pending transaction for one due cycle. The charge
// debits the target account, so the amount is negated.
func (s Subscription) pendingCharge(cycle Date) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		AccountID:   s.AccountID,
		Amount:      s.Amount.Neg(),
		Category:    "subscription",
		Description: fmt.Sprintf("Subscription: %s", s.Name),
		Date:        cycle,
		Status:      StatusPending,
		Origin:      OriginSubscription,
		OriginRef:   s.ID,
	}
}
