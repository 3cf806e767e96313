package finance

import (
	"fmt"

	"github.com/google/uuid"
)

// DebtDirection tells who owes whom.
type DebtDirection string

const (
	// OwedByMe is money the user owes the counterparty.
	OwedByMe DebtDirection = "owed_by_me"
	// OwedToMe is money the counterparty owes the user.
	OwedToMe DebtDirection = "owed_to_me"
)

// ParseDebtDirection parses a string into a DebtDirection.
func ParseDebtDirection(s string) (DebtDirection, error) {
	switch DebtDirection(s) {
	case OwedByMe, OwedToMe:
		return DebtDirection(s), nil
	default:
		return "", fmt.Errorf("unknown debt direction %q", s)
	}
}

// DebtStatus is the stored lifecycle state of a debt. Overdue is a computed
// view derived from the due date, never stored.
type DebtStatus string

const (
	DebtOpen DebtStatus = "open"
	DebtPaid DebtStatus = "paid"
)

// Debt records money owed between the user and a counterparty. Settling it
// produces a linked transaction; the debt only keeps the transaction id, the
// transaction itself belongs to the store.
type Debt struct {
	ID           string        `json:"id"`
	Direction    DebtDirection `json:"direction"`
	Counterparty string        `json:"counterparty"`
	Amount       Money         `json:"amount"`
	DueDate      Date          `json:"due_date"`
	Status       DebtStatus    `json:"status"`
	SettledBy    string        `json:"settled_by,omitempty"`
}

// NewDebt creates an open debt. The amount must be positive.
func NewDebt(direction DebtDirection, counterparty string, amount Money, due Date) (Debt, error) {
	if counterparty == "" {
		return Debt{}, fmt.Errorf("debt counterparty is missing")
	}
	if !amount.IsPositive() {
		return Debt{}, fmt.Errorf("debt amount must be positive: %w", ErrInvalidAmount)
	}
	if err := ValidateCurrency(amount.Currency()); err != nil {
		return Debt{}, fmt.Errorf("invalid currency for debt: %w", err)
	}
	if due.IsZero() {
		due = Today()
	}
	return Debt{
		ID:           uuid.NewString(),
		Direction:    direction,
		Counterparty: counterparty,
		Amount:       amount,
		DueDate:      due,
		Status:       DebtOpen,
	}, nil
}

// IsOverdue reports whether the debt is open and past due on the given day.
func (d Debt) IsOverdue(now Date) bool {
	return d.Status == DebtOpen && d.DueDate.Before(now)
}
