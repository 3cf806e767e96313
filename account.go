package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AccountType is a typed string classifying an account.
type AccountType string

const (
	Debit   AccountType = "debit"
	Credit  AccountType = "credit"
	Savings AccountType = "savings"
)

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case Debit, Credit, Savings:
		return AccountType(s), nil
	default:
		return "", fmt.Errorf("unknown account type %q", s)
	}
}

// Account holds the metadata of a ledger account. Its balance is never stored
// here: it is always recomputed from the approved transaction set.
type Account struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	Currency    string      `json:"currency"`
	CreditLimit Money       `json:"credit_limit"`
	Created     time.Time   `json:"created"`
	Active      bool        `json:"active"`
}

// NewAccount creates an account. The credit limit must be zero for non-credit
// accounts and non-negative (in the account currency) for credit accounts.
func NewAccount(name string, typ AccountType, currency string, creditLimit Money) (Account, error) {
	if name == "" {
		return Account{}, fmt.Errorf("account name is missing")
	}
	if err := ValidateCurrency(currency); err != nil {
		return Account{}, fmt.Errorf("invalid currency for account %q: %w", name, err)
	}
	if creditLimit.IsZero() {
		creditLimit = M(0, currency)
	}
	if creditLimit.Currency() != currency {
		return Account{}, fmt.Errorf("credit limit of account %q: %w: %s != %s",
			name, ErrCurrencyMismatch, creditLimit.Currency(), currency)
	}
	if creditLimit.IsNegative() {
		return Account{}, fmt.Errorf("credit limit of account %q must not be negative, got %s", name, creditLimit)
	}
	if typ != Credit && !creditLimit.IsZero() {
		return Account{}, fmt.Errorf("account %q of type %s cannot have a credit limit", name, typ)
	}
	return Account{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        typ,
		Currency:    currency,
		CreditLimit: creditLimit,
		Created:     time.Now().UTC(),
		Active:      true,
	}, nil
}

// Available returns the available balance given the computed balance:
// balance plus credit limit for credit accounts, the balance itself otherwise.
func (a Account) Available(balance Money) (Money, error) {
	if a.Type != Credit {
		return balance, nil
	}
	return balance.Add(a.CreditLimit)
}

// Spendable reports whether the account counts towards liquidity.
func (a Account) Spendable() bool { return a.Type == Debit || a.Type == Savings }
