package finance

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value as integer minor units (cents) tagged with
// an ISO 4217 currency code. Arithmetic between different currencies fails
// with ErrCurrencyMismatch; no implicit conversion exists anywhere in the core.
type Money struct {
	value int64 // minor units
	cur   string
}

// M creates a Money from minor units.
func M(minor int64, currency string) Money {
	return Money{value: minor, cur: currency}
}

// ParseMoney parses a major-unit decimal string like "150.00" into a Money.
// It rejects values with more fractional digits than the currency carries.
func ParseMoney(s, currency string) (Money, error) {
	if err := ValidateCurrency(currency); err != nil {
		return Money{}, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}
	fraction := int32(money.GetCurrency(currency).Fraction)
	shifted := d.Shift(fraction)
	if !shifted.IsInteger() {
		return Money{}, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, s, fraction)
	}
	return Money{value: shifted.IntPart(), cur: currency}, nil
}

// ValidateCurrency reports whether code names a known ISO currency.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

// Currency returns the currency tag.
func (m Money) Currency() string { return m.cur }

// MinorUnits returns the raw value in minor units.
func (m Money) MinorUnits() int64 { return m.value }

func (m Money) IsZero() bool     { return m.value == 0 }
func (m Money) IsPositive() bool { return m.value > 0 }
func (m Money) IsNegative() bool { return m.value < 0 }

// Neg returns the amount with the opposite sign.
func (m Money) Neg() Money { return Money{value: -m.value, cur: m.cur} }

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	if m.value < 0 {
		return m.Neg()
	}
	return m
}

// Equal reports whether both value and currency are identical.
func (m Money) Equal(n Money) bool { return m.value == n.value && m.cur == n.cur }

// sameCurrency guards binary operations against cross-currency mixing.
func (m Money) sameCurrency(n Money) error {
	if m.cur != n.cur {
		return fmt.Errorf("%w: %s != %s", ErrCurrencyMismatch, m.cur, n.cur)
	}
	return nil
}

// Add returns m+n or ErrCurrencyMismatch.
func (m Money) Add(n Money) (Money, error) {
	if err := m.sameCurrency(n); err != nil {
		return Money{}, err
	}
	return Money{value: m.value + n.value, cur: m.cur}, nil
}

// Sub returns m-n or ErrCurrencyMismatch.
func (m Money) Sub(n Money) (Money, error) {
	if err := m.sameCurrency(n); err != nil {
		return Money{}, err
	}
	return Money{value: m.value - n.value, cur: m.cur}, nil
}

// Cmp compares m and n: -1 if m<n, 0 if equal, +1 if m>n.
func (m Money) Cmp(n Money) (int, error) {
	if err := m.sameCurrency(n); err != nil {
		return 0, err
	}
	switch {
	case m.value < n.value:
		return -1, nil
	case m.value > n.value:
		return 1, nil
	default:
		return 0, nil
	}
}

// Decimal returns the value in major units.
func (m Money) Decimal() decimal.Decimal {
	fraction := int32(m.currency().Fraction)
	return decimal.New(m.value, 0).Shift(-fraction)
}

// currency returns a never-nil currency definition.
func (m Money) currency() *money.Currency {
	return money.New(0, m.cur).Currency()
}

// String formats the amount with its currency symbol, e.g. "CHF 150.00".
func (m Money) String() string {
	return m.currency().Formatter().Format(m.value)
}

// SignedString is like String but with an explicit sign, and "-" for zero.
func (m Money) SignedString() string {
	switch {
	case m.value == 0:
		return "-"
	case m.value > 0:
		return "+" + m.String()
	default:
		return m.String()
	}
}

type moneyJSON struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON persists the amount in minor units next to its currency tag.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.value, Currency: m.cur})
}

// UnmarshalJSON implements the json.Unmarshaler interface for Money.
func (m *Money) UnmarshalJSON(data []byte) error {
	var temp moneyJSON
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if err := ValidateCurrency(temp.Currency); err != nil {
		return err
	}
	m.value = temp.Amount
	m.cur = temp.Currency
	return nil
}

var _ json.Marshaler = Money{}
var _ json.Unmarshaler = (*Money)(nil)
