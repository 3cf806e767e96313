package finance

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		currency string
		want     Money
		wantErr  bool
	}{
		{name: "simple decimal", in: "150.00", currency: "CHF", want: CHF(15000)},
		{name: "no fraction", in: "42", currency: "CHF", want: CHF(4200)},
		{name: "negative", in: "-0.05", currency: "CHF", want: CHF(-5)},
		{name: "single fractional digit", in: "9.5", currency: "EUR", want: EUR(950)},
		{name: "zero minor unit currency", in: "1200", currency: "JPY", want: JPY(1200)},
		{name: "too many fractional digits", in: "1.005", currency: "CHF", wantErr: true},
		{name: "fraction on integer currency", in: "12.5", currency: "JPY", wantErr: true},
		{name: "not a number", in: "abc", currency: "CHF", wantErr: true},
		{name: "unknown currency", in: "10.00", currency: "XXQ", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMoney(tc.in, tc.currency)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseMoney(%q, %q) = %v, want error", tc.in, tc.currency, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q, %q) error = %v", tc.in, tc.currency, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseMoney(%q, %q) = %v, want %v", tc.in, tc.currency, got, tc.want)
			}
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	sum, err := CHF(1000).Add(CHF(250))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !sum.Equal(CHF(1250)) {
		t.Errorf("Add() = %v, want %v", sum, CHF(1250))
	}

	diff, err := CHF(1000).Sub(CHF(1250))
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	if !diff.Equal(CHF(-250)) {
		t.Errorf("Sub() = %v, want %v", diff, CHF(-250))
	}

	if !CHF(-250).Neg().Equal(CHF(250)) {
		t.Errorf("Neg() = %v, want %v", CHF(-250).Neg(), CHF(250))
	}
	if !CHF(-250).Abs().Equal(CHF(250)) {
		t.Errorf("Abs() = %v, want %v", CHF(-250).Abs(), CHF(250))
	}
}

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m    Money
		want string // substring, symbol placement is the currency's business
	}{
		{CHF(15000), "150.00"},
		{CHF(-15000), "150.00"},
		{JPY(1200), "1,200"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); !strings.Contains(got, tc.want) {
			t.Errorf("String() = %q, want it to contain %q", got, tc.want)
		}
	}
	if got := CHF(15000).SignedString(); !strings.HasPrefix(got, "+") {
		t.Errorf("SignedString() = %q, want a leading +", got)
	}
	if got := CHF(0).SignedString(); got != "-" {
		t.Errorf("SignedString() of zero = %q, want -", got)
	}
}

func TestMoney_JSONRejectsUnknownCurrency(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`{"amount":100,"currency":"XXQ"}`), &m); err == nil {
		t.Fatal("unmarshal with an unknown currency tag succeeded, want error")
	}
	if err := json.Unmarshal([]byte(`{"amount":100,"currency":"CHF"}`), &m); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if !m.Equal(CHF(100)) {
		t.Errorf("unmarshal = %v, want %v", m, CHF(100))
	}
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	if _, err := CHF(100).Add(EUR(100)); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Add() across currencies error = %v, want ErrCurrencyMismatch", err)
	}
	if _, err := CHF(100).Sub(EUR(100)); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Sub() across currencies error = %v, want ErrCurrencyMismatch", err)
	}
	if _, err := CHF(100).Cmp(EUR(100)); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Cmp() across currencies error = %v, want ErrCurrencyMismatch", err)
	}
}

func TestMoney_Cmp(t *testing.T) {
	testCases := []struct {
		m, n Money
		want int
	}{
		{CHF(100), CHF(200), -1},
		{CHF(200), CHF(100), 1},
		{CHF(100), CHF(100), 0},
		{CHF(-100), CHF(0), -1},
	}
	for _, tc := range testCases {
		got, err := tc.m.Cmp(tc.n)
		if err != nil {
			t.Fatalf("Cmp(%v, %v) error = %v", tc.m, tc.n, err)
		}
		if got != tc.want {
			t.Errorf("Cmp(%v, %v) = %d, want %d", tc.m, tc.n, got, tc.want)
		}
	}
}
