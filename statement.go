package finance

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// StatementBalance extracts the closing balance out of a bank statement
// export (JSON) using a jsonpath expression configured per account, and
// returns it as a Money in the given currency. The value may be a JSON
// number or a decimal string.
func StatementBalance(r io.Reader, path, currency string) (Money, error) {
	if err := ValidateCurrency(currency); err != nil {
		return Money{}, err
	}
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return Money{}, fmt.Errorf("reading statement: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return Money{}, fmt.Errorf("extracting statement balance: %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	switch v := jval.(type) {
	case float64:
		d := decimal.NewFromFloat(v)
		return moneyFromDecimal(d, currency)
	case string:
		return ParseMoney(v, currency)
	default:
		return Money{}, fmt.Errorf("extracting statement balance: %q: not a number: %v", path, jval)
	}
}

func moneyFromDecimal(d decimal.Decimal, currency string) (Money, error) {
	m, err := ParseMoney(d.String(), currency)
	if err != nil {
		return Money{}, fmt.Errorf("statement balance %s: %w", d, err)
	}
	return m, nil
}
