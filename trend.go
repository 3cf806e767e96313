package finance

import (
	"fmt"
	"sort"
	"time"
)

// TrendPoint is one daily sample of a per-currency series.
type TrendPoint struct {
	Date   Date             `json:"date"`
	Totals map[string]Money `json:"totals"`
}

// MonthPoint is one monthly sample of a per-currency series.
type MonthPoint struct {
	Year   int              `json:"year"`
	Month  time.Month       `json:"month"`
	Totals map[string]Money `json:"totals"`
}

// LiquidityTrend samples the liquidity once per day over the trailing window
// of the given length ending at now, oldest day first.
func (l *Ledger) LiquidityTrend(now Date, days int) ([]TrendPoint, error) {
	return l.availableTrend(now, days, func(a Account) bool { return a.Active && a.Spendable() }, false)
}

// NetWorthTrend samples the net worth once per day over the trailing window
// of the given length ending at now, oldest day first. Debts carry no status
// history, so the currently open ones adjust every sample of the window.
func (l *Ledger) NetWorthTrend(now Date, days int) ([]TrendPoint, error) {
	return l.availableTrend(now, days, func(a Account) bool { return a.Active }, true)
}

// availableTrend folds each account's approved history once, advancing a
// running balance through the day series instead of recomputing a full
// balance per day.
func (l *Ledger) availableTrend(now Date, days int, include func(Account) bool, withDebts bool) ([]TrendPoint, error) {
	if days < 1 {
		return nil, fmt.Errorf("trend window must be at least one day, got %d", days)
	}
	if now.IsZero() {
		now = Today()
	}
	accounts, err := l.store.Accounts()
	if err != nil {
		return nil, err
	}
	points := make([]TrendPoint, days)
	for i := range points {
		points[i] = TrendPoint{Date: now.AddDays(i - days + 1), Totals: make(map[string]Money)}
	}
	for _, a := range accounts {
		if !include(a) {
			continue
		}
		txs, err := l.store.Transactions(TxFilter{AccountID: a.ID, Status: StatusApproved, To: now})
		if err != nil {
			return nil, err
		}
		sort.Slice(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
		balance := M(0, a.Currency)
		next := 0
		for i := range points {
			for next < len(txs) && !txs[next].Date.After(points[i].Date) {
				balance, err = balance.Add(txs[next].Amount)
				if err != nil {
					return nil, fmt.Errorf("balance of account %q on %s: %w", a.Name, points[i].Date, err)
				}
				next++
			}
			available, err := a.Available(balance)
			if err != nil {
				return nil, err
			}
			if err := addToTotals(points[i].Totals, available); err != nil {
				return nil, err
			}
		}
	}
	if withDebts {
		debts, err := l.store.Debts()
		if err != nil {
			return nil, err
		}
		for _, d := range debts {
			if d.Status != DebtOpen {
				continue
			}
			amount := d.Amount
			if d.Direction == OwedByMe {
				amount = amount.Neg()
			}
			for i := range points {
				if err := addToTotals(points[i].Totals, amount); err != nil {
					return nil, err
				}
			}
		}
	}
	return points, nil
}

// MonthlySavings returns the savings contribution of each of the trailing
// months ending at now's month, oldest month first.
func (l *Ledger) MonthlySavings(now Date, months int) ([]MonthPoint, error) {
	if months < 1 {
		return nil, fmt.Errorf("savings window must be at least one month, got %d", months)
	}
	if now.IsZero() {
		now = Today()
	}
	series := make([]MonthPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		first := NewDate(now.Year(), now.Month()-time.Month(i), 1)
		totals, err := l.SavingsContribution(first.Year(), first.Month())
		if err != nil {
			return nil, err
		}
		series = append(series, MonthPoint{Year: first.Year(), Month: first.Month(), Totals: totals})
	}
	return series, nil
}
