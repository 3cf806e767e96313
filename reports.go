package finance

import "sort"

// AccountLine is the per-account row of an Overview.
type AccountLine struct {
	Account   Account `json:"account"`
	Balance   Money   `json:"balance"`
	Available Money   `json:"available"`
}

// Overview is the at-a-glance state of the ledger consumed by the dashboard:
// per-account balances, the pending queue, overdue debts and the per-currency
// aggregates.
type Overview struct {
	Date            Date             `json:"date"`
	Accounts        []AccountLine    `json:"accounts"`
	Liquidity       map[string]Money `json:"liquidity"`
	NetWorth        map[string]Money `json:"net_worth"`
	Pending         []Transaction    `json:"pending"`
	DuePendingCount int              `json:"due_pending_count"`
	OverdueDebts    []Debt           `json:"overdue_debts"`
}

// Overview assembles the dashboard view of the ledger on a given day.
func (l *Ledger) Overview(now Date) (*Overview, error) {
	if now.IsZero() {
		now = Today()
	}
	accounts, err := l.store.Accounts()
	if err != nil {
		return nil, err
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })

	o := &Overview{Date: now}
	for _, a := range accounts {
		if !a.Active {
			continue
		}
		balance, err := l.Balance(a.ID, now)
		if err != nil {
			return nil, err
		}
		available, err := a.Available(balance)
		if err != nil {
			return nil, err
		}
		o.Accounts = append(o.Accounts, AccountLine{Account: a, Balance: balance, Available: available})
	}
	if o.Liquidity, err = l.Liquidity(); err != nil {
		return nil, err
	}
	if o.NetWorth, err = l.NetWorth(); err != nil {
		return nil, err
	}
	if o.Pending, err = l.Pending(); err != nil {
		return nil, err
	}
	if o.DuePendingCount, err = l.DuePendingCount(now); err != nil {
		return nil, err
	}
	if o.OverdueDebts, err = l.OverdueDebts(now); err != nil {
		return nil, err
	}
	return o, nil
}
