package finance

import (
	"fmt"
	"sort"
	"time"
)

// Ledger is the reconciliation core: every query and command of the system
// goes through it. Balances are pure folds over the approved transaction set
// in the store; nothing here caches a balance, so there is no drift to manage.
type Ledger struct {
	store Store
}

// NewLedger creates a ledger over a storage collaborator.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Store exposes the underlying storage collaborator, for record creation at
// the boundary (accounts, debts, subscriptions).
func (l *Ledger) Store() Store { return l.store }

// Balance computes the balance of an account on a given day: the sum of the
// signed amounts of every approved transaction on the account dated on or
// before asOf. With the transfer-pair model each account's side of a transfer
// is its own leg, so folding primary legs covers transfers too.
func (l *Ledger) Balance(accountID string, asOf Date) (Money, error) {
	account, err := l.store.Account(accountID)
	if err != nil {
		return Money{}, err
	}
	if asOf.IsZero() {
		asOf = Today()
	}
	txs, err := l.store.Transactions(TxFilter{AccountID: accountID, Status: StatusApproved, To: asOf})
	if err != nil {
		return Money{}, err
	}
	balance := M(0, account.Currency)
	for _, tx := range txs {
		balance, err = balance.Add(tx.Amount)
		if err != nil {
			return Money{}, fmt.Errorf("balance of account %q on %s: %w", account.Name, asOf, err)
		}
	}
	return balance, nil
}

// AvailableBalance computes the balance adjusted for the credit limit on
// credit accounts.
func (l *Ledger) AvailableBalance(accountID string) (Money, error) {
	account, err := l.store.Account(accountID)
	if err != nil {
		return Money{}, err
	}
	balance, err := l.Balance(accountID, Today())
	if err != nil {
		return Money{}, err
	}
	return account.Available(balance)
}

// Liquidity sums the available balances of debit and savings accounts,
// grouped per currency. Currencies are never summed together.
func (l *Ledger) Liquidity() (map[string]Money, error) {
	return l.sumAvailable(func(a Account) bool { return a.Active && a.Spendable() })
}

// NetWorth sums the available balances of all active accounts, minus open
// debts owed by the user, plus open debts owed to the user, per currency.
func (l *Ledger) NetWorth() (map[string]Money, error) {
	totals, err := l.sumAvailable(func(a Account) bool { return a.Active })
	if err != nil {
		return nil, err
	}
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
		if err := addToTotals(totals, amount); err != nil {
			return nil, err
		}
	}
	return totals, nil
}

func (l *Ledger) sumAvailable(include func(Account) bool) (map[string]Money, error) {
	accounts, err := l.store.Accounts()
	if err != nil {
		return nil, err
	}
	totals := make(map[string]Money)
	for _, a := range accounts {
		if !include(a) {
			continue
		}
		balance, err := l.Balance(a.ID, Today())
		if err != nil {
			return nil, err
		}
		available, err := a.Available(balance)
		if err != nil {
			return nil, err
		}
		if err := addToTotals(totals, available); err != nil {
			return nil, err
		}
	}
	return totals, nil
}

func addToTotals(totals map[string]Money, amount Money) error {
	cur := amount.Currency()
	total, ok := totals[cur]
	if !ok {
		total = M(0, cur)
	}
	total, err := total.Add(amount)
	if err != nil {
		return err
	}
	totals[cur] = total
	return nil
}

// Pending returns the pending queue sorted by date then id, for stable
// presentation.
func (l *Ledger) Pending() ([]Transaction, error) {
	txs, err := l.store.Transactions(TxFilter{Status: StatusPending})
	if err != nil {
		return nil, err
	}
	sort.Slice(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date.Before(txs[j].Date)
		}
		return txs[i].ID < txs[j].ID
	})
	return txs, nil
}

// DuePendingCount counts pending transactions dated on or before now.
func (l *Ledger) DuePendingCount(now Date) (int, error) {
	txs, err := l.store.Transactions(TxFilter{Status: StatusPending, To: now})
	if err != nil {
		return 0, err
	}
	return len(txs), nil
}

// SavingsContribution computes the net flow into savings accounts during a
// month, per currency: approved transaction amounts on savings accounts
// dated within the month, summed signed.
func (l *Ledger) SavingsContribution(year int, month time.Month) (map[string]Money, error) {
	accounts, err := l.store.Accounts()
	if err != nil {
		return nil, err
	}
	from := NewDate(year, month, 1)
	to := NewDate(year, month+1, 0)
	totals := make(map[string]Money)
	for _, a := range accounts {
		if a.Type != Savings {
			continue
		}
		txs, err := l.store.Transactions(TxFilter{AccountID: a.ID, Status: StatusApproved, From: from, To: to})
		if err != nil {
			return nil, err
		}
		for _, tx := range txs {
			if err := addToTotals(totals, tx.Amount); err != nil {
				return nil, err
			}
		}
	}
	return totals, nil
}
