package finance

import "fmt"

// GenerateDueSubscriptionTransactions derives the pending transactions due
// for every active subscription up to now and stores them, one per missed
// cycle. Each subscription's emission and checkpoint advance commit in a
// single atomic write, so the checkpoint strictly advances with the emission
// and a second run with the same now generates nothing.
func (l *Ledger) GenerateDueSubscriptionTransactions(now Date) ([]Transaction, error) {
	if now.IsZero() {
		now = Today()
	}
	subs, err := l.store.Subscriptions()
	if err != nil {
		return nil, err
	}
	var generated []Transaction
	for _, sub := range subs {
		due := sub.DueDates(now)
		if len(due) == 0 {
			continue
		}
		account, err := l.store.Account(sub.AccountID)
		if err != nil {
			return generated, fmt.Errorf("subscription %q: target account %s: %w", sub.Name, sub.AccountID, err)
		}
		if sub.Amount.Currency() != account.Currency {
			return generated, fmt.Errorf("subscription %q charges account %q: %w: %s != %s",
				sub.Name, account.Name, ErrCurrencyMismatch, account.Currency, sub.Amount.Currency())
		}
		charges := make([]Transaction, 0, len(due))
		for _, cycle := range due {
			charges = append(charges, sub.pendingCharge(cycle))
		}
		sub.LastGenerated = due[len(due)-1]
		err = l.store.Batch(func(s Store) error {
			for _, tx := range charges {
				if err := s.PutTransaction(tx); err != nil {
					return err
				}
			}
			return s.PutSubscription(sub)
		})
		if err != nil {
			return generated, fmt.Errorf("subscription %q: %w", sub.Name, err)
		}
		generated = append(generated, charges...)
	}
	return generated, nil
}
