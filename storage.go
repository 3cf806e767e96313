package finance

// TxFilter narrows a transaction scan. Zero fields are ignored.
type TxFilter struct {
	AccountID     string // primary leg account
	Status        Status
	Origin        Origin
	OriginRef     string
	TransferGroup string
	From, To      Date // inclusive date bounds
}

// Match reports whether a transaction passes the filter.
func (f TxFilter) Match(t Transaction) bool {
	if f.AccountID != "" && t.AccountID != f.AccountID {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Origin != "" && t.Origin != f.Origin {
		return false
	}
	if f.OriginRef != "" && t.OriginRef != f.OriginRef {
		return false
	}
	if f.TransferGroup != "" && t.TransferGroup != f.TransferGroup {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	return true
}

// Store is the storage collaborator consumed by the core: a durable
// key-indexed store with upsert-by-id, get-by-id and filtered scans over the
// four record kinds, plus an atomic multi-write primitive.
//
// Get methods return ErrNotFound for unknown ids. All other failures are
// surfaced as StorageError and never retried by the core.
type Store interface {
	Account(id string) (Account, error)
	Accounts() ([]Account, error)
	PutAccount(Account) error

	Transaction(id string) (Transaction, error)
	Transactions(TxFilter) ([]Transaction, error)
	PutTransaction(Transaction) error

	Debt(id string) (Debt, error)
	Debts() ([]Debt, error)
	PutDebt(Debt) error

	Subscription(id string) (Subscription, error)
	Subscriptions() ([]Subscription, error)
	PutSubscription(Subscription) error

	// Batch runs fn against a view of the store where all writes commit
	// together or not at all. A failing fn leaves the store untouched.
	Batch(fn func(Store) error) error
}
