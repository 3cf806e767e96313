// Package store persists ledger records in a bbolt database, one bucket per
// record kind, values JSON-encoded and keyed by id. It implements the core's
// Store contract, including the atomic multi-write primitive on top of a
// single bbolt update transaction.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"

	finance "github.com/dberweger2017/Flet-finance"
)

// Bucket names.
const (
	bucketAccounts      = "accounts"
	bucketTransactions  = "transactions"
	bucketDebts         = "debts"
	bucketSubscriptions = "subscriptions"
)

// DB is the bbolt-backed storage collaborator.
type DB struct {
	db *bolt.DB
}

var _ finance.Store = (*DB)(nil)

// Open opens (or creates) the database file and initializes the buckets.
func Open(path string) (*DB, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, &finance.StorageError{Op: "open database", Err: err}
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{bucketAccounts, bucketTransactions, bucketDebts, bucketSubscriptions} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, &finance.StorageError{Op: "initialize database", Err: err}
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error { return d.db.Close() }

// view runs a read-only operation against a transaction-bound store.
func (d *DB) view(op string, fn func(*txStore) error) error {
	err := d.db.View(func(tx *bolt.Tx) error { return fn(&txStore{tx: tx}) })
	return wrap(op, err)
}

// update runs a writing operation against a transaction-bound store.
func (d *DB) update(op string, fn func(*txStore) error) error {
	err := d.db.Update(func(tx *bolt.Tx) error { return fn(&txStore{tx: tx}) })
	return wrap(op, err)
}

// wrap turns unexpected bbolt failures into StorageError but lets the core's
// sentinel errors (ErrNotFound in particular) pass through untouched.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		finance.ErrNotFound,
		finance.ErrCurrencyMismatch,
		finance.ErrInvalidAmount,
		finance.ErrImmutableApproved,
		finance.ErrIncompleteTransferGroup,
		finance.ErrAlreadySettled,
		finance.ErrStorage,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return &finance.StorageError{Op: op, Err: err}
}

func (d *DB) Account(id string) (finance.Account, error) {
	var a finance.Account
	err := d.view("get account", func(s *txStore) error {
		var err error
		a, err = s.Account(id)
		return err
	})
	return a, err
}

func (d *DB) Accounts() ([]finance.Account, error) {
	var as []finance.Account
	err := d.view("scan accounts", func(s *txStore) error {
		var err error
		as, err = s.Accounts()
		return err
	})
	return as, err
}

func (d *DB) PutAccount(a finance.Account) error {
	return d.update("put account", func(s *txStore) error { return s.PutAccount(a) })
}

func (d *DB) Transaction(id string) (finance.Transaction, error) {
	var t finance.Transaction
	err := d.view("get transaction", func(s *txStore) error {
		var err error
		t, err = s.Transaction(id)
		return err
	})
	return t, err
}

func (d *DB) Transactions(filter finance.TxFilter) ([]finance.Transaction, error) {
	var ts []finance.Transaction
	err := d.view("scan transactions", func(s *txStore) error {
		var err error
		ts, err = s.Transactions(filter)
		return err
	})
	return ts, err
}

func (d *DB) PutTransaction(t finance.Transaction) error {
	return d.update("put transaction", func(s *txStore) error { return s.PutTransaction(t) })
}

func (d *DB) Debt(id string) (finance.Debt, error) {
	var de finance.Debt
	err := d.view("get debt", func(s *txStore) error {
		var err error
		de, err = s.Debt(id)
		return err
	})
	return de, err
}

func (d *DB) Debts() ([]finance.Debt, error) {
	var ds []finance.Debt
	err := d.view("scan debts", func(s *txStore) error {
		var err error
		ds, err = s.Debts()
		return err
	})
	return ds, err
}

func (d *DB) PutDebt(de finance.Debt) error {
	return d.update("put debt", func(s *txStore) error { return s.PutDebt(de) })
}

func (d *DB) Subscription(id string) (finance.Subscription, error) {
	var su finance.Subscription
	err := d.view("get subscription", func(s *txStore) error {
		var err error
		su, err = s.Subscription(id)
		return err
	})
	return su, err
}

func (d *DB) Subscriptions() ([]finance.Subscription, error) {
	var ss []finance.Subscription
	err := d.view("scan subscriptions", func(s *txStore) error {
		var err error
		ss, err = s.Subscriptions()
		return err
	})
	return ss, err
}

func (d *DB) PutSubscription(su finance.Subscription) error {
	return d.update("put subscription", func(s *txStore) error { return s.PutSubscription(su) })
}

// Batch runs fn inside one bbolt update transaction: every write commits
// together, a failing fn rolls everything back.
func (d *DB) Batch(fn func(finance.Store) error) error {
	return d.update("batch write", func(s *txStore) error { return fn(s) })
}

// txStore is the Store view bound to one bbolt transaction.
type txStore struct {
	tx *bolt.Tx
}

var _ finance.Store = (*txStore)(nil)

func (s *txStore) put(bucket, id string, record any) error {
	if id == "" {
		return fmt.Errorf("%s: empty id: %w", bucket, finance.ErrNotFound)
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", bucket, id, err)
	}
	return s.tx.Bucket([]byte(bucket)).Put([]byte(id), data)
}

func (s *txStore) get(bucket, id string, record any) error {
	data := s.tx.Bucket([]byte(bucket)).Get([]byte(id))
	if data == nil {
		return fmt.Errorf("%s %s: %w", bucket, id, finance.ErrNotFound)
	}
	return json.Unmarshal(data, record)
}

func (s *txStore) Account(id string) (finance.Account, error) {
	var a finance.Account
	err := s.get(bucketAccounts, id, &a)
	return a, err
}

func (s *txStore) Accounts() ([]finance.Account, error) {
	var as []finance.Account
	err := s.tx.Bucket([]byte(bucketAccounts)).ForEach(func(_, v []byte) error {
		var a finance.Account
		if err := json.Unmarshal(v, &a); err != nil {
			return err
		}
		as = append(as, a)
		return nil
	})
	return as, err
}

func (s *txStore) PutAccount(a finance.Account) error {
	return s.put(bucketAccounts, a.ID, a)
}

func (s *txStore) Transaction(id string) (finance.Transaction, error) {
	var t finance.Transaction
	err := s.get(bucketTransactions, id, &t)
	return t, err
}

func (s *txStore) Transactions(filter finance.TxFilter) ([]finance.Transaction, error) {
	var ts []finance.Transaction
	err := s.tx.Bucket([]byte(bucketTransactions)).ForEach(func(_, v []byte) error {
		var t finance.Transaction
		if err := json.Unmarshal(v, &t); err != nil {
			return err
		}
		if filter.Match(t) {
			ts = append(ts, t)
		}
		return nil
	})
	return ts, err
}

func (s *txStore) PutTransaction(t finance.Transaction) error {
	return s.put(bucketTransactions, t.ID, t)
}

func (s *txStore) Debt(id string) (finance.Debt, error) {
	var d finance.Debt
	err := s.get(bucketDebts, id, &d)
	return d, err
}

func (s *txStore) Debts() ([]finance.Debt, error) {
	var ds []finance.Debt
	err := s.tx.Bucket([]byte(bucketDebts)).ForEach(func(_, v []byte) error {
		var d finance.Debt
		if err := json.Unmarshal(v, &d); err != nil {
			return err
		}
		ds = append(ds, d)
		return nil
	})
	return ds, err
}

func (s *txStore) PutDebt(d finance.Debt) error {
	return s.put(bucketDebts, d.ID, d)
}

func (s *txStore) Subscription(id string) (finance.Subscription, error) {
	var su finance.Subscription
	err := s.get(bucketSubscriptions, id, &su)
	return su, err
}

func (s *txStore) Subscriptions() ([]finance.Subscription, error) {
	var ss []finance.Subscription
	err := s.tx.Bucket([]byte(bucketSubscriptions)).ForEach(func(_, v []byte) error {
		var su finance.Subscription
		if err := json.Unmarshal(v, &su); err != nil {
			return err
		}
		ss = append(ss, su)
		return nil
	})
	return ss, err
}

func (s *txStore) PutSubscription(su finance.Subscription) error {
	return s.put(bucketSubscriptions, su.ID, su)
}

// Batch on a transaction-bound store reuses the enclosing transaction.
func (s *txStore) Batch(fn func(finance.Store) error) error {
	return fn(s)
}
