package finance_test

import (
	"errors"
	"testing"

	finance "github.com/dberweger2017/Flet-finance"
)

func TestReconcile_RecordsAdjustment(t *testing.T) {
	l := newTestLedger(t)
	acc := newAccount(t, l, "Checking", finance.Debit, "CHF")
	day := finance.MustDate("2024-05-10")
	approved(t, l, acc, chf(12000), day)

	// The bank says 150.00, the ledger says 120.00.
	tx, adjusted, err := l.Reconcile(acc.ID, chf(15000), day)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if !adjusted {
		t.Fatal("Reconcile() adjusted = false, want true")
	}
	if !tx.Amount.Equal(chf(3000)) {
		t.Errorf("adjustment amount = %v, want %v", tx.Amount, chf(3000))
	}
	if tx.Status != finance.StatusApproved || tx.Origin != finance.OriginReconciliation {
		t.Errorf("adjustment = %s/%s, want approved/reconciliation", tx.Status, tx.Origin)
	}
	wantBalance(t, l, acc, day, chf(15000))

	// Running it again with the same statement is a no-op.
	_, adjusted, err = l.Reconcile(acc.ID, chf(15000), day)
	if err != nil {
		t.Fatalf("second Reconcile() error = %v", err)
	}
	if adjusted {
		t.Error("second Reconcile() adjusted = true, want false")
	}
	wantBalance(t, l, acc, day, chf(15000))
}

func TestReconcile_NegativeDelta(t *testing.T) {
	l := newTestLedger(t)
	acc := newAccount(t, l, "Checking", finance.Debit, "CHF")
	day := finance.MustDate("2024-05-10")
	approved(t, l, acc, chf(15000), day)

	tx, adjusted, err := l.Reconcile(acc.ID, chf(12000), day)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if !adjusted || !tx.Amount.Equal(chf(-3000)) {
		t.Errorf("Reconcile() = %v adjusted=%t, want -30.00 adjustment", tx.Amount, adjusted)
	}
	wantBalance(t, l, acc, day, chf(12000))
}

func TestReconcile_IgnoresPending(t *testing.T) {
	l := newTestLedger(t)
	acc := newAccount(t, l, "Checking", finance.Debit, "CHF")
	day := finance.MustDate("2024-05-10")
	approved(t, l, acc, chf(15000), day)
	if _, err := l.CreatePending(acc.ID, chf(-5000), "x", "", day); err != nil {
		t.Fatalf("CreatePending() error = %v", err)
	}

	// Pending items are invisible to reconciliation.
	_, adjusted, err := l.Reconcile(acc.ID, chf(15000), day)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if adjusted {
		t.Error("Reconcile() adjusted = true, want false with only a pending delta")
	}
}

func TestReconcile_CurrencyGuard(t *testing.T) {
	l := newTestLedger(t)
	acc := newAccount(t, l, "Checking", finance.Debit, "CHF")

	if _, _, err := l.Reconcile(acc.ID, eur(10000), finance.Today()); !errors.Is(err, finance.ErrCurrencyMismatch) {
		t.Errorf("Reconcile() error = %v, want ErrCurrencyMismatch", err)
	}
	if _, _, err := l.Reconcile("missing", chf(10000), finance.Today()); !errors.Is(err, finance.ErrNotFound) {
		t.Errorf("Reconcile() error = %v, want ErrNotFound", err)
	}
}
