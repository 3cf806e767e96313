package finance_test

import (
	"errors"
	"testing"
	"time"

	finance "github.com/dberweger2017/Flet-finance"
)

func TestApprove_MovesBalanceExactlyOnce(t *testing.T) {
	l := newTestLedger(t)
	acc := newAccount(t, l, "Checking", finance.Debit, "CHF")
	day := finance.MustDate("2024-05-10")

	tx, err := l.CreatePending(acc.ID, chf(-4250), "groceries", "migros", day)
	if err != nil {
		t.Fatalf("CreatePending() error = %v", err)
	}
	wantBalance(t, l, acc, day, chf(0))

	if err := l.Approve(tx.ID, time.Now()); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	wantBalance(t, l, acc, day, chf(-4250))

	stored, err := l.Store().Transaction(tx.ID)
	if err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}
	if stored.Status != finance.StatusApproved || stored.ApprovedAt.IsZero() {
		t.Errorf("approved transaction = %s at %v, want approved with timestamp", stored.Status, stored.ApprovedAt)
	}

	// A second approval must not double-apply.
	if err := l.Approve(tx.ID, time.Now()); !errors.Is(err, finance.ErrNotFound) {
		t.Errorf("second Approve() error = %v, want ErrNotFound", err)
	}
	wantBalance(t, l, acc, day, chf(-4250))
}

func TestReject_NeverTouchesBalance(t *testing.T) {
	l := newTestLedger(t)
	acc := newAccount(t, l, "Checking", finance.Debit, "CHF")
	day := finance.MustDate("2024-05-10")

	tx, err := l.CreatePending(acc.ID, chf(-4250), "groceries", "", day)
	if err != nil {
		t.Fatalf("CreatePending() error = %v", err)
	}
	if err := l.Reject(tx.ID); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	wantBalance(t, l, acc, day, chf(0))

	// The record survives for audit but left the queue.
	stored, err := l.Store().Transaction(tx.ID)
	if err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}
	if stored.Status != finance.StatusRejected {
		t.Errorf("rejected transaction status = %s, want rejected", stored.Status)
	}
	queue, err := l.Pending()
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(queue) != 0 {
		t.Errorf("Pending() has %d items after reject, want 0", len(queue))
	}

	// Rejected is terminal.
	if err := l.Approve(tx.ID, time.Now()); !errors.Is(err, finance.ErrNotFound) {
		t.Errorf("Approve() of rejected error = %v, want ErrNotFound", err)
	}
}

func TestCreatePending_Validation(t *testing.T) {
	l := newTestLedger(t)
	acc := newAccount(t, l, "Checking", finance.Debit, "CHF")

	if _, err := l.CreatePending(acc.ID, chf(0), "x", "", finance.Today()); !errors.Is(err, finance.ErrInvalidAmount) {
		t.Errorf("zero amount error = %v, want ErrInvalidAmount", err)
	}
	if _, err := l.CreatePending(acc.ID, eur(100), "x", "", finance.Today()); !errors.Is(err, finance.ErrCurrencyMismatch) {
		t.Errorf("wrong currency error = %v, want ErrCurrencyMismatch", err)
	}
	if _, err := l.CreatePending("missing", chf(100), "x", "", finance.Today()); !errors.Is(err, finance.ErrNotFound) {
		t.Errorf("unknown account error = %v, want ErrNotFound", err)
	}
}

func TestEditPending(t *testing.T) {
	l := newTestLedger(t)
	acc := newAccount(t, l, "Checking", finance.Debit, "CHF")

	tx, err := l.CreatePending(acc.ID, chf(-1000), "food", "", finance.Today())
	if err != nil {
		t.Fatalf("CreatePending() error = %v", err)
	}

	amount := chf(-1500)
	category := "groceries"
	got, err := l.EditPending(tx.ID, finance.PendingEdit{Amount: &amount, Category: &category})
	if err != nil {
		t.Fatalf("EditPending() error = %v", err)
	}
	if !got.Amount.Equal(amount) || got.Category != category {
		t.Errorf("EditPending() = %v %q, want %v %q", got.Amount, got.Category, amount, category)
	}

	zero := chf(0)
	if _, err := l.EditPending(tx.ID, finance.PendingEdit{Amount: &zero}); !errors.Is(err, finance.ErrInvalidAmount) {
		t.Errorf("zero amount edit error = %v, want ErrInvalidAmount", err)
	}
	wrong := eur(-1500)
	if _, err := l.EditPending(tx.ID, finance.PendingEdit{Amount: &wrong}); !errors.Is(err, finance.ErrCurrencyMismatch) {
		t.Errorf("cross-currency edit error = %v, want ErrCurrencyMismatch", err)
	}

	if err := l.Approve(tx.ID, time.Now()); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if _, err := l.EditPending(tx.ID, finance.PendingEdit{Category: &category}); !errors.Is(err, finance.ErrImmutableApproved) {
		t.Errorf("edit of approved error = %v, want ErrImmutableApproved", err)
	}
}

func TestTransfer_GroupLifecycle(t *testing.T) {
	l := newTestLedger(t)
	from := newAccount(t, l, "Checking", finance.Debit, "CHF")
	to := newAccount(t, l, "Savings", finance.Savings, "CHF")
	day := finance.MustDate("2024-05-10")

	debit, credit, err := l.CreatePendingTransfer(from.ID, to.ID, chf(20000), chf(20000), "transfer", "", day)
	if err != nil {
		t.Fatalf("CreatePendingTransfer() error = %v", err)
	}
	if debit.TransferGroup == "" || debit.TransferGroup != credit.TransferGroup {
		t.Fatalf("legs carry groups %q and %q, want one shared group", debit.TransferGroup, credit.TransferGroup)
	}
	if !debit.Amount.Equal(chf(-20000)) || !credit.Amount.Equal(chf(20000)) {
		t.Errorf("leg amounts = %v and %v, want opposite signs", debit.Amount, credit.Amount)
	}

	// Approving one leg approves the pair.
	if err := l.Approve(debit.ID, time.Now()); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	wantBalance(t, l, from, day, chf(-20000))
	wantBalance(t, l, to, day, chf(20000))

	counter, err := l.Store().Transaction(credit.ID)
	if err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}
	if counter.Status != finance.StatusApproved {
		t.Errorf("counter leg status = %s, want approved", counter.Status)
	}
}

func TestTransfer_RejectGroup(t *testing.T) {
	l := newTestLedger(t)
	from := newAccount(t, l, "Checking", finance.Debit, "CHF")
	to := newAccount(t, l, "Savings", finance.Savings, "CHF")

	debit, credit, err := l.CreatePendingTransfer(from.ID, to.ID, chf(5000), chf(5000), "transfer", "", finance.Today())
	if err != nil {
		t.Fatalf("CreatePendingTransfer() error = %v", err)
	}
	if err := l.Reject(credit.ID); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	for _, id := range []string{debit.ID, credit.ID} {
		leg, err := l.Store().Transaction(id)
		if err != nil {
			t.Fatalf("Transaction(%s) error = %v", id, err)
		}
		if leg.Status != finance.StatusRejected {
			t.Errorf("leg %s status = %s, want rejected", id, leg.Status)
		}
	}
	wantBalance(t, l, from, finance.Today(), chf(0))
	wantBalance(t, l, to, finance.Today(), chf(0))
}

func TestTransfer_IncompleteGroupNeverHalfApplies(t *testing.T) {
	l := newTestLedger(t)
	acc := newAccount(t, l, "Checking", finance.Debit, "CHF")

	// A lone leg referencing a transfer group, as after a partial import.
	orphan, err := finance.NewPending(acc.ID, chf(-1000), "transfer", "", finance.Today(), finance.OriginTransfer, "")
	if err != nil {
		t.Fatalf("NewPending() error = %v", err)
	}
	orphan.TransferGroup = "broken-group"
	if err := l.Store().PutTransaction(orphan); err != nil {
		t.Fatalf("PutTransaction() error = %v", err)
	}

	if err := l.Approve(orphan.ID, time.Now()); !errors.Is(err, finance.ErrIncompleteTransferGroup) {
		t.Fatalf("Approve() error = %v, want ErrIncompleteTransferGroup", err)
	}
	// The orphan leg stays pending; the balance is untouched.
	stored, err := l.Store().Transaction(orphan.ID)
	if err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}
	if stored.Status != finance.StatusPending {
		t.Errorf("orphan leg status = %s, want pending", stored.Status)
	}
	wantBalance(t, l, acc, finance.Today(), chf(0))
}

func TestTransfer_EditMirrorsSameCurrencyLeg(t *testing.T) {
	l := newTestLedger(t)
	from := newAccount(t, l, "Checking", finance.Debit, "CHF")
	to := newAccount(t, l, "Savings", finance.Savings, "CHF")

	debit, credit, err := l.CreatePendingTransfer(from.ID, to.ID, chf(5000), chf(5000), "transfer", "", finance.Today())
	if err != nil {
		t.Fatalf("CreatePendingTransfer() error = %v", err)
	}

	amount := chf(-7500)
	if _, err := l.EditPending(debit.ID, finance.PendingEdit{Amount: &amount}); err != nil {
		t.Fatalf("EditPending() error = %v", err)
	}
	counter, err := l.Store().Transaction(credit.ID)
	if err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}
	if !counter.Amount.Equal(chf(7500)) {
		t.Errorf("counter leg amount = %v, want %v", counter.Amount, chf(7500))
	}
}

func TestBulkApprove_BestEffort(t *testing.T) {
	l := newTestLedger(t)
	acc := newAccount(t, l, "Checking", finance.Debit, "CHF")

	good, err := l.CreatePending(acc.ID, chf(-100), "x", "", finance.Today())
	if err != nil {
		t.Fatalf("CreatePending() error = %v", err)
	}
	results := l.BulkApprove([]string{"missing", good.ID}, time.Now())
	if len(results) != 2 {
		t.Fatalf("BulkApprove() returned %d results, want 2", len(results))
	}
	if !errors.Is(results[0].Err, finance.ErrNotFound) {
		t.Errorf("results[0].Err = %v, want ErrNotFound", results[0].Err)
	}
	if results[1].Err != nil {
		t.Errorf("results[1].Err = %v, want nil", results[1].Err)
	}
	wantBalance(t, l, acc, finance.Today(), chf(-100))
}
