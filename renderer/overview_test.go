package renderer

import (
	"strings"
	"testing"

	finance "github.com/dberweger2017/Flet-finance"
)

func chf(v int64) finance.Money { return finance.M(v, "CHF") }

func TestOverviewMarkdown(t *testing.T) {
	account, err := finance.NewAccount("Checking", finance.Debit, "CHF", chf(0))
	if err != nil {
		t.Fatalf("NewAccount() error = %v", err)
	}
	debt, err := finance.NewDebt(finance.OwedByMe, "Alice", chf(5000), finance.MustDate("2024-05-01"))
	if err != nil {
		t.Fatalf("NewDebt() error = %v", err)
	}
	pending, err := finance.NewPending(account.ID, chf(-1200), "groceries", "weekly shop", finance.MustDate("2024-05-12"), finance.OriginManual, "")
	if err != nil {
		t.Fatalf("NewPending() error = %v", err)
	}

	o := &finance.Overview{
		Date: finance.MustDate("2024-05-15"),
		Accounts: []finance.AccountLine{
			{Account: account, Balance: chf(12000), Available: chf(12000)},
		},
		Liquidity:       map[string]finance.Money{"CHF": chf(12000)},
		NetWorth:        map[string]finance.Money{"CHF": chf(7000)},
		Pending:         []finance.Transaction{pending},
		DuePendingCount: 1,
		OverdueDebts:    []finance.Debt{debt},
	}

	md := OverviewMarkdown(o)

	for _, want := range []string{
		"# Ledger Overview on 2024-05-15",
		"## Accounts",
		"Checking",
		"## Totals",
		"## Pending Transactions (1, 1 due)",
		"weekly shop",
		"## Overdue Debts",
		"Alice",
		"I owe",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("OverviewMarkdown() misses %q:\n%s", want, md)
		}
	}
}

func TestOverviewMarkdown_QuietSections(t *testing.T) {
	o := &finance.Overview{
		Date:      finance.MustDate("2024-05-15"),
		Liquidity: map[string]finance.Money{},
		NetWorth:  map[string]finance.Money{},
	}
	md := OverviewMarkdown(o)
	if strings.Contains(md, "Pending Transactions") {
		t.Error("OverviewMarkdown() renders an empty pending section")
	}
	if strings.Contains(md, "Overdue Debts") {
		t.Error("OverviewMarkdown() renders an empty debts section")
	}
}

func TestPendingMarkdown_Empty(t *testing.T) {
	md := PendingMarkdown(nil)
	if !strings.Contains(md, "Nothing waiting for approval.") {
		t.Errorf("PendingMarkdown(nil) = %q, want the empty-queue notice", md)
	}
}
