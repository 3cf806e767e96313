// Package renderer turns ledger reports into markdown documents, ready for
// plain output or terminal rendering.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	finance "github.com/dberweger2017/Flet-finance"
)

// OverviewMarkdown renders a full ledger overview: accounts with balances,
// liquidity and net worth per currency, the pending queue and overdue debts.
func OverviewMarkdown(o *finance.Overview) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Ledger Overview on %s", o.Date))

	doc.H2("Accounts")
	rows := make([][]string, 0, len(o.Accounts))
	for _, line := range o.Accounts {
		rows = append(rows, []string{
			line.Account.Name,
			string(line.Account.Type),
			line.Balance.SignedString(),
			line.Available.SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Account", "Type", "Balance", "Available"},
		Rows:   rows,
	})

	doc.H2("Totals")
	totals := make([][]string, 0, len(o.NetWorth))
	for cur, net := range o.NetWorth {
		liquidity := finance.M(0, cur)
		if l, ok := o.Liquidity[cur]; ok {
			liquidity = l
		}
		totals = append(totals, []string{cur, liquidity.SignedString(), net.SignedString()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Currency", "Liquidity", "Net Worth"},
		Rows:   totals,
	})

	if len(o.Pending) > 0 {
		doc.H2(fmt.Sprintf("Pending Transactions (%d, %d due)", len(o.Pending), o.DuePendingCount))
		pending := make([][]string, 0, len(o.Pending))
		for _, t := range o.Pending {
			pending = append(pending, []string{
				t.Date.String(),
				t.Description,
				t.Category,
				t.Amount.SignedString(),
				string(t.Origin),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Date", "Description", "Category", "Amount", "Origin"},
			Rows:   pending,
		})
	}

	if len(o.OverdueDebts) > 0 {
		doc.H2("Overdue Debts")
		debts := make([][]string, 0, len(o.OverdueDebts))
		for _, d := range o.OverdueDebts {
			debts = append(debts, []string{
				d.DueDate.String(),
				d.Counterparty,
				directionLabel(d.Direction),
				d.Amount.String(),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Due", "Counterparty", "Direction", "Amount"},
			Rows:   debts,
		})
	}

	return doc.String()
}

// PendingMarkdown renders the pending queue alone, oldest first.
func PendingMarkdown(pending []finance.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Pending Transactions (%d)", len(pending)))
	if len(pending) == 0 {
		doc.PlainText("Nothing waiting for approval.")
		return doc.String()
	}

	rows := make([][]string, 0, len(pending))
	for _, t := range pending {
		rows = append(rows, []string{
			t.ID,
			t.Date.String(),
			t.Description,
			t.Amount.SignedString(),
			string(t.Origin),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Date", "Description", "Amount", "Origin"},
		Rows:   rows,
	})
	return doc.String()
}

func directionLabel(d finance.DebtDirection) string {
	if d == finance.OwedByMe {
		return "I owe"
	}
	return "owed to me"
}
