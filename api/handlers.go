package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	finance "github.com/dberweger2017/Flet-finance"
)

// --- accounts ---

type createAccountRequest struct {
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Currency    string        `json:"currency"`
	CreditLimit finance.Money `json:"credit_limit,omitzero"`
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	typ, err := finance.ParseAccountType(req.Type)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	limit := req.CreditLimit
	if limit.IsZero() {
		limit = finance.M(0, req.Currency)
	}
	account, err := finance.NewAccount(req.Name, typ, req.Currency, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.ledger.Store().PutAccount(account); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.ledger.Store().Accounts()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.ledger.Store().Account(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	id := chi.URLParam(r, "id")
	balance, err := s.ledger.Balance(id, asOf)
	if err != nil {
		s.writeError(w, err)
		return
	}
	available, err := s.ledger.AvailableBalance(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":      asOf,
		"balance":   balance,
		"available": available,
	})
}

type reconcileRequest struct {
	Statement finance.Money `json:"statement"`
	Date      finance.Date  `json:"date,omitzero"`
}

func (s *Server) reconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	day := req.Date
	if day.IsZero() {
		day = finance.Today()
	}
	tx, adjusted, err := s.ledger.Reconcile(chi.URLParam(r, "id"), req.Statement, day)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := map[string]any{"adjusted": adjusted}
	if adjusted {
		resp["transaction"] = tx
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- transactions ---

type createPendingRequest struct {
	AccountID   string        `json:"account_id"`
	Amount      finance.Money `json:"amount"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Date        finance.Date  `json:"date,omitzero"`
}

func (s *Server) createPending(w http.ResponseWriter, r *http.Request) {
	var req createPendingRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	tx, err := s.ledger.CreatePending(req.AccountID, req.Amount, req.Category, req.Description, req.Date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

type createTransferRequest struct {
	FromAccountID string        `json:"from_account_id"`
	ToAccountID   string        `json:"to_account_id"`
	AmountOut     finance.Money `json:"amount_out"`
	AmountIn      finance.Money `json:"amount_in"`
	Category      string        `json:"category"`
	Description   string        `json:"description"`
	Date          finance.Date  `json:"date,omitzero"`
}

func (s *Server) createTransfer(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	in := req.AmountIn
	if in.IsZero() {
		in = req.AmountOut
	}
	debit, credit, err := s.ledger.CreatePendingTransfer(
		req.FromAccountID, req.ToAccountID, req.AmountOut, in, req.Category, req.Description, req.Date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"debit": debit, "credit": credit})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := finance.TxFilter{
		AccountID: q.Get("account_id"),
		Status:    finance.Status(q.Get("status")),
		Origin:    finance.Origin(q.Get("origin")),
	}
	if raw := q.Get("from"); raw != "" {
		day, err := finance.ParseDate(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		filter.From = day
	}
	if raw := q.Get("to"); raw != "" {
		day, err := finance.ParseDate(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		filter.To = day
	}
	txs, err := s.ledger.Store().Transactions(filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

type editPendingRequest struct {
	Amount      *finance.Money `json:"amount"`
	Category    *string        `json:"category"`
	Description *string        `json:"description"`
	Date        *finance.Date  `json:"date"`
}

func (s *Server) editPending(w http.ResponseWriter, r *http.Request) {
	var req editPendingRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	tx, err := s.ledger.EditPending(chi.URLParam(r, "id"), finance.PendingEdit{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) approve(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Approve(chi.URLParam(r, "id"), time.Now()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Reject(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

type bulkRequest struct {
	IDs []string `json:"ids"`
}

type bulkResult struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

func bulkResults(results []finance.Result) []bulkResult {
	out := make([]bulkResult, 0, len(results))
	for _, res := range results {
		br := bulkResult{ID: res.ID}
		if res.Err != nil {
			br.Error = res.Err.Error()
		}
		out = append(out, br)
	}
	return out
}

func (s *Server) bulkApprove(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	results := s.ledger.BulkApprove(req.IDs, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{"results": bulkResults(results)})
}

func (s *Server) bulkReject(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	results := s.ledger.BulkReject(req.IDs)
	writeJSON(w, http.StatusOK, map[string]any{"results": bulkResults(results)})
}

// --- subscriptions ---

type createSubscriptionRequest struct {
	Name      string        `json:"name"`
	Amount    finance.Money `json:"amount"`
	AccountID string        `json:"account_id"`
	Frequency string        `json:"frequency"`
	Anchor    int           `json:"anchor"`
	Created   finance.Date  `json:"created,omitzero"`
}

func (s *Server) createSubscription(w http.ResponseWriter, r *http.Request) {
	var req createSubscriptionRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	freq, err := finance.ParseFrequency(req.Frequency)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	created := req.Created
	if created.IsZero() {
		created = finance.Today()
	}
	account, err := s.ledger.Store().Account(req.AccountID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if req.Amount.Currency() != account.Currency {
		s.writeError(w, fmt.Errorf("subscription amount for account %q: %w: %s != %s",
			account.Name, finance.ErrCurrencyMismatch, account.Currency, req.Amount.Currency()))
		return
	}
	sub, err := finance.NewSubscription(req.Name, req.Amount, req.AccountID, freq, req.Anchor, created)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.ledger.Store().PutSubscription(sub); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.ledger.Store().Subscriptions()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subscriptions": subs})
}

func (s *Server) generateSubscriptions(w http.ResponseWriter, r *http.Request) {
	now, err := dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	generated, err := s.ledger.GenerateDueSubscriptionTransactions(now)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"generated": generated})
}

// --- debts ---

type createDebtRequest struct {
	Direction    string        `json:"direction"`
	Counterparty string        `json:"counterparty"`
	Amount       finance.Money `json:"amount"`
	DueDate      finance.Date  `json:"due_date"`
}

func (s *Server) createDebt(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	direction, err := finance.ParseDebtDirection(req.Direction)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	debt, err := finance.NewDebt(direction, req.Counterparty, req.Amount, req.DueDate)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.ledger.Store().PutDebt(debt); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, debt)
}

func (s *Server) listDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.ledger.Store().Debts()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"debts": debts})
}

func (s *Server) overdueDebts(w http.ResponseWriter, r *http.Request) {
	now, err := dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	debts, err := s.ledger.OverdueDebts(now)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"debts": debts})
}

type settleDebtRequest struct {
	AccountID string       `json:"account_id"`
	Date      finance.Date `json:"date,omitzero"`
}

func (s *Server) settleDebt(w http.ResponseWriter, r *http.Request) {
	var req settleDebtRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	day := req.Date
	if day.IsZero() {
		day = finance.Today()
	}
	tx, err := s.ledger.SettleDebt(chi.URLParam(r, "id"), req.AccountID, day)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// --- reports ---

func (s *Server) overview(w http.ResponseWriter, r *http.Request) {
	now, err := dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	o, err := s.ledger.Overview(now)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) liquidity(w http.ResponseWriter, r *http.Request) {
	totals, err := s.ledger.Liquidity()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"liquidity": totals})
}

func (s *Server) savingsContribution(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid year"})
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid month"})
		return
	}
	totals, err := s.ledger.SavingsContribution(year, time.Month(month))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"year": year, "month": month, "contribution": totals})
}

func (s *Server) netWorth(w http.ResponseWriter, r *http.Request) {
	totals, err := s.ledger.NetWorth()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"net_worth": totals})
}

// windowParam parses an optional integer query parameter with a default.
func windowParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}

func (s *Server) liquidityTrend(w http.ResponseWriter, r *http.Request) {
	s.trend(w, r, s.ledger.LiquidityTrend, "liquidity")
}

func (s *Server) netWorthTrend(w http.ResponseWriter, r *http.Request) {
	s.trend(w, r, s.ledger.NetWorthTrend, "net_worth")
}

func (s *Server) trend(w http.ResponseWriter, r *http.Request, series func(finance.Date, int) ([]finance.TrendPoint, error), key string) {
	now, err := dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	days, err := windowParam(r, "days", 90)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	points, err := series(now, days)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{key: points})
}

func (s *Server) monthlySavings(w http.ResponseWriter, r *http.Request) {
	now, err := dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	months, err := windowParam(r, "months", 6)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	series, err := s.ledger.MonthlySavings(now, months)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"savings": series})
}
