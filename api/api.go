// Package api exposes the ledger over HTTP as a small JSON API. Handlers
// translate domain errors to status codes; everything else is delegated to
// the ledger engines.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	finance "github.com/dberweger2017/Flet-finance"
)

// Server holds the router and the ledger it serves.
type Server struct {
	ledger *finance.Ledger
	log    zerolog.Logger
	router chi.Router
}

// NewServer builds the HTTP surface over a ledger.
func NewServer(ledger *finance.Ledger, log zerolog.Logger) *Server {
	s := &Server{ledger: ledger, log: log}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", s.listAccounts)
			r.Post("/", s.createAccount)
			r.Get("/{id}", s.getAccount)
			r.Get("/{id}/balance", s.getBalance)
			r.Post("/{id}/reconcile", s.reconcile)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.listTransactions)
			r.Post("/", s.createPending)
			r.Post("/transfer", s.createTransfer)
			r.Patch("/{id}", s.editPending)
			r.Post("/{id}/approve", s.approve)
			r.Post("/{id}/reject", s.reject)
			r.Post("/approve", s.bulkApprove)
			r.Post("/reject", s.bulkReject)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", s.listSubscriptions)
			r.Post("/", s.createSubscription)
			r.Post("/generate", s.generateSubscriptions)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", s.listDebts)
			r.Post("/", s.createDebt)
			r.Get("/overdue", s.overdueDebts)
			r.Post("/{id}/settle", s.settleDebt)
		})

		r.Get("/overview", s.overview)
		r.Get("/liquidity", s.liquidity)
		r.Get("/liquidity/trend", s.liquidityTrend)
		r.Get("/networth", s.netWorth)
		r.Get("/networth/trend", s.netWorthTrend)
		r.Get("/savings", s.savingsContribution)
		r.Get("/savings/monthly", s.monthlySavings)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, finance.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, finance.ErrCurrencyMismatch),
		errors.Is(err, finance.ErrInvalidAmount),
		errors.Is(err, finance.ErrIncompleteTransferGroup):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, finance.ErrImmutableApproved),
		errors.Is(err, finance.ErrAlreadySettled):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func decode(r *http.Request, into any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(into)
}

// dateParam parses an optional ?date=YYYY-MM-DD query parameter, defaulting
// to today.
func dateParam(r *http.Request) (finance.Date, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return finance.Today(), nil
	}
	return finance.ParseDate(raw)
}
