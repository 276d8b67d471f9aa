package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/token"
)

// server is the HTTP host around the ledger. It resolves the caller
// identity from the X-Caller-Id header, serializes mutations (the ledger
// itself does no locking), and persists a snapshot after every successful
// state transition.
type server struct {
	mu     sync.Mutex
	ledger *token.Ledger
	store  interfaces.LedgerStore
	log    zerolog.Logger
	mux    *http.ServeMux
}

func newServer(ledger *token.Ledger, store interfaces.LedgerStore, logger zerolog.Logger) *server {
	s := &server{
		ledger: ledger,
		store:  store,
		log:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/supply", s.handleSupply)
	mux.HandleFunc("/accounts/balance", s.handleBalance)
	mux.HandleFunc("/allowances", s.handleAllowance)
	mux.HandleFunc("/transfer", s.handleTransfer)
	mux.HandleFunc("/approve", s.handleApprove)
	mux.HandleFunc("/transfer-from", s.handleTransferFrom)
	mux.HandleFunc("/burn", s.handleBurn)
	mux.HandleFunc("/issue", s.handleIssue)
	s.mux = mux

	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *server) handleSupply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	supply := s.ledger.TotalSupply()
	s.mu.Unlock()

	writeJSON(w, struct {
		TotalSupply string `json:"total_supply"`
	}{TotalSupply: supply.Dec()})
}

func (s *server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		http.Error(w, "account_id is a mandatory field", http.StatusBadRequest)
		return
	}
	account, err := models.ParseAccountID(accountID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	balance := s.ledger.BalanceOf(account)
	s.mu.Unlock()

	writeJSON(w, struct {
		AccountID string `json:"account_id"`
		Balance   string `json:"balance"`
	}{AccountID: accountID, Balance: balance.Dec()})
}

func (s *server) handleAllowance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	owner, err := models.ParseAccountID(r.URL.Query().Get("owner"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	spender, err := models.ParseAccountID(r.URL.Query().Get("spender"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	allowance := s.ledger.Allowance(owner, spender)
	s.mu.Unlock()

	writeJSON(w, struct {
		Owner     string `json:"owner"`
		Spender   string `json:"spender"`
		Allowance string `json:"allowance"`
	}{Owner: owner.String(), Spender: spender.String(), Allowance: allowance.Dec()})
}

func (s *server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To    string `json:"to"`
		Value string `json:"value"`
	}
	s.mutate(w, r, &req, func(caller models.AccountID) error {
		to, err := models.ParseAccountID(req.To)
		if err != nil {
			return err
		}
		value, err := models.ParseAmount(req.Value)
		if err != nil {
			return err
		}
		return s.ledger.Transfer(caller, to, value)
	})
}

func (s *server) handleApprove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Spender string `json:"spender"`
		Value   string `json:"value"`
	}
	s.mutate(w, r, &req, func(caller models.AccountID) error {
		spender, err := models.ParseAccountID(req.Spender)
		if err != nil {
			return err
		}
		value, err := models.ParseAmount(req.Value)
		if err != nil {
			return err
		}
		return s.ledger.Approve(caller, spender, value)
	})
}

func (s *server) handleTransferFrom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Owner string `json:"owner"`
		To    string `json:"to"`
		Value string `json:"value"`
	}
	s.mutate(w, r, &req, func(caller models.AccountID) error {
		owner, err := models.ParseAccountID(req.Owner)
		if err != nil {
			return err
		}
		to, err := models.ParseAccountID(req.To)
		if err != nil {
			return err
		}
		value, err := models.ParseAmount(req.Value)
		if err != nil {
			return err
		}
		return s.ledger.TransferFrom(caller, owner, to, value)
	})
}

func (s *server) handleBurn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	s.mutate(w, r, &req, func(caller models.AccountID) error {
		value, err := models.ParseAmount(req.Value)
		if err != nil {
			return err
		}
		return s.ledger.Burn(caller, value)
	})
}

func (s *server) handleIssue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	s.mutate(w, r, &req, func(caller models.AccountID) error {
		value, err := models.ParseAmount(req.Value)
		if err != nil {
			return err
		}
		return s.ledger.Issue(caller, value)
	})
}

// mutate runs one ledger operation: decode the request, resolve the caller,
// apply under the lock, persist the new snapshot. The ledger guarantees a
// failed operation changed nothing, so nothing is saved on failure.
func (s *server) mutate(w http.ResponseWriter, r *http.Request, req any, op func(caller models.AccountID) error) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	caller, err := models.ParseAccountID(r.Header.Get("X-Caller-Id"))
	if err != nil {
		http.Error(w, "X-Caller-Id header must identify the caller", http.StatusUnauthorized)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := op(caller); err != nil {
		if isLedgerError(err) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Save(r.Context(), s.ledger.Snapshot()); err != nil {
		s.log.Error().Err(err).Msg("snapshot save failed")
		http.Error(w, "failed to persist ledger state", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func isLedgerError(err error) bool {
	return errors.Is(err, token.ErrInsufficientBalance) ||
		errors.Is(err, token.ErrInsufficientAllowance) ||
		errors.Is(err, token.ErrNotIssuer)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
