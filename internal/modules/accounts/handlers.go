package accounts

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/yizinity/journal/internal/events"
)

// Handlers contains HTTP handlers for the accounts API
type Handlers struct {
	repo    *AccountRepository
	service *Service
	events  *events.Manager
	log     zerolog.Logger
}

// NewHandlers creates a new accounts handlers instance
func NewHandlers(repo *AccountRepository, service *Service, ev *events.Manager, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo:    repo,
		service: service,
		events:  ev,
		log:     log.With().Str("handler", "accounts").Logger(),
	}
}

// Routes mounts the accounts routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.HandleListAccounts)
	r.Post("/", h.HandleCreateAccount)
	r.Get("/{id}", h.HandleGetAccount)
	r.Put("/{id}", h.HandleUpdateAccount)
	r.Delete("/{id}", h.HandleDeleteAccount)
	r.Post("/{id}/status", h.HandleChangeStatus)
	r.Post("/{id}/payouts", h.HandleAddPayout)
}

// HandleListAccounts returns all accounts with their payouts
// GET /api/accounts
func (h *Handlers) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.repo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list accounts")
		http.Error(w, "Failed to list accounts", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}

// HandleCreateAccount creates a new prop account
// POST /api/accounts
func (h *Handlers) HandleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var account PropAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(account)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleGetAccount returns a single account by id
// GET /api/accounts/{id}
func (h *Handlers) HandleGetAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	account, err := h.repo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get account")
		http.Error(w, "Failed to get account", http.StatusInternalServerError)
		return
	}
	if account == nil {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// HandleUpdateAccount replaces an account's editable fields. Status
// changes go through the dedicated status endpoint so the date side
// effects cannot be bypassed.
// PUT /api/accounts/{id}
func (h *Handlers) HandleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.repo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get account")
		http.Error(w, "Failed to get account", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	var account PropAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	account.ID = id
	account.Status = existing.Status
	account.DateFunded = existing.DateFunded
	account.DateEnded = existing.DateEnded
	account.Payouts = existing.Payouts
	account.RecomputePayoutAggregates()

	if err := account.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.repo.Update(account); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update account")
		http.Error(w, "Failed to update account", http.StatusInternalServerError)
		return
	}

	h.events.Emit("accounts", events.AccountUpdated, map[string]interface{}{"id": id})

	writeJSON(w, http.StatusOK, account)
}

// HandleDeleteAccount deletes an account and its payouts
// DELETE /api/accounts/{id}
func (h *Handlers) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(id); err != nil {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	h.events.Emit("accounts", events.AccountDeleted, map[string]interface{}{"id": id})

	w.WriteHeader(http.StatusNoContent)
}

// HandleChangeStatus applies a status transition
// POST /api/accounts/{id}/status
func (h *Handlers) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	status, err := StatusFromString(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	account, err := h.service.ChangeStatus(id, status)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to change account status")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// HandleAddPayout logs a payout against a funded account
// POST /api/accounts/{id}/payouts
func (h *Handlers) HandleAddPayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Amount float64   `json:"amount"`
		Date   time.Time `json:"date"`
		Note   string    `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.service.AddPayout(id, req.Amount, req.Date, req.Note)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to add payout")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Ignore encode error - already committed response
}
