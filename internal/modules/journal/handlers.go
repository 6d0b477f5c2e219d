package journal

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/yizinity/journal/internal/events"
)

// SizeProvider supplies prop account sizes for the trade copier
type SizeProvider interface {
	Sizes() (map[string]float64, error)
}

// Handlers contains HTTP handlers for the journal API
type Handlers struct {
	repo   *TradeRepository
	sizes  SizeProvider
	events *events.Manager
	log    zerolog.Logger
}

// NewHandlers creates a new journal handlers instance
func NewHandlers(repo *TradeRepository, sizes SizeProvider, ev *events.Manager, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo:   repo,
		sizes:  sizes,
		events: ev,
		log:    log.With().Str("handler", "journal").Logger(),
	}
}

// Routes mounts the journal routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.HandleListTrades)
	r.Post("/", h.HandleLogTrade)
	r.Get("/{id}", h.HandleGetTrade)
	r.Put("/{id}", h.HandleUpdateTrade)
	r.Delete("/{id}", h.HandleDeleteTrade)
}

// HandleListTrades returns all trades, most recent exit first
// GET /api/trades
func (h *Handlers) HandleListTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.repo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list trades")
		http.Error(w, "Failed to list trades", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, trades)
}

// HandleLogTrade logs a new journal entry. A command selecting several
// accounts expands into one trade per account (the copier flow).
// POST /api/trades
func (h *Handlers) HandleLogTrade(w http.ResponseWriter, r *http.Request) {
	var cmd LogTradeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sizes, err := h.sizes.Sizes()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load account sizes")
		http.Error(w, "Failed to load accounts", http.StatusInternalServerError)
		return
	}

	trades, err := cmd.Expand(sizes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for _, trade := range trades {
		if err := h.repo.Create(trade); err != nil {
			h.log.Error().Err(err).Str("id", trade.ID).Msg("Failed to create trade")
			http.Error(w, "Failed to create trade", http.StatusInternalServerError)
			return
		}
	}

	if len(trades) > 1 {
		h.events.Emit("journal", events.TradeCopied, map[string]interface{}{
			"copy_group_id": trades[0].CopyGroupID,
			"count":         len(trades),
		})
	} else {
		h.events.Emit("journal", events.TradeLogged, map[string]interface{}{
			"id":     trades[0].ID,
			"symbol": trades[0].Symbol,
		})
	}

	writeJSON(w, http.StatusCreated, trades)
}

// HandleGetTrade returns a single trade by id
// GET /api/trades/{id}
func (h *Handlers) HandleGetTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trade, err := h.repo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get trade")
		http.Error(w, "Failed to get trade", http.StatusInternalServerError)
		return
	}
	if trade == nil {
		http.Error(w, "Trade not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, trade)
}

// HandleUpdateTrade replaces a trade wholesale
// PUT /api/trades/{id}
func (h *Handlers) HandleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var trade Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	trade.ID = id

	if err := trade.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.repo.Update(trade); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update trade")
		http.Error(w, "Failed to update trade", http.StatusInternalServerError)
		return
	}

	h.events.Emit("journal", events.TradeUpdated, map[string]interface{}{"id": id})

	writeJSON(w, http.StatusOK, trade)
}

// HandleDeleteTrade deletes a trade by id
// DELETE /api/trades/{id}
func (h *Handlers) HandleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(id); err != nil {
		http.Error(w, "Trade not found", http.StatusNotFound)
		return
	}

	h.events.Emit("journal", events.TradeDeleted, map[string]interface{}{"id": id})

	w.WriteHeader(http.StatusNoContent)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Ignore encode error - already committed response
}
