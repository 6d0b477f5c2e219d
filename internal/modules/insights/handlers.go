package insights

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/yizinity/journal/internal/modules/analytics"
	"github.com/yizinity/journal/internal/modules/journal"
)

// TradeGetter fetches a single trade by id
type TradeGetter interface {
	Get(id string) (*journal.Trade, error)
}

// Handlers contains HTTP handlers for the insights API
type Handlers struct {
	service     *Service
	tradeGetter TradeGetter
	db          *sql.DB
	log         zerolog.Logger
	now         func() time.Time
}

// NewHandlers creates a new insights handlers instance
func NewHandlers(service *Service, tradeGetter TradeGetter, db *sql.DB, log zerolog.Logger) *Handlers {
	return &Handlers{
		service:     service,
		tradeGetter: tradeGetter,
		db:          db,
		log:         log.With().Str("handler", "insights").Logger(),
		now:         time.Now,
	}
}

// Routes mounts the insights routes
func (h *Handlers) Routes(r chi.Router) {
	r.Post("/trade/{id}", h.HandleReviewTrade)
	r.Post("/strategy", h.HandleAnalyzeStrategy)
	r.Post("/chat", h.HandleMentorChat)
	r.Get("/digest", h.HandleLatestDigest)
}

// HandleReviewTrade returns AI coaching for a single trade
// POST /api/insights/trade/{id}
func (h *Handlers) HandleReviewTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trade, err := h.tradeGetter.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get trade")
		http.Error(w, "Failed to get trade", http.StatusInternalServerError)
		return
	}
	if trade == nil {
		http.Error(w, "Trade not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, h.service.ReviewTrade(r.Context(), *trade))
}

// HandleAnalyzeStrategy returns an AI summary of the selected range
// POST /api/insights/strategy?range=
func (h *Handlers) HandleAnalyzeStrategy(w http.ResponseWriter, r *http.Request) {
	trades, err := h.service.trades.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load trades")
		http.Error(w, "Failed to load trades", http.StatusInternalServerError)
		return
	}

	rng := analytics.ReportRangeFromString(r.URL.Query().Get("range"))
	filtered := analytics.FilterTradesByReportRange(trades, rng, h.now())

	summary := h.service.AnalyzeStrategy(r.Context(), filtered, string(rng))

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// HandleMentorChat answers a mentor-chat message
// POST /api/insights/chat
func (h *Handlers) HandleMentorChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		History []ChatMessage `json:"history"`
		Message string        `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Message cannot be empty", http.StatusBadRequest)
		return
	}

	reply := h.service.MentorChat(r.Context(), req.History, req.Message)

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// HandleLatestDigest returns the most recent nightly strategy digest
// GET /api/insights/digest
func (h *Handlers) HandleLatestDigest(w http.ResponseWriter, r *http.Request) {
	digest, err := LatestDigest(h.db)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load digest")
		http.Error(w, "Failed to load digest", http.StatusInternalServerError)
		return
	}
	if digest == nil {
		http.Error(w, "No digest generated yet", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, digest)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Ignore encode error - already committed response
}
