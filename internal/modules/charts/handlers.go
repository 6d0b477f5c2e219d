package charts

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/yizinity/journal/internal/modules/analytics"
	"github.com/yizinity/journal/internal/modules/journal"
)

// TradeSource supplies the full trade set
type TradeSource interface {
	List() ([]journal.Trade, error)
}

// Handlers contains HTTP handlers for the charts and reports API
type Handlers struct {
	trades TradeSource
	log    zerolog.Logger
	now    func() time.Time
}

// NewHandlers creates a new charts handlers instance
func NewHandlers(trades TradeSource, log zerolog.Logger) *Handlers {
	return &Handlers{
		trades: trades,
		log:    log.With().Str("handler", "charts").Logger(),
		now:    time.Now,
	}
}

// Routes mounts the charts routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/equity", h.HandleEquityCurve)
	r.Get("/setups", h.HandleSetupBreakdown)
	r.Get("/summary", h.HandleReportSummary)
}

// HandleEquityCurve returns the cumulative P&L series
// GET /api/charts/equity?range=&timeframe=
func (h *Handlers) HandleEquityCurve(w http.ResponseWriter, r *http.Request) {
	trades, ok := h.loadTrades(w, r)
	if !ok {
		return
	}

	curve := BuildEquityCurve(trades)
	curve = Downsample(curve, TimeframeFromString(r.URL.Query().Get("timeframe")))

	writeJSON(w, http.StatusOK, curve)
}

// HandleSetupBreakdown returns per-setup performance
// GET /api/charts/setups?range=
func (h *Handlers) HandleSetupBreakdown(w http.ResponseWriter, r *http.Request) {
	trades, ok := h.loadTrades(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, BuildSetupBreakdown(trades))
}

// HandleReportSummary returns drawdown and daily distribution stats
// GET /api/charts/summary?range=
func (h *Handlers) HandleReportSummary(w http.ResponseWriter, r *http.Request) {
	trades, ok := h.loadTrades(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, BuildReportSummary(trades))
}

// loadTrades fetches all trades and applies the report range filter
func (h *Handlers) loadTrades(w http.ResponseWriter, r *http.Request) ([]journal.Trade, bool) {
	trades, err := h.trades.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load trades")
		http.Error(w, "Failed to load trades", http.StatusInternalServerError)
		return nil, false
	}

	rng := analytics.ReportRangeFromString(r.URL.Query().Get("range"))
	return analytics.FilterTradesByReportRange(trades, rng, h.now()), true
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Ignore encode error - already committed response
}
