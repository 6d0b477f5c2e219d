package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for the analytics API
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new analytics handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "analytics").Logger(),
	}
}

// Routes mounts the analytics routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.HandleMetrics)
	r.Get("/expenses", h.HandleExpenses)
	r.Get("/evaluations", h.HandleEvaluations)
}

// HandleMetrics returns dashboard metrics for a date range
// GET /api/metrics?range=TODAY|LAST_WEEK|LAST_MONTH|ALL
func (h *Handlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	rng := DashboardRangeFromString(r.URL.Query().Get("range"))

	metrics, err := h.service.Metrics(rng)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute metrics")
		http.Error(w, "Failed to compute metrics", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// HandleExpenses returns the expense accrual summary for a period
// GET /api/metrics/expenses?period=ALL|TODAY|WEEK|MONTH|YEAR
func (h *Handlers) HandleExpenses(w http.ResponseWriter, r *http.Request) {
	period := PeriodFromString(r.URL.Query().Get("period"))

	summary, err := h.service.Expenses(period)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute expenses")
		http.Error(w, "Failed to compute expenses", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleEvaluations returns funding progress for evaluation accounts
// GET /api/metrics/evaluations
func (h *Handlers) HandleEvaluations(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.Evaluations()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute evaluation progress")
		http.Error(w, "Failed to compute evaluation progress", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Ignore encode error - already committed response
}
