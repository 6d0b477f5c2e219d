package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/yizinity/journal/internal/database"
)

// SystemHandlers handles system-wide monitoring endpoints
type SystemHandlers struct {
	log     zerolog.Logger
	db      *database.DB
	started time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, db *database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:     log.With().Str("component", "system_handlers").Logger(),
		db:      db,
		started: time.Now(),
	}
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	TradeCount    int     `json:"trade_count"`
	AccountCount  int     `json:"account_count"`
	PayoutCount   int     `json:"payout_count"`
	DatabaseBytes int64   `json:"database_bytes"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// HandleHealth responds to health checks
// GET /health
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Conn().Ping(); err != nil {
		h.log.Error().Err(err).Msg("Health check failed")
		http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// HandleSystemStatus returns row counts and database stats
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	status := SystemStatusResponse{
		UptimeSeconds: time.Since(h.started).Seconds(),
	}

	counts := map[string]*int{
		"trades":   &status.TradeCount,
		"accounts": &status.AccountCount,
		"payouts":  &status.PayoutCount,
	}
	for table, dest := range counts {
		row := h.db.QueryRow("SELECT COUNT(*) FROM " + table)
		if err := row.Scan(dest); err != nil {
			h.log.Error().Err(err).Str("table", table).Msg("Failed to count rows")
			http.Error(w, "Failed to read system status", http.StatusInternalServerError)
			return
		}
	}

	if info, err := os.Stat(h.db.Path()); err == nil {
		status.DatabaseBytes = info.Size()
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}
