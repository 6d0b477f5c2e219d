package events

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// EventType represents different event types
type EventType string

const (
	TradeLogged          EventType = "TRADE_LOGGED"
	TradeCopied          EventType = "TRADE_COPIED"
	TradeUpdated         EventType = "TRADE_UPDATED"
	TradeDeleted         EventType = "TRADE_DELETED"
	AccountCreated       EventType = "ACCOUNT_CREATED"
	AccountUpdated       EventType = "ACCOUNT_UPDATED"
	AccountDeleted       EventType = "ACCOUNT_DELETED"
	AccountStatusChanged EventType = "ACCOUNT_STATUS_CHANGED"
	PayoutLogged         EventType = "PAYOUT_LOGGED"
	InsightGenerated     EventType = "INSIGHT_GENERATED"
	ErrorOccurred        EventType = "ERROR_OCCURRED"
)

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}

// Listener receives every emitted event. Used by the analytics service
// to invalidate memoized results when journal data changes.
type Listener func(Event)

// Manager handles event emission and logging
type Manager struct {
	log       zerolog.Logger
	listeners []Listener
}

// NewManager creates a new event manager
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		log: log.With().Str("service", "events").Logger(),
	}
}

// Subscribe registers a listener for all events. Not safe for
// concurrent use with Emit; subscriptions happen during wiring.
func (m *Manager) Subscribe(l Listener) {
	m.listeners = append(m.listeners, l)
}

// Emit records an event and notifies listeners
func (m *Manager) Emit(module string, eventType EventType, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
		Module:    module,
	}

	payload, _ := json.Marshal(event.Data)
	m.log.Info().
		Str("event", string(eventType)).
		Str("module", module).
		RawJSON("data", payload).
		Msg("Event emitted")

	for _, l := range m.listeners {
		l(event)
	}
}
