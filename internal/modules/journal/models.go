package journal

import (
	"fmt"
	"strings"
	"time"
)

// Direction represents the traded direction of a position
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
	DirectionCall  Direction = "Call Options"
	DirectionPut   Direction = "Put Options"
)

// IsValid checks if the direction is a known value
func (d Direction) IsValid() bool {
	switch d {
	case DirectionLong, DirectionShort, DirectionCall, DirectionPut:
		return true
	}
	return false
}

// IsLongBiased returns true for directions that profit when price rises
func (d Direction) IsLongBiased() bool {
	return d == DirectionLong || d == DirectionCall
}

// DirectionFromString creates a Direction from a string (case-insensitive)
func DirectionFromString(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "long":
		return DirectionLong, nil
	case "short":
		return DirectionShort, nil
	case "call options", "call":
		return DirectionCall, nil
	case "put options", "put":
		return DirectionPut, nil
	default:
		return "", fmt.Errorf("invalid direction: %s", value)
	}
}

// Session represents the trading session a trade was taken in
type Session string

const (
	SessionAsia    Session = "Asia"
	SessionLondon  Session = "London"
	SessionNYAM    Session = "NY AM"
	SessionNYLunch Session = "NY Lunch"
	SessionNYPM    Session = "NY PM"
	SessionOther   Session = "Other"
)

// IsValid checks if the session is a known value
func (s Session) IsValid() bool {
	switch s {
	case SessionAsia, SessionLondon, SessionNYAM, SessionNYLunch, SessionNYPM, SessionOther:
		return true
	}
	return false
}

// SessionFromString creates a Session from a string (case-insensitive)
func SessionFromString(value string) (Session, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "asia":
		return SessionAsia, nil
	case "london":
		return SessionLondon, nil
	case "ny am":
		return SessionNYAM, nil
	case "ny lunch":
		return SessionNYLunch, nil
	case "ny pm":
		return SessionNYPM, nil
	case "other", "":
		return SessionOther, nil
	default:
		return "", fmt.Errorf("invalid session: %s", value)
	}
}

// TradeStatus represents the lifecycle state of a trade record
type TradeStatus string

const (
	TradeStatusOpen    TradeStatus = "OPEN"
	TradeStatusClosed  TradeStatus = "CLOSED"
	TradeStatusPending TradeStatus = "PENDING"
)

// IsValid checks if the trade status is a known value
func (ts TradeStatus) IsValid() bool {
	return ts == TradeStatusOpen || ts == TradeStatusClosed || ts == TradeStatusPending
}

// Outcome classifies a trade result by the sign of its P&L
type Outcome string

const (
	OutcomeWin       Outcome = "WIN"
	OutcomeLoss      Outcome = "LOSS"
	OutcomeBreakEven Outcome = "BREAK_EVEN"
)

// OutcomeFromPnl derives the outcome classification from a realized P&L
func OutcomeFromPnl(pnl float64) Outcome {
	switch {
	case pnl > 0:
		return OutcomeWin
	case pnl < 0:
		return OutcomeLoss
	default:
		return OutcomeBreakEven
	}
}

// Trade represents a single journaled trade.
//
// Pnl is the gross realized profit/loss; commission is tracked as a
// separate field and is never folded into pnl.
type Trade struct {
	ID             string      `json:"id"`
	AccountID      string      `json:"account_id,omitempty"`
	Symbol         string      `json:"symbol"`
	Direction      Direction   `json:"direction"`
	Session        Session     `json:"session"`
	Status         TradeStatus `json:"status"`
	Outcome        Outcome     `json:"outcome"`
	EntryDate      time.Time   `json:"entry_date"`
	ExitDate       time.Time   `json:"exit_date"`
	EntryPrice     *float64    `json:"entry_price,omitempty"`
	ExitPrice      *float64    `json:"exit_price,omitempty"`
	Size           *float64    `json:"size,omitempty"`
	StopLoss       *float64    `json:"stop_loss,omitempty"`
	Pnl            float64     `json:"pnl"`
	Commission     float64     `json:"commission"`
	RiskPercentage *float64    `json:"risk_percentage,omitempty"`
	RMultiple      *float64    `json:"r_multiple,omitempty"`
	Setup          string      `json:"setup"`
	Mistakes       []string    `json:"mistakes"`
	Notes          string      `json:"notes"`
	Screenshot     string      `json:"screenshot,omitempty"`
	CopyGroupID    string      `json:"copy_group_id,omitempty"`
	CreatedAt      *time.Time  `json:"created_at,omitempty"`
}

// Validate validates trade data and normalizes symbol and mistake tags
func (t *Trade) Validate() error {
	if strings.TrimSpace(t.Symbol) == "" {
		return fmt.Errorf("symbol cannot be empty")
	}

	if !t.Direction.IsValid() {
		return fmt.Errorf("invalid direction: %s", t.Direction)
	}

	if !t.Session.IsValid() {
		return fmt.Errorf("invalid session: %s", t.Session)
	}

	if t.Status == "" {
		t.Status = TradeStatusClosed
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", t.Status)
	}

	if t.Commission < 0 {
		return fmt.Errorf("commission cannot be negative")
	}

	if t.ExitDate.Before(t.EntryDate) {
		return fmt.Errorf("exit date cannot precede entry date")
	}

	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	t.Mistakes = dedupeTags(t.Mistakes)
	t.Outcome = OutcomeFromPnl(t.Pnl)

	return nil
}

// dedupeTags removes duplicate and blank tags, preserving entry order
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
