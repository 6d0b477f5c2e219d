package accounts

import (
	"fmt"
	"strings"
	"time"
)

// AccountStatus represents the lifecycle state of a prop account
type AccountStatus string

const (
	StatusEvalPhase1 AccountStatus = "Eval Phase 1"
	StatusEvalPhase2 AccountStatus = "Eval Phase 2"
	StatusFunded     AccountStatus = "Funded"
	StatusFailed     AccountStatus = "Failed"
	StatusBreached   AccountStatus = "Breached"
)

// IsValid checks if the status is a known value
func (s AccountStatus) IsValid() bool {
	switch s {
	case StatusEvalPhase1, StatusEvalPhase2, StatusFunded, StatusFailed, StatusBreached:
		return true
	}
	return false
}

// IsEvaluation returns true while the account is in an evaluation phase
func (s AccountStatus) IsEvaluation() bool {
	return s == StatusEvalPhase1 || s == StatusEvalPhase2
}

// IsEnded returns true for statuses that stop subscription billing
func (s AccountStatus) IsEnded() bool {
	return s == StatusFailed || s == StatusBreached
}

// StatusFromString creates an AccountStatus from a string (case-insensitive)
func StatusFromString(value string) (AccountStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "eval phase 1":
		return StatusEvalPhase1, nil
	case "eval phase 2":
		return StatusEvalPhase2, nil
	case "funded":
		return StatusFunded, nil
	case "failed":
		return StatusFailed, nil
	case "breached":
		return StatusBreached, nil
	default:
		return "", fmt.Errorf("invalid account status: %s", value)
	}
}

// Payout is a single recorded withdrawal from a funded account
type Payout struct {
	ID     string    `json:"id"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Note   string    `json:"note,omitempty"`
}

// PropAccount represents a proprietary-trading-firm evaluation or
// funded account tracked for cost and payout accounting.
//
// TotalPayouts and PayoutCount are derived from the payout list on
// load, so they always match the stored payout history.
type PropAccount struct {
	ID             string        `json:"id"`
	FirmName       string        `json:"firm_name"`
	AccountSize    float64       `json:"account_size"`
	Cost           float64       `json:"cost"`
	ActivationFee  *float64      `json:"activation_fee,omitempty"`
	IsSubscription bool          `json:"is_subscription"`
	MonthlyFee     *float64      `json:"monthly_fee,omitempty"`
	TargetProfit   *float64      `json:"target_profit,omitempty"`
	Status         AccountStatus `json:"status"`
	DateAdded      time.Time     `json:"date_added"`
	DateFunded     *time.Time    `json:"date_funded,omitempty"`
	DateEnded      *time.Time    `json:"date_ended,omitempty"`
	TotalPayouts   float64       `json:"total_payouts"`
	PayoutCount    int           `json:"payout_count"`
	Payouts        []Payout      `json:"payouts"`
	Certificate    string        `json:"certificate,omitempty"`
	CreatedAt      *time.Time    `json:"created_at,omitempty"`
}

// Validate validates account data
func (a *PropAccount) Validate() error {
	if strings.TrimSpace(a.FirmName) == "" {
		return fmt.Errorf("firm name cannot be empty")
	}

	if a.AccountSize < 0 {
		return fmt.Errorf("account size cannot be negative")
	}

	if a.Cost < 0 {
		return fmt.Errorf("cost cannot be negative")
	}

	if a.Status == "" {
		a.Status = StatusEvalPhase1
	}
	if !a.Status.IsValid() {
		return fmt.Errorf("invalid account status: %s", a.Status)
	}

	a.FirmName = strings.TrimSpace(a.FirmName)

	return nil
}

// Transition moves the account to a new status, applying the date side
// effects of the change:
//   - entering Funded stamps DateFunded (once) and clears DateEnded
//   - entering Failed or Breached stamps DateEnded (once)
//   - entering any other status clears DateEnded, reviving billing
//
// Any status may transition to any other; there is no enforced graph.
func (a *PropAccount) Transition(newStatus AccountStatus, now time.Time) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid account status: %s", newStatus)
	}

	a.Status = newStatus

	switch {
	case newStatus.IsEnded():
		if a.DateEnded == nil {
			ended := now
			a.DateEnded = &ended
		}
	case newStatus == StatusFunded:
		if a.DateFunded == nil {
			funded := now
			a.DateFunded = &funded
		}
		a.DateEnded = nil
	default:
		a.DateEnded = nil
	}

	return nil
}

// RecomputePayoutAggregates rederives TotalPayouts and PayoutCount
// from the payout list
func (a *PropAccount) RecomputePayoutAggregates() {
	total := 0.0
	for _, p := range a.Payouts {
		total += p.Amount
	}
	a.TotalPayouts = total
	a.PayoutCount = len(a.Payouts)
}
