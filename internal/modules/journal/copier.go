package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LogTradeCommand is a single journal-entry action. Selecting more than
// one account turns it into a copier batch: the command expands to one
// trade per account, each sized from that account's balance and the
// shared risk definition, all carrying the same provenance tag.
type LogTradeCommand struct {
	AccountIDs     []string  `json:"account_ids"`
	Symbol         string    `json:"symbol"`
	Direction      Direction `json:"direction"`
	Session        Session   `json:"session"`
	EntryDate      time.Time `json:"entry_date"`
	ExitDate       time.Time `json:"exit_date"`
	Pnl            *float64  `json:"pnl,omitempty"`
	Commission     float64   `json:"commission"`
	RiskPercentage float64   `json:"risk_percentage"`
	RMultiple      float64   `json:"r_multiple"`
	EntryPrice     *float64  `json:"entry_price,omitempty"`
	ExitPrice      *float64  `json:"exit_price,omitempty"`
	Size           *float64  `json:"size,omitempty"`
	StopLoss       *float64  `json:"stop_loss,omitempty"`
	Setup          string    `json:"setup"`
	Mistakes       []string  `json:"mistakes"`
	Notes          string    `json:"notes"`
	Screenshot     string    `json:"screenshot,omitempty"`
}

// AccountSizes maps account id to account size, supplied by the caller
// so the copier never reaches into account storage itself.
type AccountSizes map[string]float64

// Expand turns the command into the trade records to persist.
//
// Multi-account batches derive each trade's pnl from the account size
// and the shared risk definition (size x risk% x R). A single-account
// entry uses the supplied pnl, falling back to a price calculation
// when prices and size are present.
func (c *LogTradeCommand) Expand(sizes AccountSizes) ([]Trade, error) {
	if len(c.AccountIDs) == 0 {
		return nil, fmt.Errorf("at least one account is required")
	}

	baseID := uuid.NewString()
	multi := len(c.AccountIDs) > 1

	setup := c.Setup
	if setup == "" {
		setup = "Discretionary"
	}

	notes := c.Notes
	if multi {
		notes = fmt.Sprintf("[Trade Copier] Executed on %d accounts.", len(c.AccountIDs))
	}

	trades := make([]Trade, 0, len(c.AccountIDs))
	for i, accountID := range c.AccountIDs {
		accountSize, ok := sizes[accountID]
		if !ok {
			return nil, fmt.Errorf("unknown account: %s", accountID)
		}

		var pnl float64
		if multi {
			riskAmount := accountSize * (c.RiskPercentage / 100)
			pnl = riskAmount * c.RMultiple
		} else {
			pnl = c.singlePnl()
		}

		id := baseID
		if multi {
			id = fmt.Sprintf("%s-%d", baseID, i)
		}

		riskPct := c.RiskPercentage
		rMultiple := c.RMultiple

		trade := Trade{
			ID:             id,
			AccountID:      accountID,
			Symbol:         c.Symbol,
			Direction:      c.Direction,
			Session:        c.Session,
			Status:         TradeStatusClosed,
			EntryDate:      c.EntryDate,
			ExitDate:       c.ExitDate,
			EntryPrice:     c.EntryPrice,
			ExitPrice:      c.ExitPrice,
			Size:           c.Size,
			StopLoss:       c.StopLoss,
			Pnl:            pnl,
			Commission:     c.Commission,
			RiskPercentage: &riskPct,
			RMultiple:      &rMultiple,
			Setup:          setup,
			Mistakes:       c.Mistakes,
			Notes:          notes,
			Screenshot:     c.Screenshot,
		}
		if multi {
			trade.CopyGroupID = baseID
		}

		if err := trade.Validate(); err != nil {
			return nil, err
		}

		trades = append(trades, trade)
	}

	return trades, nil
}

// singlePnl resolves the pnl for a one-account entry: explicit value
// first, then the price calculation when prices and size are known.
func (c *LogTradeCommand) singlePnl() float64 {
	if c.Pnl != nil {
		return *c.Pnl
	}

	if c.EntryPrice != nil && c.ExitPrice != nil && c.Size != nil {
		if c.Direction.IsLongBiased() {
			return (*c.ExitPrice - *c.EntryPrice) * *c.Size
		}
		return (*c.EntryPrice - *c.ExitPrice) * *c.Size
	}

	return 0
}
