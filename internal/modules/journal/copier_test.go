package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCommand(accountIDs ...string) LogTradeCommand {
	entry := time.Date(2025, 5, 6, 9, 30, 0, 0, time.UTC)
	return LogTradeCommand{
		AccountIDs:     accountIDs,
		Symbol:         "nq",
		Direction:      DirectionLong,
		Session:        SessionNYAM,
		EntryDate:      entry,
		ExitDate:       entry.Add(time.Hour),
		RiskPercentage: 1,
		RMultiple:      2,
		Setup:          "FVG",
	}
}

func TestExpand_RequiresAccounts(t *testing.T) {
	cmd := validCommand()
	_, err := cmd.Expand(AccountSizes{})
	assert.Error(t, err)
}

func TestExpand_UnknownAccount(t *testing.T) {
	cmd := validCommand("missing")
	_, err := cmd.Expand(AccountSizes{"other": 50000})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account")
}

func TestExpand_SingleAccountUsesExplicitPnl(t *testing.T) {
	pnl := 340.0
	cmd := validCommand("a1")
	cmd.Pnl = &pnl

	trades, err := cmd.Expand(AccountSizes{"a1": 50000})
	assert.NoError(t, err)
	assert.Len(t, trades, 1)
	assert.Equal(t, 340.0, trades[0].Pnl)
	assert.Empty(t, trades[0].CopyGroupID)
	assert.Equal(t, OutcomeWin, trades[0].Outcome)
	// Symbol is normalized on validation
	assert.Equal(t, "NQ", trades[0].Symbol)
}

func TestExpand_SingleAccountPriceCalculation(t *testing.T) {
	entry, exit, size := 100.0, 110.0, 3.0

	tests := []struct {
		name      string
		direction Direction
		want      float64
	}{
		{"long profits on rise", DirectionLong, 30},
		{"short loses on rise", DirectionShort, -30},
		{"calls follow long bias", DirectionCall, 30},
		{"puts follow short bias", DirectionPut, -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCommand("a1")
			cmd.Direction = tt.direction
			cmd.EntryPrice = &entry
			cmd.ExitPrice = &exit
			cmd.Size = &size

			trades, err := cmd.Expand(AccountSizes{"a1": 50000})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, trades[0].Pnl)
		})
	}
}

func TestExpand_MultiAccountSizesPnlPerAccount(t *testing.T) {
	cmd := validCommand("small", "large")

	trades, err := cmd.Expand(AccountSizes{"small": 25000, "large": 100000})
	assert.NoError(t, err)
	assert.Len(t, trades, 2)

	// pnl = size x 1% x 2R
	assert.Equal(t, 500.0, trades[0].Pnl)
	assert.Equal(t, 2000.0, trades[1].Pnl)
}

func TestExpand_MultiAccountSharesProvenance(t *testing.T) {
	cmd := validCommand("a1", "a2", "a3")

	trades, err := cmd.Expand(AccountSizes{"a1": 50000, "a2": 50000, "a3": 50000})
	assert.NoError(t, err)

	group := trades[0].CopyGroupID
	assert.NotEmpty(t, group)
	for i, trade := range trades {
		assert.Equal(t, group, trade.CopyGroupID)
		assert.True(t, strings.HasPrefix(trade.ID, group))
		if i > 0 {
			assert.NotEqual(t, trades[0].ID, trade.ID)
		}
	}

	assert.Equal(t, "[Trade Copier] Executed on 3 accounts.", trades[0].Notes)
}

func TestExpand_DefaultsSetup(t *testing.T) {
	cmd := validCommand("a1")
	cmd.Setup = ""

	trades, err := cmd.Expand(AccountSizes{"a1": 50000})
	assert.NoError(t, err)
	assert.Equal(t, "Discretionary", trades[0].Setup)
}
