package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTrade() Trade {
	entry := time.Date(2025, 5, 6, 9, 30, 0, 0, time.UTC)
	return Trade{
		ID:        "t1",
		Symbol:    "es",
		Direction: DirectionLong,
		Session:   SessionLondon,
		EntryDate: entry,
		ExitDate:  entry.Add(2 * time.Hour),
		Pnl:       150,
	}
}

func TestTrade_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Trade)
		wantErr string
	}{
		{
			name:   "valid trade",
			mutate: func(tr *Trade) {},
		},
		{
			name:    "blank symbol",
			mutate:  func(tr *Trade) { tr.Symbol = "   " },
			wantErr: "symbol cannot be empty",
		},
		{
			name:    "bad direction",
			mutate:  func(tr *Trade) { tr.Direction = "Sideways" },
			wantErr: "invalid direction",
		},
		{
			name:    "bad session",
			mutate:  func(tr *Trade) { tr.Session = "Midnight" },
			wantErr: "invalid session",
		},
		{
			name:    "negative commission",
			mutate:  func(tr *Trade) { tr.Commission = -1 },
			wantErr: "commission cannot be negative",
		},
		{
			name:    "exit before entry",
			mutate:  func(tr *Trade) { tr.ExitDate = tr.EntryDate.Add(-time.Minute) },
			wantErr: "exit date cannot precede entry date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade := validTrade()
			tt.mutate(&trade)

			err := trade.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestTrade_ValidateNormalizes(t *testing.T) {
	trade := validTrade()
	trade.Symbol = "  nq "
	trade.Mistakes = []string{"FOMO", " FOMO", "Early Exit", "", "FOMO"}

	assert.NoError(t, trade.Validate())
	assert.Equal(t, "NQ", trade.Symbol)
	assert.Equal(t, []string{"FOMO", "Early Exit"}, trade.Mistakes)
	assert.Equal(t, TradeStatusClosed, trade.Status)
}

func TestTrade_ValidateDerivesOutcome(t *testing.T) {
	tests := []struct {
		name string
		pnl  float64
		want Outcome
	}{
		{"positive is a win", 0.01, OutcomeWin},
		{"negative is a loss", -0.01, OutcomeLoss},
		{"zero is break-even", 0, OutcomeBreakEven},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade := validTrade()
			trade.Pnl = tt.pnl

			assert.NoError(t, trade.Validate())
			assert.Equal(t, tt.want, trade.Outcome)
		})
	}
}

func TestDirectionFromString(t *testing.T) {
	d, err := DirectionFromString("  long ")
	assert.NoError(t, err)
	assert.Equal(t, DirectionLong, d)

	d, err = DirectionFromString("call")
	assert.NoError(t, err)
	assert.Equal(t, DirectionCall, d)

	_, err = DirectionFromString("sideways")
	assert.Error(t, err)
}

func TestDirection_IsLongBiased(t *testing.T) {
	assert.True(t, DirectionLong.IsLongBiased())
	assert.True(t, DirectionCall.IsLongBiased())
	assert.False(t, DirectionShort.IsLongBiased())
	assert.False(t, DirectionPut.IsLongBiased())
}
