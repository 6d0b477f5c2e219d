package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yizinity/journal/internal/modules/journal"
)

func tradeAt(pnl float64, exit time.Time) journal.Trade {
	return journal.Trade{
		Symbol:    "NQ",
		Pnl:       pnl,
		EntryDate: exit.Add(-time.Hour),
		ExitDate:  exit,
	}
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics(nil, nil)

	assert.Equal(t, 0, m.TotalTrades)
	assert.Equal(t, 0.0, m.WinRate)
	assert.Equal(t, 0.0, m.ProfitFactor)
	assert.Equal(t, 0, m.CurrentStreak)
}

func TestComputeMetrics_Tallies(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	trades := []journal.Trade{
		tradeAt(100, base),
		tradeAt(-40, base.Add(24*time.Hour)),
		tradeAt(0, base.Add(48*time.Hour)),
	}

	m := ComputeMetrics(trades, trades)

	assert.Equal(t, 3, m.TotalTrades)
	assert.Equal(t, 1, m.Wins)
	// Break-even counts as a loss in the tally
	assert.Equal(t, 2, m.Losses)
	assert.Equal(t, 33.3, m.WinRate)
	assert.Equal(t, 60.0, m.NetPnl)
	assert.Equal(t, 100.0, m.GrossProfit)
	assert.Equal(t, 40.0, m.GrossLoss)
	assert.InDelta(t, 2.5, m.ProfitFactor, 1e-9)
	assert.Equal(t, 100.0, m.AvgWin)
	assert.Equal(t, 20.0, m.AvgLoss)
	assert.Equal(t, 100.0, m.BestDay)
	assert.Equal(t, -40.0, m.WorstDay)
}

func TestComputeMetrics_NetPnlEqualsGrossDifference(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	trades := []journal.Trade{
		tradeAt(250, base),
		tradeAt(-75, base.Add(time.Hour)),
		tradeAt(-25, base.Add(2*time.Hour)),
		tradeAt(10, base.Add(3*time.Hour)),
	}

	m := ComputeMetrics(trades, trades)

	assert.InDelta(t, m.GrossProfit-m.GrossLoss, m.NetPnl, 1e-9)
}

func TestComputeMetrics_ProfitFactorWithoutLosses(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	trades := []journal.Trade{
		tradeAt(120, base),
		tradeAt(80, base.Add(time.Hour)),
	}

	m := ComputeMetrics(trades, trades)

	// With zero gross loss the factor is the raw gross profit
	assert.Equal(t, 200.0, m.ProfitFactor)
}

func TestComputeMetrics_BestAndWorstDayNeverCrossZero(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	allLosses := []journal.Trade{tradeAt(-10, base), tradeAt(-20, base.Add(time.Hour))}
	m := ComputeMetrics(allLosses, allLosses)
	assert.Equal(t, 0.0, m.BestDay)
	assert.Equal(t, -20.0, m.WorstDay)

	allWins := []journal.Trade{tradeAt(10, base), tradeAt(20, base.Add(time.Hour))}
	m = ComputeMetrics(allWins, allWins)
	assert.Equal(t, 20.0, m.BestDay)
	assert.Equal(t, 0.0, m.WorstDay)
}

func TestCurrentStreak(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		// pnl values ordered newest first
		pnls []float64
		want int
	}{
		{name: "no trades", pnls: nil, want: 0},
		{name: "latest is a loss", pnls: []float64{-50, 100, 100}, want: 0},
		{name: "latest is break-even", pnls: []float64{0, 100}, want: 0},
		{name: "two wins then a loss", pnls: []float64{100, 50, -20, 80}, want: 2},
		{name: "all wins", pnls: []float64{10, 20, 30}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades := make([]journal.Trade, len(tt.pnls))
			for i, pnl := range tt.pnls {
				// Older trades get earlier exit dates
				trades[i] = tradeAt(pnl, base.Add(-time.Duration(i)*24*time.Hour))
			}

			assert.Equal(t, tt.want, currentStreak(trades))
		})
	}
}

func TestComputeMetrics_StreakUsesFullSet(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	all := []journal.Trade{
		tradeAt(100, base),
		tradeAt(50, base.Add(-24*time.Hour)),
		tradeAt(-20, base.Add(-48*time.Hour)),
	}

	// Empty filter still reports the momentum streak
	m := ComputeMetrics(all, nil)

	assert.Equal(t, 0, m.TotalTrades)
	assert.Equal(t, 2, m.CurrentStreak)
}
