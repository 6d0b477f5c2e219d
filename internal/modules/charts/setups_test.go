package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yizinity/journal/internal/modules/journal"
	"github.com/yizinity/journal/pkg/formulas"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func TestBuildSetupBreakdown_Aggregates(t *testing.T) {
	trades := []journal.Trade{
		{Setup: "FVG", Pnl: 50},
		{Setup: "FVG", Pnl: -20},
	}

	stats := BuildSetupBreakdown(trades)

	assert.Len(t, stats, 1)
	assert.Equal(t, SetupStats{
		Name:       "FVG",
		Count:      2,
		WinRate:    50,
		Pnl:        30,
		Expectancy: 15,
	}, stats[0])
}

func TestBuildSetupBreakdown_SortsByPnlDescending(t *testing.T) {
	trades := []journal.Trade{
		{Setup: "OB", Pnl: -10},
		{Setup: "FVG", Pnl: 120},
		{Setup: "Breaker", Pnl: 40},
	}

	stats := BuildSetupBreakdown(trades)

	assert.Equal(t, []string{"FVG", "Breaker", "OB"}, []string{
		stats[0].Name, stats[1].Name, stats[2].Name,
	})
}

func TestBuildSetupBreakdown_EmptySetupLabel(t *testing.T) {
	trades := []journal.Trade{{Setup: "", Pnl: 25}}

	stats := BuildSetupBreakdown(trades)

	assert.Equal(t, "No Setup", stats[0].Name)
}

func TestBuildReportSummary(t *testing.T) {
	trades := []journal.Trade{
		tradeOn(day(2025, 3, 10), 100),
		tradeOn(day(2025, 3, 11), -40),
		tradeOn(day(2025, 3, 12), 60),
	}

	summary := BuildReportSummary(trades)

	// Equity runs 100 -> 60 -> 120, so the worst drop is 40
	assert.Equal(t, 40.0, summary.MaxDrawdown)
	assert.Equal(t, 3, summary.TradingDays)
	assert.InDelta(t, 40.0, summary.DailyMeanPnl, 1e-9)
	assert.InDelta(t, formulas.StdDev([]float64{100, -40, 60}), summary.DailyStdDev, 1e-9)
}
