package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yizinity/journal/internal/modules/journal"
)

func tradeOn(day time.Time, pnl float64) journal.Trade {
	return journal.Trade{Symbol: "ES", EntryDate: day, ExitDate: day.Add(time.Hour), Pnl: pnl}
}

func TestBuildEquityCurve_CumulativeSum(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	trades := []journal.Trade{
		tradeOn(base, 100),
		tradeOn(base.AddDate(0, 0, 1), -40),
		tradeOn(base.AddDate(0, 0, 2), 60),
	}

	curve := BuildEquityCurve(trades)

	assert.Len(t, curve, 3)
	assert.Equal(t, []float64{100, 60, 120}, []float64{
		curve[0].CumulativePnl, curve[1].CumulativePnl, curve[2].CumulativePnl,
	})
	assert.Equal(t, "3/10", curve[0].Date)
}

func TestBuildEquityCurve_MergesSameDay(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	trades := []journal.Trade{
		tradeOn(base, 100),
		tradeOn(base.Add(3*time.Hour), -30),
		tradeOn(base.AddDate(0, 0, 1), 50),
	}

	curve := BuildEquityCurve(trades)

	assert.Len(t, curve, 2)
	assert.Equal(t, 70.0, curve[0].Pnl)
	assert.Equal(t, 120.0, curve[1].CumulativePnl)
}

func TestBuildEquityCurve_SortsByEntryDate(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	trades := []journal.Trade{
		tradeOn(base.AddDate(0, 0, 2), 60),
		tradeOn(base, 100),
		tradeOn(base.AddDate(0, 0, 1), -40),
	}

	curve := BuildEquityCurve(trades)

	assert.Equal(t, "3/10", curve[0].Date)
	assert.Equal(t, 120.0, curve[2].CumulativePnl)
}

func TestBuildEquityCurve_Empty(t *testing.T) {
	assert.Empty(t, BuildEquityCurve(nil))
}

func TestDownsample(t *testing.T) {
	points := make([]EquityPoint, 23)
	for i := range points {
		points[i] = EquityPoint{Date: "1/1", Pnl: float64(i)}
	}

	tests := []struct {
		name      string
		tf        Timeframe
		wantLen   int
		wantFirst float64
		wantLast  float64
	}{
		{"daily is identity", TimeframeDaily, 23, 0, 22},
		{"weekly strides by five", TimeframeWeekly, 6, 0, 22},
		{"monthly strides by twenty", TimeframeMonthly, 3, 0, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampled := Downsample(points, tt.tf)

			assert.Len(t, sampled, tt.wantLen)
			assert.Equal(t, tt.wantFirst, sampled[0].Pnl)
			assert.Equal(t, tt.wantLast, sampled[len(sampled)-1].Pnl)
		})
	}
}

func TestDownsample_LastPointNotDuplicated(t *testing.T) {
	points := make([]EquityPoint, 21)
	for i := range points {
		points[i] = EquityPoint{Pnl: float64(i)}
	}

	// Index 20 is both a stride hit and the final point
	sampled := Downsample(points, TimeframeMonthly)

	assert.Len(t, sampled, 2)
	assert.Equal(t, 20.0, sampled[1].Pnl)
}
