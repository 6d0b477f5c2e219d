package charts

import (
	"fmt"
	"sort"

	"github.com/yizinity/journal/internal/modules/journal"
)

// EquityPoint is one day on the cumulative P&L curve
type EquityPoint struct {
	Date          string  `json:"date"`
	Pnl           float64 `json:"pnl"`
	CumulativePnl float64 `json:"cumulative_pnl"`
}

// Timeframe controls how densely the equity curve is sampled
type Timeframe string

const (
	TimeframeDaily   Timeframe = "DAILY"
	TimeframeWeekly  Timeframe = "WEEKLY"
	TimeframeMonthly Timeframe = "MONTHLY"
)

// TimeframeFromString parses a timeframe, defaulting to daily
func TimeframeFromString(s string) Timeframe {
	switch Timeframe(s) {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly:
		return Timeframe(s)
	default:
		return TimeframeDaily
	}
}

// BuildEquityCurve builds the daily cumulative P&L series. Trades are
// ordered by entry date, merged by calendar day (M/D label), then
// accumulated chronologically.
func BuildEquityCurve(trades []journal.Trade) []EquityPoint {
	if len(trades) == 0 {
		return []EquityPoint{}
	}

	sorted := make([]journal.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EntryDate.Before(sorted[j].EntryDate)
	})

	points := make([]EquityPoint, 0, len(sorted))
	index := make(map[string]int)

	for _, t := range sorted {
		label := fmt.Sprintf("%d/%d", int(t.EntryDate.Month()), t.EntryDate.Day())
		if i, ok := index[label]; ok {
			points[i].Pnl += t.Pnl
			continue
		}
		index[label] = len(points)
		points = append(points, EquityPoint{Date: label, Pnl: t.Pnl})
	}

	running := 0.0
	for i := range points {
		running += points[i].Pnl
		points[i].CumulativePnl = running
	}

	return points
}

// Downsample thins the daily series for the weekly and monthly views.
// These are index-stride subsamples of the daily curve (every 5th or
// 20th point plus the final one), not true calendar aggregation.
func Downsample(points []EquityPoint, tf Timeframe) []EquityPoint {
	stride := 1
	switch tf {
	case TimeframeWeekly:
		stride = 5
	case TimeframeMonthly:
		stride = 20
	}
	if stride == 1 || len(points) == 0 {
		return points
	}

	sampled := make([]EquityPoint, 0, len(points)/stride+1)
	for i := 0; i < len(points); i += stride {
		sampled = append(sampled, points[i])
	}
	last := points[len(points)-1]
	if sampled[len(sampled)-1] != last {
		sampled = append(sampled, last)
	}
	return sampled
}
