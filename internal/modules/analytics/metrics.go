package analytics

import (
	"math"
	"sort"

	"github.com/yizinity/journal/internal/modules/journal"
)

// Metrics is the dashboard performance summary for a trade set
type Metrics struct {
	TotalTrades   int     `json:"total_trades"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"win_rate"`
	NetPnl        float64 `json:"net_pnl"`
	GrossProfit   float64 `json:"gross_profit"`
	GrossLoss     float64 `json:"gross_loss"`
	ProfitFactor  float64 `json:"profit_factor"`
	AvgWin        float64 `json:"avg_win"`
	AvgLoss       float64 `json:"avg_loss"`
	BestDay       float64 `json:"best_day"`
	WorstDay      float64 `json:"worst_day"`
	CurrentStreak int     `json:"current_streak"`
}

// ComputeMetrics computes performance metrics over the filtered trade
// set. The full set feeds only the streak, which is a momentum reading
// independent of the active date filter.
//
// Break-even trades count as losses in the win/loss tally. When gross
// loss is zero the profit factor is the raw gross profit rather than
// infinity, so the ratio stays finite for loss-free sets.
func ComputeMetrics(all, filtered []journal.Trade) Metrics {
	m := Metrics{TotalTrades: len(filtered)}

	for _, t := range filtered {
		m.NetPnl += t.Pnl
		if t.Pnl > 0 {
			m.Wins++
			m.GrossProfit += t.Pnl
		} else {
			m.Losses++
			m.GrossLoss += -t.Pnl
		}
		if t.Pnl > m.BestDay {
			m.BestDay = t.Pnl
		}
		if t.Pnl < m.WorstDay {
			m.WorstDay = t.Pnl
		}
	}

	if m.TotalTrades > 0 {
		m.WinRate = math.Round(float64(m.Wins)/float64(m.TotalTrades)*1000) / 10
	}
	if m.GrossLoss > 0 {
		m.ProfitFactor = m.GrossProfit / m.GrossLoss
	} else {
		m.ProfitFactor = m.GrossProfit
	}
	if m.Wins > 0 {
		m.AvgWin = m.GrossProfit / float64(m.Wins)
	}
	if m.Losses > 0 {
		m.AvgLoss = m.GrossLoss / float64(m.Losses)
	}

	m.CurrentStreak = currentStreak(all)

	return m
}

// currentStreak counts consecutive wins from the most recent trade by
// exit date, stopping at the first non-win.
func currentStreak(trades []journal.Trade) int {
	if len(trades) == 0 {
		return 0
	}

	sorted := make([]journal.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ExitDate.After(sorted[j].ExitDate)
	})

	streak := 0
	for _, t := range sorted {
		if t.Pnl <= 0 {
			break
		}
		streak++
	}
	return streak
}
