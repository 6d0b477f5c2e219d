package charts

import (
	"sort"

	"github.com/yizinity/journal/internal/modules/journal"
)

// SetupStats is the aggregated performance of one strategy label
type SetupStats struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	WinRate    float64 `json:"win_rate"`
	Pnl        float64 `json:"pnl"`
	Expectancy float64 `json:"expectancy"`
}

// BuildSetupBreakdown groups trades by strategy label and ranks the
// groups by total P&L. Untagged trades fall into "No Setup".
func BuildSetupBreakdown(trades []journal.Trade) []SetupStats {
	type group struct {
		count int
		wins  int
		pnl   float64
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, t := range trades {
		name := t.Setup
		if name == "" {
			name = "No Setup"
		}
		g, ok := groups[name]
		if !ok {
			g = &group{}
			groups[name] = g
			order = append(order, name)
		}
		g.count++
		g.pnl += t.Pnl
		if t.Pnl > 0 {
			g.wins++
		}
	}

	stats := make([]SetupStats, 0, len(order))
	for _, name := range order {
		g := groups[name]
		stats = append(stats, SetupStats{
			Name:       name,
			Count:      g.count,
			WinRate:    float64(g.wins) / float64(g.count) * 100,
			Pnl:        g.pnl,
			Expectancy: g.pnl / float64(g.count),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Pnl > stats[j].Pnl
	})

	return stats
}
