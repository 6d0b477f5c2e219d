package charts

import (
	"github.com/yizinity/journal/internal/modules/journal"
	"github.com/yizinity/journal/pkg/formulas"
)

// ReportSummary carries distribution statistics for the reports view
type ReportSummary struct {
	MaxDrawdown  float64 `json:"max_drawdown"`
	DailyMeanPnl float64 `json:"daily_mean_pnl"`
	DailyStdDev  float64 `json:"daily_std_dev"`
	TradingDays  int     `json:"trading_days"`
}

// BuildReportSummary computes drawdown and daily P&L distribution
// stats over the equity curve of the given trades.
func BuildReportSummary(trades []journal.Trade) ReportSummary {
	curve := BuildEquityCurve(trades)

	daily := make([]float64, len(curve))
	equity := make([]float64, len(curve))
	for i, p := range curve {
		daily[i] = p.Pnl
		equity[i] = p.CumulativePnl
	}

	return ReportSummary{
		MaxDrawdown:  formulas.MaxDrawdown(equity),
		DailyMeanPnl: formulas.Mean(daily),
		DailyStdDev:  formulas.StdDev(daily),
		TradingDays:  len(curve),
	}
}
