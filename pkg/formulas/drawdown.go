package formulas

// MaxDrawdown calculates the largest peak-to-trough decline of an
// equity series, in currency terms. Equity curves here are cumulative
// realized P&L, so the drawdown is expressed as an absolute amount
// rather than a percentage of peak (the peak can be zero or negative).
//
// Returns 0 for series shorter than two points or monotonically
// rising series.
func MaxDrawdown(equity []float64) float64 {
	if len(equity) < 2 {
		return 0
	}

	maxDrawdown := 0.0
	peak := equity[0]

	for _, value := range equity {
		if value > peak {
			peak = value
		}

		if drawdown := peak - value; drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return maxDrawdown
}
