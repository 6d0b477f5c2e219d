package analytics

import (
	"github.com/yizinity/journal/internal/modules/accounts"
	"github.com/yizinity/journal/internal/modules/journal"
)

// Profit targets as a fraction of account size when the firm does not
// publish an absolute target.
const (
	phase1TargetFraction = 0.10
	phase2TargetFraction = 0.05
)

// EvaluationProgress is the funding progress of one evaluation account
type EvaluationProgress struct {
	AccountID  string  `json:"account_id"`
	FirmName   string  `json:"firm_name"`
	Status     string  `json:"status"`
	CurrentPnl float64 `json:"current_pnl"`
	TargetPnl  float64 `json:"target_pnl"`
	Progress   float64 `json:"progress"`
}

// ComputeEvaluationProgress reports progress toward the profit target
// for every account still in an evaluation phase. The target is the
// account's own target profit when set, otherwise 10% of account size
// in phase 1 and 5% in phase 2. Progress is clamped to [0,100].
func ComputeEvaluationProgress(accts []accounts.PropAccount, trades []journal.Trade) []EvaluationProgress {
	pnlByAccount := make(map[string]float64)
	for _, t := range trades {
		if t.AccountID != "" {
			pnlByAccount[t.AccountID] += t.Pnl
		}
	}

	results := make([]EvaluationProgress, 0)
	for _, a := range accts {
		if !a.Status.IsEvaluation() {
			continue
		}

		targetPnl := 0.0
		if a.TargetProfit != nil && *a.TargetProfit > 0 {
			targetPnl = *a.TargetProfit
		} else if a.Status == accounts.StatusEvalPhase1 {
			targetPnl = a.AccountSize * phase1TargetFraction
		} else {
			targetPnl = a.AccountSize * phase2TargetFraction
		}

		currentPnl := pnlByAccount[a.ID]

		progress := 0.0
		if targetPnl > 0 {
			progress = currentPnl / targetPnl * 100
			if progress < 0 {
				progress = 0
			}
			if progress > 100 {
				progress = 100
			}
		}

		results = append(results, EvaluationProgress{
			AccountID:  a.ID,
			FirmName:   a.FirmName,
			Status:     string(a.Status),
			CurrentPnl: currentPnl,
			TargetPnl:  targetPnl,
			Progress:   progress,
		})
	}

	return results
}
