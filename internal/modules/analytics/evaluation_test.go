package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yizinity/journal/internal/modules/accounts"
	"github.com/yizinity/journal/internal/modules/journal"
)

func TestComputeEvaluationProgress_DefaultTargets(t *testing.T) {
	accts := []accounts.PropAccount{
		{ID: "p1", FirmName: "Apex", AccountSize: 50000, Status: accounts.StatusEvalPhase1},
		{ID: "p2", FirmName: "Apex", AccountSize: 50000, Status: accounts.StatusEvalPhase2},
		{ID: "f1", FirmName: "Apex", AccountSize: 50000, Status: accounts.StatusFunded},
	}
	trades := []journal.Trade{
		{AccountID: "p1", Pnl: 2500},
		{AccountID: "p2", Pnl: 1250},
		{AccountID: "f1", Pnl: 9999},
	}

	results := ComputeEvaluationProgress(accts, trades)

	// Funded accounts are not evaluations
	assert.Len(t, results, 2)

	assert.Equal(t, "p1", results[0].AccountID)
	assert.Equal(t, 5000.0, results[0].TargetPnl)
	assert.Equal(t, 50.0, results[0].Progress)

	// Phase 2 target is 5% of account size
	assert.Equal(t, 2500.0, results[1].TargetPnl)
	assert.Equal(t, 50.0, results[1].Progress)
}

func TestComputeEvaluationProgress_ExplicitTargetWins(t *testing.T) {
	target := 3000.0
	accts := []accounts.PropAccount{
		{ID: "p1", FirmName: "Apex", AccountSize: 50000, TargetProfit: &target, Status: accounts.StatusEvalPhase1},
	}
	trades := []journal.Trade{{AccountID: "p1", Pnl: 1500}}

	results := ComputeEvaluationProgress(accts, trades)

	assert.Equal(t, 3000.0, results[0].TargetPnl)
	assert.Equal(t, 50.0, results[0].Progress)
}

func TestComputeEvaluationProgress_Clamping(t *testing.T) {
	tests := []struct {
		name string
		pnl  float64
		want float64
	}{
		{"negative pnl clamps to zero", -800, 0},
		{"overshoot clamps to hundred", 12000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accts := []accounts.PropAccount{
				{ID: "p1", FirmName: "Apex", AccountSize: 50000, Status: accounts.StatusEvalPhase1},
			}
			trades := []journal.Trade{{AccountID: "p1", Pnl: tt.pnl}}

			results := ComputeEvaluationProgress(accts, trades)
			assert.Equal(t, tt.want, results[0].Progress)
		})
	}
}

func TestComputeEvaluationProgress_NoEvaluations(t *testing.T) {
	accts := []accounts.PropAccount{
		{ID: "f1", FirmName: "Apex", AccountSize: 50000, Status: accounts.StatusFunded},
	}

	results := ComputeEvaluationProgress(accts, nil)
	assert.Empty(t, results)
}
