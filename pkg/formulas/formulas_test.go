package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev([]float64{5}))
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-9)
}

func TestVariance(t *testing.T) {
	assert.Equal(t, 0.0, Variance(nil))
	assert.InDelta(t, 1.0, Variance([]float64{1, 2, 3}), 1e-9)
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		equity []float64
		want   float64
	}{
		{"too short", []float64{100}, 0},
		{"monotonic rise", []float64{10, 20, 30}, 0},
		{"single dip", []float64{100, 60, 120}, 40},
		{"deepest of several dips", []float64{0, 50, 20, 80, 10, 90}, 70},
		{"negative territory", []float64{-10, -50, -20}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxDrawdown(tt.equity))
		})
	}
}
