package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiples(t *testing.T) {
	tests := []struct {
		name string
		got  *float64
		want float64
	}{
		{"tvpi", TVPI(150000, 100000), 1.5},
		{"dpi", DPI(80000, 100000), 0.8},
		{"rvpi", RVPI(70000, 100000), 0.7},
		{"moic", MOIC(200000, 100000), 2.0},
		{"called percent", CalledPercent(75000, 100000), 75.0},
		{"distributed percent", DistributedPercent(50000, 100000), 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.got)
			assert.InDelta(t, tt.want, *tt.got, 1e-12)
		})
	}
}

func TestMultiples_DenominatorGuard(t *testing.T) {
	tests := []struct {
		name string
		got  *float64
	}{
		{"tvpi zero paid-in", TVPI(150000, 0)},
		{"tvpi negative paid-in", TVPI(150000, -1)},
		{"dpi zero paid-in", DPI(80000, 0)},
		{"rvpi zero paid-in", RVPI(70000, 0)},
		{"moic zero invested", MOIC(200000, 0)},
		{"called zero commitment", CalledPercent(75000, 0)},
		{"distributed negative commitment", DistributedPercent(50000, -100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, tt.got)
		})
	}
}
