package massbalance

import (
	"math"
	"testing"

	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	y, err := Compute(8.0, 1.21, 1.04, 0.59)
	require.NoError(t, err)

	assert.Equal(t, 2.25, Round2(y.Liquid))
	assert.Equal(t, 5.16, Round2(y.Gas))
	assert.Equal(t, 0.59, Round2(y.Residue))
	assert.Equal(t, 28.13, Round2(y.LiquidPct))
	assert.Equal(t, 64.5, Round2(y.GasPct))
	assert.Equal(t, 7.38, Round2(y.ResiduePct))
	assert.Equal(t, 0.54, Round2(y.WtR1))
	assert.Equal(t, 0.46, Round2(y.WtR2))
}

func TestComputeBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		injected float64
		wantErr  bool
	}{
		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"positive", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.injected, 0, 0, 0)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidMassInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComputeClampsGas(t *testing.T) {
	y, err := Compute(10, 6, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, y.Gas)
	assert.Equal(t, 0.0, y.GasPct)
	assert.InDelta(t, 120.0, y.LiquidPct, 1e-9)
}

func TestComputeAllGas(t *testing.T) {
	y, err := Compute(5, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, y.WtR1)
	assert.Equal(t, 0.0, y.WtR2)
	assert.InDelta(t, 80.0, y.GasPct, 1e-9)
}

func TestFromReadings(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	_, err := FromReadings(models.MassReadings{Recipe1: f(1)})
	assert.ErrorIs(t, err, models.ErrInvalidMassInput)

	y, err := FromReadings(models.MassReadings{Recipe1: f(1), Recipe2: f(1), Ash: f(0), Injected: f(4)})
	require.NoError(t, err)
	assert.Equal(t, 50.0, y.LiquidPct)
	assert.Equal(t, []models.NamedValue{
		{Name: PhaseLiquid, Value: 50},
		{Name: PhaseGas, Value: 50},
		{Name: PhaseResidue, Value: 0},
	}, Phases(y))
	assert.Len(t, Rows(y), 9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 28.13, Round2(2.25/8*100))
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, -1.01, Round2(-1.005))
	assert.Equal(t, 0.0, Round2(0))
}
