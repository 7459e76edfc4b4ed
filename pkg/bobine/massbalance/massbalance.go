// Package massbalance derives phase yields from the context masses.
package massbalance

import (
	"fmt"
	"math"

	"github.com/lucas-science/bobine/pkg/bobine/models"
)

// Phase names.
const (
	PhaseLiquid  = "Liquid"
	PhaseGas     = "Gas"
	PhaseResidue = "Residue"
)

// Compute derives the mass balance of a run from its masses in kg. The
// gas mass is the unaccounted remainder, floored at zero.
func Compute(injected, recipe1, recipe2, ash float64) (models.Yield, error) {
	if math.IsNaN(injected) || injected <= 0 {
		return models.Yield{}, fmt.Errorf("%w: injected mass must be positive, got %v kg", models.ErrInvalidMassInput, injected)
	}
	liquid := recipe1 + recipe2
	y := models.Yield{
		Injected: injected,
		Recipe1:  recipe1,
		Recipe2:  recipe2,
		Liquid:   liquid,
		Gas:      math.Max(0, injected-liquid-ash),
		Residue:  ash,
	}
	y.LiquidPct = y.Liquid / injected * 100
	y.GasPct = y.Gas / injected * 100
	y.ResiduePct = y.Residue / injected * 100
	if liquid > 0 {
		y.WtR1 = recipe1 / liquid
		y.WtR2 = recipe2 / liquid
	}
	return y, nil
}

// FromReadings computes the yield of complete context readings.
func FromReadings(m models.MassReadings) (models.Yield, error) {
	if missing := m.Missing(); len(missing) > 0 {
		return models.Yield{}, fmt.Errorf("%w: missing %v", models.ErrInvalidMassInput, missing)
	}
	return Compute(*m.Injected, *m.Recipe1, *m.Recipe2, *m.Ash)
}

// Round2 rounds half away from zero to two decimals. The nudge absorbs
// binary representation error such as 28.125 stored as 28.12499.
func Round2(x float64) float64 {
	return math.Round((x+math.Copysign(1e-9, x))*100) / 100
}

// Phases returns the rounded phase percentages.
func Phases(y models.Yield) []models.NamedValue {
	return []models.NamedValue{
		{Name: PhaseLiquid, Value: Round2(y.LiquidPct)},
		{Name: PhaseGas, Value: Round2(y.GasPct)},
		{Name: PhaseResidue, Value: Round2(y.ResiduePct)},
	}
}

// Rows returns the mass balance table lines, rounded for display.
func Rows(y models.Yield) []models.NamedValue {
	return []models.NamedValue{
		{Name: "Flask 1 weight (kg)", Value: Round2(y.Recipe1)},
		{Name: "Flask 2 weight (kg)", Value: Round2(y.Recipe2)},
		{Name: "Masse cendrier (kg)", Value: Round2(y.Residue)},
		{Name: "Intrant weight (kg)", Value: Round2(y.Injected)},
		{Name: "wt% R1", Value: Round2(y.WtR1)},
		{Name: "wt% R2", Value: Round2(y.WtR2)},
		{Name: "Liquide (%)", Value: Round2(y.LiquidPct)},
		{Name: "Gas (%)", Value: Round2(y.GasPct)},
		{Name: "Residue (%)", Value: Round2(y.ResiduePct)},
	}
}
