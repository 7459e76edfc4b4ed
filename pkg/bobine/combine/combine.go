// Package combine merges the gas and liquid pivots into total-phase tables
// weighted by the mass balance.
package combine

import (
	"github.com/lucas-science/bobine/pkg/bobine/aggregate"
	"github.com/lucas-science/bobine/pkg/bobine/models"
	"gonum.org/v1/gonum/floats"
)

// Weighted column labels. Families are taken by position: the first is
// the linear family, the second olefins or isomers, the third BTX.
var (
	GasColumns    = []string{"% linear", "% iso+olefin", "% BTX", "% total"}
	LiquidColumns = []string{"% nCn", "% iCn", "% BTX", "% Total"}
	TotalColumns  = []string{"% linear", "% olefin", "% BTX", "% Total"}
)

// Pivot names of the phase tables.
const (
	NameGasPhase    = "Gas phase"
	NameLiquidPhase = "Liquid phase"
	NameTotalPhase  = "Total phase"
)

// TotalCarbons is the carbon range of the total phase table.
var TotalCarbons = aggregate.CarbonRange(1, 32)

// weigh returns p with the weighted columns appended. Each holds the
// family (or Total) cell scaled by pct/100. A phase with no mass share
// yields an empty pivot.
func weigh(name string, p *models.Pivot, pct float64, labels []string) *models.Pivot {
	if p.IsEmpty() || !(pct > 0) {
		return models.NewPivot(nil, nil)
	}
	out := models.NewPivot(p.Rows, append(append([]string(nil), p.Columns...), labels...))
	out.Name = name
	out.Warnings = append(out.Warnings, p.Warnings...)

	sources := weightSources(p)
	n := len(p.Columns)
	for i := range p.Rows {
		copy(out.Cells[i], p.Cells[i])
		raw := make([]float64, len(labels))
		for k, j := range sources {
			if j >= 0 {
				raw[k] = p.Cells[i][j]
			}
		}
		floats.ScaleTo(out.Cells[i][n:], pct/100, raw)
	}
	return out
}

// weightSources maps the four weighted columns to source columns: the
// first three families and Total. Missing sources are -1.
func weightSources(p *models.Pivot) [4]int {
	src := [4]int{-1, -1, -1, p.ColIndex(models.ColTotal)}
	families := p.Families()
	for k := 0; k < 3 && k < len(families); k++ {
		if families[k] == models.ColAutres {
			break
		}
		src[k] = p.ColIndex(families[k])
	}
	return src
}

// GasPhase weighs the online pivot by the gas percentage.
func GasPhase(gas *models.Pivot, y models.Yield) *models.Pivot {
	return weigh(NameGasPhase, gas, y.GasPct, GasColumns)
}

// LiquidPhase weighs the offline pivot by the liquid percentage.
func LiquidPhase(liquid *models.Pivot, y models.Yield) *models.Pivot {
	return weigh(NameLiquidPhase, liquid, y.LiquidPct, LiquidColumns)
}

// TotalPhase sums the weighted gas and liquid cells per carbon row. Rows
// are C1 to C32, Autres and Total. The result is empty unless both
// weighted phases are present.
func TotalPhase(gas, liquid *models.Pivot, y models.Yield) *models.Pivot {
	g, l := GasPhase(gas, y), LiquidPhase(liquid, y)
	if g.IsEmpty() || l.IsEmpty() {
		return models.NewPivot(nil, nil)
	}

	rows := append(append([]string(nil), TotalCarbons...), models.RowAutres, models.RowTotal)
	out := models.NewPivot(rows, TotalColumns)
	out.Name = NameTotalPhase
	out.Warnings = append(append(out.Warnings, gas.Warnings...), liquid.Warnings...)
	for i, r := range rows {
		floats.Add(out.Cells[i], weighted(g, r, GasColumns))
		floats.Add(out.Cells[i], weighted(l, r, LiquidColumns))
	}
	return out
}

func weighted(p *models.Pivot, row string, labels []string) []float64 {
	out := make([]float64, len(labels))
	for k, c := range labels {
		out[k] = p.Get(row, c)
	}
	return out
}

// Range returns the carbon rows C<from> to C<to> of a total phase pivot.
func Range(total *models.Pivot, from, to int) *models.Pivot {
	rows := aggregate.CarbonRange(from, to)
	out := models.NewPivot(rows, total.Columns)
	out.Name = total.Name
	for i, r := range rows {
		if j := total.RowIndex(r); j >= 0 {
			copy(out.Cells[i], total.Cells[j])
		}
	}
	return out
}

// HasCarbons reports whether every row C<from> to C<to> exists.
func HasCarbons(p *models.Pivot, from, to int) bool {
	if p.IsEmpty() {
		return false
	}
	for _, r := range aggregate.CarbonRange(from, to) {
		if p.RowIndex(r) < 0 {
			return false
		}
	}
	return true
}
