package combine

import (
	"github.com/lucas-science/bobine/pkg/bobine/aggregate"
	"github.com/lucas-science/bobine/pkg/bobine/models"
)

// Summarize rolls the phase tables up into the fixed summary metrics.
// It reports false when either pivot is missing.
func Summarize(gas, liquid *models.Pivot, y models.Yield) (models.Summary, bool) {
	total := TotalPhase(gas, liquid, y)
	if total.IsEmpty() {
		return models.Summary{}, false
	}
	g, l := GasPhase(gas, y), LiquidPhase(liquid, y)
	olefin, btx := TotalColumns[1], TotalColumns[2]

	var s models.Summary
	s.LightOlefins = sumRows(total, aggregate.CarbonRange(2, 6), olefin)
	s.Aromatics = sumRows(total, aggregate.CarbonRange(6, 8), btx)

	s.OtherHCGas = sumRows(g, aggregate.CarbonRange(1, 8), GasColumns[0]) +
		sumRows(g, []string{"C5", "C6"}, GasColumns[1]) +
		g.Get(models.RowAutres, GasColumns[3])
	s.OtherHCLiquid = sumRows(l, aggregate.CarbonRange(6, 32), LiquidColumns[0], LiquidColumns[1]) +
		l.Get(models.RowAutres, LiquidColumns[3])
	s.Residue = y.ResiduePct

	s.Ethylene = total.Get("C2", olefin)
	s.Propylene = total.Get("C3", olefin)
	s.C4Olefins = total.Get("C4", olefin)
	s.Benzene = total.Get("C6", btx)
	s.Toluene = total.Get("C7", btx)
	s.Xylene = total.Get("C8", btx)
	s.HVC = s.Ethylene + s.Propylene + s.C4Olefins + s.Benzene + s.Toluene + s.Xylene

	return s, true
}

func sumRows(p *models.Pivot, rows []string, cols ...string) float64 {
	var sum float64
	for _, r := range rows {
		for _, c := range cols {
			sum += p.Get(r, c)
		}
	}
	return sum
}
