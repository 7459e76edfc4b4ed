package aggregate

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/lucas-science/bobine/pkg/bobine/models"
	"gonum.org/v1/gonum/floats"
)

// ErrShapeMismatch is returned when averaging pivots of different layouts.
var ErrShapeMismatch = errors.New("pivot layouts differ")

// ByCompound sums the relative areas of peaks into the cells of m. Names
// missing from the dictionary land in the (Autres, Autres) cell; known
// compounds of a family without a column land in their carbon's Autres
// column. The Total column and row are filled in.
func ByCompound(peaks []models.Peak, m *CompoundMap) *models.Pivot {
	columns := append(append([]string(nil), m.Families...), models.ColAutres, models.ColTotal)
	p := models.NewPivot(append(append([]string(nil), m.Rows...), models.RowTotal), columns)

	autresRow := p.RowIndex(models.RowAutres)
	autresCol := p.ColIndex(models.ColAutres)
	for _, peak := range peaks {
		i, j := autresRow, autresCol
		if c, ok := m.Lookup(peak.Name); ok {
			if r := p.RowIndex(c.Carbon); r >= 0 && c.Carbon != models.RowTotal {
				i = r
			}
			if f := slices.Index(m.Families, c.Family); f >= 0 {
				j = f
			}
		} else {
			slog.Debug("compound not in dictionary", slog.String("peak", peak.Name))
		}
		if i < 0 {
			continue
		}
		p.Cells[i][j] += peak.RelativeArea
	}
	fillTotals(p)
	return p
}

// fillTotals sets each row's Total to the sum of its family cells and
// the Total row to the column sums of every other row.
func fillTotals(p *models.Pivot) {
	ti, tj := p.RowIndex(models.RowTotal), p.ColIndex(models.ColTotal)
	if tj >= 0 {
		for i := range p.Rows {
			if i == ti {
				continue
			}
			p.Cells[i][tj] = floats.Sum(familyCells(p, i))
		}
	}
	if ti >= 0 {
		total := p.Cells[ti]
		for j := range total {
			total[j] = 0
		}
		for i := range p.Rows {
			if i != ti {
				floats.Add(total, p.Cells[i])
			}
		}
	}
}

// familyCells returns the cells of row i without the Total column.
func familyCells(p *models.Pivot, i int) []float64 {
	out := make([]float64, 0, len(p.Columns))
	for j, c := range p.Columns {
		if c != models.ColTotal {
			out = append(out, p.Cells[i][j])
		}
	}
	return out
}

// Average returns the cell-wise mean of two pivots of the same layout.
func Average(name string, a, b *models.Pivot) (*models.Pivot, error) {
	if a.IsEmpty() || b.IsEmpty() {
		return nil, fmt.Errorf("%w: empty pivot", ErrShapeMismatch)
	}
	if !slices.Equal(a.Rows, b.Rows) || !slices.Equal(a.Columns, b.Columns) {
		return nil, fmt.Errorf("%w: %s and %s", ErrShapeMismatch, a.Name, b.Name)
	}
	out := models.NewPivot(a.Rows, a.Columns)
	out.Name = name
	for i := range out.Cells {
		floats.AddTo(out.Cells[i], a.Cells[i], b.Cells[i])
		floats.Scale(0.5, out.Cells[i])
	}
	out.Warnings = append(append(out.Warnings, a.Warnings...), b.Warnings...)
	return out, nil
}

// HVC reads the high-value-chemical lines of a gas pivot.
func HVC(p *models.Pivot, cats []HVCCategory) []models.NamedValue {
	out := make([]models.NamedValue, 0, len(cats))
	for _, c := range cats {
		var v float64
		for _, carbon := range c.Carbons {
			v += p.Get(carbon, c.Family)
		}
		out = append(out, models.NamedValue{Name: c.Name, Value: v})
	}
	return out
}
