package parser

import (
	"fmt"
	"strings"

	"github.com/lucas-science/bobine/pkg/bobine/grid"
	"github.com/lucas-science/bobine/pkg/bobine/models"
)

// SheetIntegration is the sheet holding offline integration results.
const SheetIntegration = "Integration"

// Fixed offline export layout, used when the header cannot be classified.
const (
	offlineNameCol      = 1
	offlineRetentionCol = 2
	offlineAreaCol      = 5
	offlineDataOffset   = 4
	offlineHeaderOffset = 2
)

// ParseOffline reads the peaks of an "Integration Results" block. Rows
// without a peak name or without a numeric relative area are skipped.
func ParseOffline(g *grid.Grid, maxRows int) ([]models.Peak, error) {
	anchors := grid.FindInColumn(g, 0, grid.HasPrefix(LabelIntegration))
	if len(anchors) == 0 {
		return nil, fmt.Errorf("%w: no %q marker in the first column", models.ErrBlockNotRecognized, LabelIntegration)
	}
	a := anchors[0]

	nameCol, rtCol, areaCol := offlineColumns(g, a.Row+offlineHeaderOffset)
	start := a.Row + offlineDataOffset
	end := g.Rows()
	if maxRows > 0 && start+maxRows < end {
		end = start + maxRows
	}

	var peaks []models.Peak
	for r := start; r < end; r++ {
		name := g.Text(r, nameCol)
		if name == "" || strings.EqualFold(name, "nan") {
			continue
		}
		area, ok := g.At(r, areaCol).Float()
		if !ok {
			continue
		}
		p := models.Peak{Name: name, RelativeArea: area}
		if rt, ok := g.At(r, rtCol).Float(); ok {
			p.RetentionTime = &rt
		}
		peaks = append(peaks, p)
	}
	return peaks, nil
}

func offlineColumns(g *grid.Grid, header int) (name, rt, area int) {
	name, rt, area = offlineNameCol, offlineRetentionCol, offlineAreaCol
	found := 0
	for c := 0; c < g.Cols(); c++ {
		text := g.Text(header, c)
		if n := grid.Normalize(text); n == "peakname" || n == "peak name" {
			name = c
			found++
			continue
		}
		switch role, _ := RoleOf(text); role {
		case RoleRetentionTime:
			rt = c
		case RoleRelativeArea:
			area = c
			found++
		}
	}
	if found < 2 {
		return offlineNameCol, offlineRetentionCol, offlineAreaCol
	}
	return name, rt, area
}
