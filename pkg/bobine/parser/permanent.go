package parser

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/lucas-science/bobine/pkg/bobine/grid"
	"github.com/lucas-science/bobine/pkg/bobine/models"
)

// Sheet names of the permanent-gas export.
const (
	SheetSummary  = "Summary"
	SheetOverview = "Overview"
)

// Fixed positions used when a permanent-gas header cannot be classified.
const (
	permanentNameCol = 1
	permanentAreaCol = 6
	overviewTimeCol  = 5
	overviewMaxRows  = 50
)

// PermanentBlockParams returns the policy of permanent-gas component
// blocks.
func PermanentBlockParams() BlockParams {
	return BlockParams{
		HeaderOffsets: []int{2, 3},
		DataOffset:    3,
		MinColumns:    2,
		MaxRows:       30,
		StopPrefix:    LabelByComponent,
	}
}

// PermanentRun is a parsed permanent-gas workbook.
type PermanentRun struct {
	// ExperienceNumber is the six-digit experiment id, when detected.
	ExperienceNumber string
	// Compounds lists the compounds in sheet order.
	Compounds []string
	// Series is the relative area by injection, closed by Moyennes.
	Series *models.Table
}

// ParsePermanent reads the Summary grid and, when given, the Overview grid
// holding the injection times.
func ParsePermanent(summary, overview *grid.Grid, p BlockParams) (*PermanentRun, error) {
	blocks := grid.FindInColumn(summary, 0, grid.Contains(LabelByComponent))
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no %q marker in sheet %s", models.ErrBlockNotRecognized, LabelByComponent, SheetSummary)
	}

	run := &PermanentRun{ExperienceNumber: ExperienceNumber(summary)}
	times := InjectionTimes(overview)

	var order []string
	areas := make(map[string]map[string]float64)
	for _, a := range blocks {
		compound := summary.Text(a.Row, 2)
		if compound == "" {
			continue
		}
		if _, dup := areas[compound]; !dup {
			run.Compounds = append(run.Compounds, compound)
		}
		byInjection := areas[compound]
		if byInjection == nil {
			byInjection = make(map[string]float64)
			areas[compound] = byInjection
		}
		for _, e := range permanentEntries(summary, a, p, compound) {
			byInjection[e.name] = e.area
			if !slices.Contains(order, e.name) {
				order = append(order, e.name)
			}
		}
	}
	if len(run.Compounds) == 0 {
		return nil, fmt.Errorf("%w: %q markers carry no compound name", models.ErrBlockNotRecognized, LabelByComponent)
	}

	order = filterInjections(order, run.ExperienceNumber)
	rows := make([]injection, 0, len(order))
	for _, name := range order {
		inj := injection{name: name, time: times[name]}
		for _, c := range run.Compounds {
			inj.values = append(inj.values, models.Number(areas[c][name]))
		}
		rows = append(rows, inj)
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return timeLess(rows[a].time, rows[a].name, rows[b].time, rows[b].name)
	})

	columns := []string{ColInjectionName, ColInjectionTime}
	for _, c := range run.Compounds {
		columns = append(columns, RelativeAreaColumn(c))
	}
	series := models.NewTable(columns...)
	for _, inj := range rows {
		series.Append(append([]models.Value{models.Text(inj.name), models.Text(inj.time)}, inj.values...)...)
	}
	if len(rows) > 0 {
		series.Rows = append(series.Rows, summaryRow(series, rows, true))
	}
	run.Series = series
	return run, nil
}

type permanentEntry struct {
	name string
	area float64
}

// permanentEntries reads one compound block. Columns are located through
// the classified header and fall back to the fixed export positions.
func permanentEntries(g *grid.Grid, a grid.Anchor, p BlockParams, compound string) []permanentEntry {
	nameCol, areaCol := a.Col+permanentNameCol, a.Col+permanentAreaCol
	start := a.Row + 5
	end := start + p.MaxRows
	if tbl, err := ExtractBlock(g, a, p, compound); err == nil {
		if j := tbl.Index(ColInjectionName); j >= 0 {
			nameCol = a.Col + j
		}
		if j := tbl.Index(RelativeAreaColumn(compound)); j >= 0 {
			areaCol = a.Col + j
		}
		header, _ := pickHeader(g, a, p.HeaderOffsets)
		start = header + p.DataOffset
		end = start + tbl.Len()
	} else {
		end = findDataEnd(g, start, a.Col, p)
	}

	var out []permanentEntry
	for r := start; r < end; r++ {
		name := g.Text(r, nameCol)
		if name == "" || name == "n.a." {
			continue
		}
		out = append(out, permanentEntry{name: name, area: g.At(r, areaCol).FloatOr(0)})
	}
	return out
}

// ExperienceNumber finds the six-digit experiment id: first as the prefix
// of an underscore-separated cell in the first ten rows, then as the
// leading token of a cell mentioning "injection".
func ExperienceNumber(g *grid.Grid) string {
	for r := 0; r < min(10, g.Rows()); r++ {
		for c := 0; c < g.Cols(); c++ {
			s := g.Text(r, c)
			if !strings.Contains(s, "_") {
				continue
			}
			head := strings.SplitN(s, "_", 2)[0]
			if len(head) >= 6 && isDigits(head[:6]) {
				return head[:6]
			}
		}
	}
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			s := g.Text(r, c)
			if !strings.Contains(strings.ToLower(s), "injection") {
				continue
			}
			if f := strings.Fields(s); len(f) > 0 && len(f[0]) >= 6 {
				return f[0][:6]
			}
		}
	}
	return ""
}

// InjectionTimes reads the injection name to time mapping of the
// "Injection Details" block of an Overview grid.
func InjectionTimes(g *grid.Grid) map[string]string {
	out := make(map[string]string)
	if g == nil {
		return out
	}
	a, ok := grid.Find(g, grid.Contains(LabelInjectionDetails))
	if !ok {
		return out
	}
	nameCol, timeCol := permanentNameCol, overviewTimeCol
	for c := 0; c < g.Cols(); c++ {
		switch role, _ := RoleOf(g.Text(a.Row+1, c)); role {
		case RoleInjectionName:
			nameCol = c
		case RoleInjectionTime:
			timeCol = c
		}
	}
	start := a.Row + 2
	for r := start; r < min(start+overviewMaxRows, g.Rows()); r++ {
		name := g.Text(r, nameCol)
		at := g.At(r, timeCol)
		if name == "" || at.IsEmpty() {
			continue
		}
		out[name] = StandardizeTime(at)
	}
	return out
}

// filterInjections keeps the injections of the experiment, plus named
// non-blank injections. Without an experiment number nothing is dropped.
func filterInjections(names []string, experience string) []string {
	if experience == "" {
		return names
	}
	var out []string
	for _, n := range names {
		lower := strings.ToLower(n)
		if strings.Contains(n, experience) || (!strings.Contains(lower, "blanc") && strings.Contains(lower, "injection")) {
			out = append(out, n)
		}
	}
	return out
}

// Peaks summarizes the run per compound from its Moyennes row.
func (r *PermanentRun) Peaks() []models.Peak {
	means := moyennes(r.Series)
	out := make([]models.Peak, 0, len(r.Compounds))
	for _, c := range r.Compounds {
		out = append(out, models.Peak{Name: c, RelativeArea: means[RelativeAreaColumn(c)]})
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
