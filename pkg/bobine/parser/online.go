package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lucas-science/bobine/pkg/bobine/grid"
	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/montanaflynn/stats"
)

// Labels of the Chromeleon exports.
const (
	LabelByComponent      = "By Component"
	LabelInjectionDetails = "Injection Details"
	LabelIntegration      = "Integration Results"

	// RowMoyennes names the summary row appended to injection series.
	RowMoyennes = "Moyennes"
)

var elementPositions = []int{2, 1, 3, 4}

// ComponentBlock is one "By Component" section of a sheet.
type ComponentBlock struct {
	Anchor  grid.Anchor
	Element string
}

// ElementTable is the normalized table of one compound.
type ElementTable struct {
	Element string
	Table   *models.Table
}

// OnlineRun holds the per-compound tables of an online GC workbook.
type OnlineRun struct {
	Elements []ElementTable
}

// ComponentBlocks locates the "By Component" anchors of the first column
// and resolves the compound name of each.
func ComponentBlocks(g *grid.Grid) []ComponentBlock {
	var out []ComponentBlock
	for _, a := range grid.FindInColumn(g, 0, grid.HasPrefix(LabelByComponent)) {
		out = append(out, ComponentBlock{Anchor: a, Element: ElementName(g, a.Row)})
	}
	return out
}

// ElementName looks for the compound name on the anchor row, then on the
// row below.
func ElementName(g *grid.Grid, row int) string {
	for _, r := range []int{row, row + 1} {
		for _, c := range elementPositions {
			s := g.Text(r, c)
			if validElementName(s) {
				return s
			}
		}
	}
	return ""
}

func validElementName(s string) bool {
	if len([]rune(s)) < 2 {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0
}

// ParseOnline extracts every recognizable compound block of the sheet.
// Unrecognized blocks are skipped; ErrBlockNotRecognized is returned only
// when no block survives.
func ParseOnline(g *grid.Grid, p BlockParams) (*OnlineRun, error) {
	blocks := ComponentBlocks(g)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no %q marker in the first column", models.ErrBlockNotRecognized, LabelByComponent)
	}

	run := &OnlineRun{}
	seen := make(map[string]bool)
	for _, b := range blocks {
		if b.Element == "" || seen[b.Element] {
			slog.Debug("skipping component block without a usable name", slog.Int("row", b.Anchor.Row+1))
			continue
		}
		tbl, err := ExtractBlock(g, b.Anchor, p, b.Element)
		if err != nil {
			if errors.Is(err, models.ErrBlockNotRecognized) {
				slog.Debug("skipping component block", slog.String("element", b.Element), slog.String("reason", err.Error()))
				continue
			}
			return nil, err
		}
		if !tbl.Has(ColInjectionName) {
			slog.Debug("skipping component block without injection names", slog.String("element", b.Element))
			continue
		}
		seen[b.Element] = true
		run.Elements = append(run.Elements, ElementTable{Element: b.Element, Table: FilterBlanks(tbl)})
	}

	if len(run.Elements) == 0 {
		return nil, fmt.Errorf("%w: none of the %d %q blocks has at least %d header columns",
			models.ErrBlockNotRecognized, len(blocks), LabelByComponent, p.MinColumns)
	}
	return run, nil
}

// FilterBlanks drops the blank injections ("blanc" in the name).
func FilterBlanks(t *models.Table) *models.Table {
	j := t.Index(ColInjectionName)
	if j < 0 {
		return t
	}
	return t.Filter(func(_ int, r models.Row) bool {
		return !strings.Contains(strings.ToLower(r[j].Text()), "blanc")
	})
}

// ElementNames lists the compounds of the run in sheet order.
func (r *OnlineRun) ElementNames() []string {
	out := make([]string, len(r.Elements))
	for i, e := range r.Elements {
		out[i] = e.Element
	}
	return out
}

type injection struct {
	name   string
	time   string
	values []models.Value
}

// InjectionSeries builds the relative-area-by-injection table: one row
// per injection sorted by time, one column per compound, closed by the
// Moyennes row holding the per-compound means and the run duration.
func (r *OnlineRun) InjectionSeries() (*models.Table, error) {
	if r == nil || len(r.Elements) == 0 {
		return nil, fmt.Errorf("%w: no compound tables", models.ErrBlockNotRecognized)
	}
	first := r.Elements[0].Table
	var missing []string
	for _, c := range []string{ColInjectionName, ColInjectionTime} {
		if !first.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: compound %q lacks columns %s",
			models.ErrBlockNotRecognized, r.Elements[0].Element, strings.Join(missing, ", "))
	}

	columns := []string{ColInjectionName, ColInjectionTime}
	var lookups []map[string]models.Value
	for _, e := range r.Elements {
		col := RelativeAreaColumn(e.Element)
		if !e.Table.Has(col) {
			continue
		}
		columns = append(columns, col)
		lookups = append(lookups, valuesByInjection(e.Table, col))
	}

	var rows []injection
	for i := range first.Rows {
		name := first.Get(i, ColInjectionName).Text()
		inj := injection{name: name, time: StandardizeTime(first.Get(i, ColInjectionTime))}
		for _, l := range lookups {
			v := l[name]
			if f, ok := v.Float(); ok {
				inj.values = append(inj.values, models.Number(f))
			} else {
				inj.values = append(inj.values, models.Empty())
			}
		}
		rows = append(rows, inj)
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return timeLess(rows[a].time, rows[a].name, rows[b].time, rows[b].name)
	})

	out := models.NewTable(columns...)
	for _, inj := range rows {
		out.Append(append([]models.Value{models.Text(inj.name), models.Text(inj.time)}, inj.values...)...)
	}
	out.Rows = append(out.Rows, summaryRow(out, rows, false))
	return out, nil
}

func valuesByInjection(t *models.Table, col string) map[string]models.Value {
	m := make(map[string]models.Value, t.Len())
	for i := range t.Rows {
		name := t.Get(i, ColInjectionName).Text()
		if _, dup := m[name]; !dup {
			m[name] = t.Get(i, col)
		}
	}
	return m
}

// summaryRow builds the Moyennes row over the rows of t. With nonZero set,
// zeros are left out of the means.
func summaryRow(t *models.Table, rows []injection, nonZero bool) models.Row {
	duration := "n.a."
	if len(rows) > 0 {
		duration = Duration(rows[0].time, rows[len(rows)-1].time)
	}
	row := make(models.Row, len(t.Columns))
	row[0] = models.Text(RowMoyennes)
	row[1] = models.Text(duration)
	for j := 2; j < len(t.Columns); j++ {
		var data stats.Float64Data
		for _, inj := range rows {
			f, ok := inj.values[j-2].Float()
			if !ok || (nonZero && f == 0) {
				continue
			}
			data = append(data, f)
		}
		mean, err := stats.Mean(data)
		if err != nil {
			mean = 0
		}
		row[j] = models.Number(mean)
	}
	return row
}

// SeriesCheck reports whether an injection series can be charted.
type SeriesCheck struct {
	Timepoints int
	HasNumeric bool
	Elements   []string
}

// Chartable reports at least two time points with some positive value.
func (c SeriesCheck) Chartable() bool { return c.Timepoints >= 2 && c.HasNumeric }

// CheckSeries inspects an injection series, ignoring its Moyennes row.
func CheckSeries(t *models.Table) SeriesCheck {
	var c SeriesCheck
	if t == nil {
		return c
	}
	for _, col := range t.Columns {
		if name, ok := CompoundOf(col); ok {
			c.Elements = append(c.Elements, name)
		}
	}
	for i := range t.Rows {
		if t.Get(i, ColInjectionName).Text() == RowMoyennes {
			continue
		}
		c.Timepoints++
		for _, e := range c.Elements {
			if f, ok := t.Get(i, RelativeAreaColumn(e)).Float(); ok && f > 0 {
				c.HasNumeric = true
			}
		}
	}
	return c
}

// Peaks summarizes the run per compound: the mean retention time over the
// compound's injections and the relative area of the Moyennes row.
func (r *OnlineRun) Peaks(series *models.Table) []models.Peak {
	means := moyennes(series)
	var out []models.Peak
	for _, e := range r.Elements {
		p := models.Peak{Name: e.Element, RelativeArea: means[RelativeAreaColumn(e.Element)]}
		if rt, ok := meanColumn(e.Table, ColRetentionTime); ok {
			p.RetentionTime = &rt
		}
		out = append(out, p)
	}
	return out
}

func moyennes(series *models.Table) map[string]float64 {
	out := make(map[string]float64)
	if series == nil {
		return out
	}
	for i := range series.Rows {
		if series.Get(i, ColInjectionName).Text() != RowMoyennes {
			continue
		}
		for _, col := range series.Columns {
			if _, ok := CompoundOf(col); ok {
				out[col] = series.Get(i, col).FloatOr(0)
			}
		}
	}
	return out
}

func meanColumn(t *models.Table, col string) (float64, bool) {
	var data stats.Float64Data
	for _, v := range t.Column(col) {
		if f, ok := v.Float(); ok {
			data = append(data, f)
		}
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return 0, false
	}
	return mean, true
}
