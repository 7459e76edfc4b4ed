package bobine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lucas-science/bobine/pkg/bobine/aggregate"
	"github.com/lucas-science/bobine/pkg/bobine/combine"
	"github.com/lucas-science/bobine/pkg/bobine/massbalance"
	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/lucas-science/bobine/pkg/bobine/parser"
	"github.com/lucas-science/bobine/pkg/bobine/render"
)

// Block keys of the resume preamble.
const (
	blockSummary = "summary"
	blockHVC     = "hvc"
	blockPhases  = "phases"
)

func (p *page) block(key string) (render.Block, error) {
	b, ok := p.blocks[key]
	if !ok {
		return render.Block{}, fmt.Errorf("%w: table %q was not written", ErrSectionUnavailable, key)
	}
	return b, nil
}

// span returns the column indexes from..to.
func span(from, to int) []int {
	var out []int
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func renderMetric(m parser.SensorMetric) func(*page, *workspace, SectionRequest, models.TimeRange) error {
	return func(p *page, w *workspace, _ SectionRequest, tr models.TimeRange) error {
		log, err := w.loadPyrolysis()
		if err != nil {
			return err
		}
		t, err := parser.MetricTable(parser.SensorBetween(log, tr), m)
		if err != nil {
			return err
		}
		title := strings.ReplaceAll(m.Name, "=", "-")
		b, err := p.sheet.Table(title, t)
		if err != nil {
			return err
		}
		if b.Len() < 1 {
			w.log.Warn("no sensor rows in the requested time range",
				slog.String("metric", m.Name),
				slog.String("start", tr.Start),
				slog.String("end", tr.End))
			return nil
		}
		return p.sheet.LineChart(title, strings.Join(m.Series, ", "), b, 0, span(1, len(t.Columns)-1))
	}
}

// selectElements keeps the wanted compounds, all of them when none is
// wanted. Unknown names are dropped with a warning.
func selectElements(w *workspace, all, wanted []string) ([]string, error) {
	if len(wanted) == 0 {
		return all, nil
	}
	var out []string
	for _, name := range wanted {
		found := false
		for _, e := range all {
			if strings.EqualFold(strings.TrimSpace(name), e) {
				out = append(out, e)
				found = true
				break
			}
		}
		if !found {
			w.log.Warn("ignoring unknown compound", slog.String("element", name))
		}
	}
	if len(out) == 0 {
		return nil, unavailable("none of the compounds %s is in the run", strings.Join(wanted, ", "))
	}
	return out, nil
}

func renderSeries(p *page, w *workspace, title, chartTitle string, series *models.Table, req SectionRequest) error {
	elems, err := selectElements(w, parser.CheckSeries(series).Elements, req.Elements)
	if err != nil {
		return err
	}
	cols := []string{parser.ColInjectionName, parser.ColInjectionTime}
	for _, e := range elems {
		cols = append(cols, parser.RelativeAreaColumn(e))
	}
	b, err := p.sheet.Table(title, series.Select(cols...))
	if err != nil {
		return err
	}
	return p.sheet.LineChart(chartTitle, "Rel. Area (%)", b.Trim(1), 1, span(2, len(cols)-1))
}

func renderOnlineSeries(p *page, w *workspace, req SectionRequest, _ models.TimeRange) error {
	on, err := w.loadOnline()
	if err != nil {
		return err
	}
	return renderSeries(p, w, "%Rel Area par injection (Online)", SectionOnlineSeries, on.series, req)
}

func renderPermanentSeries(p *page, w *workspace, req SectionRequest, _ models.TimeRange) error {
	pg, err := w.loadPermanent()
	if err != nil {
		return err
	}
	title := "%Rel Area par injection (Permanent Gas)"
	if pg.run.ExperienceNumber != "" {
		title += " - " + pg.run.ExperienceNumber
	}
	return renderSeries(p, w, title, SectionPermanentSeries, pg.run.Series, req)
}

// peakTable lists peaks closed by a total line.
func peakTable(peaks []models.Peak) *models.Table {
	t := models.NewTable("Peakname", "RetentionTime", "Relative Area")
	for _, pk := range peaks {
		rt := models.Empty()
		if pk.RetentionTime != nil {
			rt = models.Number(*pk.RetentionTime)
		}
		t.Append(models.Text(pk.Name), rt, models.Number(pk.RelativeArea))
	}
	t.Append(models.Text("Total:"), models.Empty(), models.Number(aggregate.TotalArea(peaks)))
	return t
}

// renderGasProducts writes the peak summary, the carbon by family pivot
// and its stacked chart.
func renderGasProducts(p *page, title string, peaks []models.Peak, pivot *models.Pivot, hvc []models.NamedValue) error {
	if _, err := p.sheet.Table("Gas phase Integration Results test average", peakTable(peaks)); err != nil {
		return err
	}
	b, err := p.sheet.Pivot("Regroupement par carbone / famille", "Carbon", pivot)
	if err != nil {
		return err
	}
	if len(hvc) > 0 {
		if _, err := p.sheet.NamedValues("composition moyenne principaux HVC (%)", "Molécule", "Moyenne (%)", hvc); err != nil {
			return err
		}
	}
	return p.sheet.StackedChart(title, b.Trim(1), 0, span(1, len(pivot.Families())))
}

func renderOnlineProducts(p *page, w *workspace, _ SectionRequest, _ models.TimeRange) error {
	on, err := w.loadOnline()
	if err != nil {
		return err
	}
	return renderGasProducts(p, SectionOnlineProducts, on.peaks, on.pivot, aggregate.HVC(on.pivot, aggregate.OnlineHVC))
}

func renderPermanentProducts(p *page, w *workspace, _ SectionRequest, _ models.TimeRange) error {
	pg, err := w.loadPermanent()
	if err != nil {
		return err
	}
	return renderGasProducts(p, SectionPermanentProduct, pg.run.Peaks(), pg.pivot, nil)
}

func renderOfflineProducts(p *page, w *workspace, _ SectionRequest, _ models.TimeRange) error {
	off, err := w.loadOffline()
	if err != nil {
		return err
	}
	var avg render.Block
	for _, pv := range off.pivots {
		b, err := p.sheet.Pivot(pv.Name, "Carbon", pv)
		if err != nil {
			return err
		}
		avg = b
	}
	// Autres and Total rows are not plotted.
	return p.sheet.StackedChart(SectionOfflineProducts, avg.Trim(2), 0, span(1, len(off.moyenne.Families())))
}

func renderOfflineMass(p *page, w *workspace, _ SectionRequest, _ models.TimeRange) error {
	y, err := w.loadYield()
	if err != nil {
		return err
	}
	_, err = p.sheet.NamedValues(SectionOfflineMass, "Measure", "Value", massbalance.Rows(y))
	return err
}

// resumePreamble writes the phase tables and rollups the resume charts
// refer to.
func resumePreamble(p *page, w *workspace) error {
	r, err := w.loadResume()
	if err != nil {
		return err
	}
	for _, pv := range []*models.Pivot{r.gas, r.liquid, r.total} {
		if pv.IsEmpty() {
			continue
		}
		if _, err := p.sheet.Pivot(pv.Name, "Carbon", pv); err != nil {
			return err
		}
	}
	if r.ok {
		if p.blocks[blockSummary], err = p.sheet.NamedValues("Summary", "Product", "%", r.summary.Breakdown()); err != nil {
			return err
		}
		if p.blocks[blockHVC], err = p.sheet.NamedValues("HVC", "Molecule", "%", r.summary.HVCBreakdown()); err != nil {
			return err
		}
	}
	if p.blocks[blockPhases], err = p.sheet.NamedValues("Phase repartition", "Phase", "%", massbalance.Phases(r.yield)); err != nil {
		return err
	}
	_, err = p.sheet.NamedValues("Mass balance", "Measure", "Value", massbalance.Rows(r.yield))
	return err
}

func renderSummary(p *page, _ *workspace, _ SectionRequest, _ models.TimeRange) error {
	b, err := p.block(blockSummary)
	if err != nil {
		return err
	}
	return p.sheet.PieChart(SectionSummary, b, 0, 1, false)
}

func renderHVC(p *page, _ *workspace, _ SectionRequest, _ models.TimeRange) error {
	b, err := p.block(blockHVC)
	if err != nil {
		return err
	}
	// The HVC subtotal is the last line.
	return p.sheet.PieChart(SectionHVC, b.Trim(1), 0, 1, false)
}

func renderPhases(p *page, _ *workspace, _ SectionRequest, _ models.TimeRange) error {
	b, err := p.block(blockPhases)
	if err != nil {
		return err
	}
	return p.sheet.PieChart(SectionPhases, b, 0, 1, true)
}

func renderProducts(name string, to int) func(*page, *workspace, SectionRequest, models.TimeRange) error {
	return func(p *page, w *workspace, _ SectionRequest, _ models.TimeRange) error {
		r, err := w.loadResume()
		if err != nil {
			return err
		}
		rng := combine.Range(r.total, 1, to)
		b, err := p.sheet.Pivot(name, "Carbon", rng)
		if err != nil {
			return err
		}
		// The last column is the row total.
		return p.sheet.StackedChart(name, b, 0, span(1, len(rng.Columns)-1))
	}
}
