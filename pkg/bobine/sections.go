package bobine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucas-science/bobine/pkg/bobine/combine"
	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/lucas-science/bobine/pkg/bobine/parser"
	"github.com/lucas-science/bobine/pkg/bobine/render"
	"golang.org/x/sync/errgroup"
)

// Section names of the GC sources.
const (
	SectionOnlineSeries     = "%mass gaz en fonction du temps"
	SectionOnlineProducts   = "products repartition gaz phase"
	SectionOfflineProducts  = "Products repartition liquid phase"
	SectionOfflineMass      = "Mass balance"
	SectionPermanentSeries  = "Suivi des concentrations au cours de l'essai"
	SectionPermanentProduct = "Products repartition Gas phase"
)

// Section names of the resume source.
const (
	SectionSummary     = "Summary repartition"
	SectionHVC         = "HVC Repartition"
	SectionPhases      = "Phase repartition"
	SectionProductsC23 = "Products repartition, C1 to C23"
	SectionProductsC8  = "Products repartition, C1 to C8"
)

// Sheet names of the report.
const (
	SheetContext   = "Context"
	SheetPyrolysis = "Pignat"
	SheetOnline    = "GC-Online"
	SheetOffline   = "GC-Offline"
	SheetPermanent = "GC On-line Permanent Gas"
	SheetResume    = "Resume"
)

// page is a report sheet with the blocks its preamble wrote.
type page struct {
	sheet  *render.Sheet
	blocks map[string]render.Block
}

type sectionDef struct {
	name string
	// check returns the selectable elements, or why the section cannot be
	// built.
	check  func(w *workspace) ([]string, error)
	render func(p *page, w *workspace, req SectionRequest, tr models.TimeRange) error
}

type sourceDef struct {
	source   models.Source
	sheet    string
	load     func(w *workspace) error
	preamble func(p *page, w *workspace) error
	sections []sectionDef
}

func (d sourceDef) section(name string) (sectionDef, bool) {
	for _, s := range d.sections {
		if s.name == name {
			return s, true
		}
	}
	return sectionDef{}, false
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrSectionUnavailable}, args...)...)
}

// catalogue is the single table behind ListSections and Generate.
func catalogue() []sourceDef {
	pyrolysis := sourceDef{
		source: models.SourcePyrolysis,
		sheet:  SheetPyrolysis,
		load: func(w *workspace) error {
			_, err := w.loadPyrolysis()
			return err
		},
	}
	for _, m := range parser.SensorMetrics {
		pyrolysis.sections = append(pyrolysis.sections, sectionDef{
			name:   m.Name,
			check:  checkMetric(m),
			render: renderMetric(m),
		})
	}

	return []sourceDef{
		pyrolysis,
		{
			source: models.SourceOnline,
			sheet:  SheetOnline,
			load: func(w *workspace) error {
				_, err := w.loadOnline()
				return err
			},
			sections: []sectionDef{
				{name: SectionOnlineSeries, check: checkOnlineSeries, render: renderOnlineSeries},
				{name: SectionOnlineProducts, check: checkOnlineProducts, render: renderOnlineProducts},
			},
		},
		{
			source: models.SourceOffline,
			sheet:  SheetOffline,
			load: func(w *workspace) error {
				_, err := w.loadOffline()
				return err
			},
			sections: []sectionDef{
				{name: SectionOfflineProducts, check: checkOfflineProducts, render: renderOfflineProducts},
				{name: SectionOfflineMass, check: checkYield, render: renderOfflineMass},
			},
		},
		{
			source: models.SourcePermanent,
			sheet:  SheetPermanent,
			load: func(w *workspace) error {
				_, err := w.loadPermanent()
				return err
			},
			sections: []sectionDef{
				{name: SectionPermanentSeries, check: checkPermanentSeries, render: renderPermanentSeries},
				{name: SectionPermanentProduct, check: checkPermanentProducts, render: renderPermanentProducts},
			},
		},
		{
			source: models.SourceResume,
			sheet:  SheetResume,
			load: func(w *workspace) error {
				_, err := w.loadResume()
				return err
			},
			preamble: resumePreamble,
			sections: []sectionDef{
				{name: SectionSummary, check: checkSummary, render: renderSummary},
				{name: SectionHVC, check: checkSummary, render: renderHVC},
				{name: SectionPhases, check: checkYield, render: renderPhases},
				{name: SectionProductsC23, check: checkCarbons(23), render: renderProducts(SectionProductsC23, 23)},
				{name: SectionProductsC8, check: checkCarbons(8), render: renderProducts(SectionProductsC8, 8)},
			},
		},
	}
}

func lookupSource(src models.Source) (sourceDef, bool) {
	for _, d := range catalogue() {
		if d.source == src {
			return d, true
		}
	}
	return sourceDef{}, false
}

// probe reports the sections of one source. A source that fails to load
// lists every section as unavailable with the load error as reason.
func probe(w *workspace, def sourceDef) models.SourceSections {
	out := models.SourceSections{Source: string(def.source)}
	loadErr := def.load(w)
	if loadErr != nil {
		w.log.Debug("source unavailable", slog.String("source", string(def.source)), slog.String("reason", loadErr.Error()))
	}
	for _, sec := range def.sections {
		s := models.Section{Name: sec.name}
		if loadErr != nil {
			s.Reason = loadErr.Error()
		} else if elems, err := sec.check(w); err != nil {
			s.Reason = err.Error()
		} else {
			s.Available = true
			s.Elements = elems
		}
		out.Sections = append(out.Sections, s)
	}
	return out
}

// ListSections reports, per source, which sections a report over root can
// hold. Sources are probed concurrently.
func ListSections(ctx context.Context, root string, opts Options) ([]models.SourceSections, error) {
	w := newWorkspace(root, opts)
	defs := catalogue()
	out := make([]models.SourceSections, len(defs))

	g, ctx := errgroup.WithContext(ctx)
	for i, def := range defs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = probe(w, def)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func checkMetric(m parser.SensorMetric) func(w *workspace) ([]string, error) {
	return func(w *workspace) ([]string, error) {
		log, err := w.loadPyrolysis()
		if err != nil {
			return nil, err
		}
		for _, s := range parser.SensorSections(log) {
			if s.Name == m.Name && !s.Available {
				return nil, unavailable("%s", s.Reason)
			}
		}
		return nil, nil
	}
}

func checkSeries(series *models.Table) ([]string, error) {
	c := parser.CheckSeries(series)
	if !c.Chartable() {
		return nil, unavailable("%d injection(s) found, at least 2 with a positive relative area are needed", c.Timepoints)
	}
	return c.Elements, nil
}

func checkOnlineSeries(w *workspace) ([]string, error) {
	on, err := w.loadOnline()
	if err != nil {
		return nil, err
	}
	return checkSeries(on.series)
}

func checkOnlineProducts(w *workspace) ([]string, error) {
	on, err := w.loadOnline()
	if err != nil {
		return nil, err
	}
	if !on.pivot.HasData() {
		return nil, unavailable("no compound of the online run has a relative area")
	}
	return nil, nil
}

func checkPermanentSeries(w *workspace) ([]string, error) {
	pg, err := w.loadPermanent()
	if err != nil {
		return nil, err
	}
	return checkSeries(pg.run.Series)
}

func checkPermanentProducts(w *workspace) ([]string, error) {
	pg, err := w.loadPermanent()
	if err != nil {
		return nil, err
	}
	if !pg.pivot.HasData() {
		return nil, unavailable("no compound of the permanent gas run has a relative area")
	}
	return nil, nil
}

func checkOfflineProducts(w *workspace) ([]string, error) {
	off, err := w.loadOffline()
	if err != nil {
		return nil, err
	}
	if len(off.r1) == 0 && len(off.r2) == 0 {
		return nil, unavailable("the R1 and R2 runs hold no peak")
	}
	return nil, nil
}

func checkYield(w *workspace) ([]string, error) {
	if _, err := w.loadYield(); err != nil {
		return nil, unavailable("mass balance: %w", err)
	}
	return nil, nil
}

func checkSummary(w *workspace) ([]string, error) {
	r, err := w.loadResume()
	if err != nil {
		return nil, err
	}
	if !r.ok {
		return nil, unavailable("the gas or liquid phase table is empty")
	}
	return nil, nil
}

func checkCarbons(to int) func(w *workspace) ([]string, error) {
	return func(w *workspace) ([]string, error) {
		r, err := w.loadResume()
		if err != nil {
			return nil, err
		}
		if !combine.HasCarbons(r.total, 1, to) {
			return nil, unavailable("the total phase table lacks carbons C1 to C%d", to)
		}
		return nil, nil
	}
}
