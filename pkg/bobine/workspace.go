package bobine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lucas-science/bobine/pkg/bobine/aggregate"
	"github.com/lucas-science/bobine/pkg/bobine/combine"
	"github.com/lucas-science/bobine/pkg/bobine/grid"
	"github.com/lucas-science/bobine/pkg/bobine/massbalance"
	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/lucas-science/bobine/pkg/bobine/parser"
)

// lazy loads a value once and remembers the outcome.
type lazy[T any] struct {
	once sync.Once
	v    T
	err  error
}

func (l *lazy[T]) get(load func() (T, error)) (T, error) {
	l.once.Do(func() { l.v, l.err = load() })
	return l.v, l.err
}

type contextData struct {
	path   string
	sheet  string
	grid   *grid.Grid
	masses models.MassReadings
}

type onlineData struct {
	run    *parser.OnlineRun
	series *models.Table
	peaks  []models.Peak
	pivot  *models.Pivot
}

type offlineData struct {
	r1, r2  []models.Peak
	pivots  []*models.Pivot // R1, R2, Moyenne
	moyenne *models.Pivot
}

type permanentData struct {
	run   *parser.PermanentRun
	pivot *models.Pivot
}

type resumeData struct {
	yield   models.Yield
	gas     *models.Pivot
	liquid  *models.Pivot
	total   *models.Pivot
	summary models.Summary
	ok      bool
}

// workspace resolves and parses the sources of one data root. Each source
// is parsed at most once; workspaces are safe for concurrent use.
type workspace struct {
	d    *parser.Discovery
	opts Options
	log  *slog.Logger

	context   lazy[*contextData]
	pyrolysis lazy[*models.SensorLog]
	online    lazy[*onlineData]
	offline   lazy[*offlineData]
	permanent lazy[*permanentData]
	yield     lazy[models.Yield]
	resume    lazy[*resumeData]
}

func newWorkspace(root string, opts Options) *workspace {
	opts = opts.withDefaults()
	return &workspace{
		d:    parser.NewDiscovery(root, opts.Layout),
		opts: opts,
		log:  opts.logger(),
	}
}

func (w *workspace) loadContext() (*contextData, error) {
	return w.context.get(func() (*contextData, error) {
		path, err := w.d.First(models.SourceContext, ".xlsx")
		if err != nil {
			return nil, err
		}
		sheet, g, err := grid.OpenFirst(path)
		if err != nil {
			return nil, fmt.Errorf("open context workbook: %w", err)
		}
		return &contextData{path: path, sheet: sheet, grid: g, masses: parser.ParseContext(g)}, nil
	})
}

func (w *workspace) loadYield() (models.Yield, error) {
	return w.yield.get(func() (models.Yield, error) {
		ctx, err := w.loadContext()
		if err != nil {
			return models.Yield{}, err
		}
		return massbalance.FromReadings(ctx.masses)
	})
}

func (w *workspace) loadPyrolysis() (*models.SensorLog, error) {
	return w.pyrolysis.get(func() (*models.SensorLog, error) {
		path, err := w.d.First(models.SourcePyrolysis, ".csv")
		if err != nil {
			return nil, err
		}
		return parser.ReadSensorCSV(path)
	})
}

func (w *workspace) loadOnline() (*onlineData, error) {
	return w.online.get(func() (*onlineData, error) {
		path, err := w.d.First(models.SourceOnline, ".xlsx")
		if err != nil {
			return nil, err
		}
		_, g, err := grid.OpenFirst(path)
		if err != nil {
			return nil, fmt.Errorf("open online workbook: %w", err)
		}
		run, err := parser.ParseOnline(g, w.opts.ComponentBlocks)
		if err != nil {
			return nil, err
		}
		series, err := run.InjectionSeries()
		if err != nil {
			return nil, err
		}
		peaks := aggregate.GroupOthers(run.Peaks(series))
		w.log.Debug("online run parsed",
			slog.String("file", path),
			slog.Int("compounds", len(run.Elements)),
			slog.Int("injections", series.Len()-1))
		return &onlineData{
			run:    run,
			series: series,
			peaks:  peaks,
			pivot:  aggregate.ByCompound(peaks, aggregate.OnlineCompounds()),
		}, nil
	})
}

func (w *workspace) loadOffline() (*offlineData, error) {
	return w.offline.get(func() (*offlineData, error) {
		p1, p2, err := w.d.OfflinePair()
		if err != nil {
			return nil, err
		}
		r1, err := w.readOffline(p1)
		if err != nil {
			return nil, err
		}
		r2, err := w.readOffline(p2)
		if err != nil {
			return nil, err
		}
		opts := aggregate.OfflinePatternOptions()
		a := aggregate.ByPattern("R1", r1, opts)
		b := aggregate.ByPattern("R2", r2, opts)
		avg, err := aggregate.Average("Moyenne", a, b)
		if err != nil {
			return nil, err
		}
		for _, p := range []*models.Pivot{a, b} {
			for _, warn := range p.Warnings {
				w.log.Warn("offline run", slog.String("run", p.Name), slog.String("warning", warn))
			}
		}
		return &offlineData{r1: r1, r2: r2, pivots: []*models.Pivot{a, b, avg}, moyenne: avg}, nil
	})
}

func (w *workspace) readOffline(path string) ([]models.Peak, error) {
	g, err := grid.Open(path, parser.SheetIntegration)
	if err != nil {
		return nil, fmt.Errorf("open offline workbook: %w", err)
	}
	peaks, err := parser.ParseOffline(g, w.opts.OfflineMaxRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return peaks, nil
}

func (w *workspace) loadPermanent() (*permanentData, error) {
	return w.permanent.get(func() (*permanentData, error) {
		path, err := w.d.First(models.SourcePermanent, ".xlsx")
		if err != nil {
			return nil, err
		}
		names, grids, err := grid.OpenAll(path)
		if err != nil {
			return nil, fmt.Errorf("open permanent gas workbook: %w", err)
		}
		summary, ok := grids[parser.SheetSummary]
		if !ok && len(names) > 0 {
			summary = grids[names[0]]
		}
		overview := grids[parser.SheetOverview]
		if overview == nil {
			w.log.Warn("permanent gas workbook has no Overview sheet, injection times unavailable",
				slog.String("file", path))
		}
		run, err := parser.ParsePermanent(summary, overview, w.opts.PermanentBlocks)
		if err != nil {
			return nil, err
		}
		return &permanentData{
			run:   run,
			pivot: aggregate.ByCompound(run.Peaks(), aggregate.PermanentCompounds()),
		}, nil
	})
}

// loadResume combines the online and offline pivots with the mass
// balance. A missing input fails the whole combination.
func (w *workspace) loadResume() (*resumeData, error) {
	return w.resume.get(func() (*resumeData, error) {
		y, err := w.loadYield()
		if err != nil {
			return nil, err
		}
		on, errOn := w.loadOnline()
		off, errOff := w.loadOffline()
		if err := errors.Join(errOn, errOff); err != nil {
			return nil, err
		}
		r := &resumeData{
			yield:  y,
			gas:    combine.GasPhase(on.pivot, y),
			liquid: combine.LiquidPhase(off.moyenne, y),
			total:  combine.TotalPhase(on.pivot, off.moyenne, y),
		}
		r.summary, r.ok = combine.Summarize(on.pivot, off.moyenne, y)
		return r, nil
	})
}
