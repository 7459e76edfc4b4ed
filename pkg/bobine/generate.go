package bobine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/lucas-science/bobine/pkg/bobine/render"
)

// Result describes a generated report.
type Result struct {
	RunID   string          `json:"run_id"`
	Path    string          `json:"path"`
	Sheets  []string        `json:"sheets"`
	Skipped []models.Source `json:"skipped,omitempty"`
	// Dropped lists, per source, the sections left out because the mass
	// balance could not be computed.
	Dropped map[models.Source][]string `json:"dropped,omitempty"`
}

// degraded reports whether err only costs the source or section it came
// from. Ambiguous sources and other failures abort the report.
func degraded(err error) bool {
	if errors.Is(err, ErrAmbiguousSource) {
		return false
	}
	return errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, ErrBlockNotRecognized) ||
		errors.Is(err, ErrInvalidMassInput)
}

// Generate builds the report requested by req from the data under root
// and writes it to out.
//
// A source whose files are missing, whose only block is not recognized or
// whose sections need an invalid mass balance is skipped with a warning
// and listed in Result.Skipped. A mass-dependent section of an otherwise
// usable source is listed in Result.Dropped instead. Any other failure of
// a requested source aborts the report: a section that cannot be built
// yields ErrSectionUnavailable, a name no source offers yields
// ErrUnknownSection.
func Generate(ctx context.Context, root string, req Request, out string, opts Options) (*Result, error) {
	if req.Empty() {
		return nil, fmt.Errorf("%w: the request names no section", ErrUnknownSection)
	}
	for src, secs := range req.Sections {
		def, ok := lookupSource(src)
		if !ok {
			return nil, fmt.Errorf("%w: source %q", ErrUnknownSection, src)
		}
		for _, s := range secs {
			if _, ok := def.section(s.Name); !ok {
				return nil, NewSourceError(src, "check", fmt.Errorf("%w: %q", ErrUnknownSection, s.Name))
			}
		}
	}

	res := &Result{RunID: uuid.NewString(), Path: out}
	opts.Logger = opts.logger().With(slog.String("run_id", res.RunID))
	w := newWorkspace(root, opts)
	start := time.Now()
	w.log.Info("generating report", slog.String("root", root), slog.String("output", out))

	rep, err := render.New()
	if err != nil {
		return nil, err
	}
	defer rep.Close()

	if err := addContextSheet(rep, w); err != nil {
		return nil, err
	}

	for _, def := range catalogue() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		secs := req.Sections[def.source]
		if len(secs) == 0 {
			continue
		}
		if err := def.load(w); err != nil {
			if degraded(err) {
				w.log.Warn("source unavailable, skipping its sections",
					slog.String("source", string(def.source)),
					slog.String("reason", err.Error()))
				res.Skipped = append(res.Skipped, def.source)
				continue
			}
			return nil, NewSourceError(def.source, "load", fmt.Errorf("%w: %w", ErrSectionUnavailable, err))
		}
		dropped, err := buildSheet(rep, w, def, secs, req.TimeRange)
		if err != nil {
			return nil, err
		}
		if len(dropped) > 0 {
			if res.Dropped == nil {
				res.Dropped = make(map[models.Source][]string)
			}
			res.Dropped[def.source] = dropped
			if len(dropped) == len(secs) {
				res.Skipped = append(res.Skipped, def.source)
			}
		}
	}

	if len(rep.Sheets()) == 0 {
		return nil, fmt.Errorf("%w: none of the requested sources has data", ErrSectionUnavailable)
	}
	if err := rep.SaveAs(out); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	res.Sheets = rep.Sheets()
	w.log.Info("report written",
		slog.Int("sheets", len(res.Sheets)),
		slog.Duration("elapsed", time.Since(start)))
	return res, nil
}

// addContextSheet copies the context workbook into the report. A missing
// context only loses the sheet.
func addContextSheet(rep *render.Report, w *workspace) error {
	c, err := w.loadContext()
	if err != nil {
		w.log.Warn("context workbook unavailable", slog.String("reason", err.Error()))
		return nil
	}
	s, err := rep.AddSheet(SheetContext)
	if err != nil {
		return err
	}
	return s.CopyGrid(c.grid)
}

// buildSheet checks every requested section of a source before writing
// its sheet, so that a failed check leaves no partial sheet behind. It
// returns the names of the sections dropped for a degraded input; the
// sheet is not written when all of them are.
func buildSheet(rep *render.Report, w *workspace, def sourceDef, secs []SectionRequest, tr models.TimeRange) ([]string, error) {
	var (
		keep    []SectionRequest
		defs    []sectionDef
		dropped []string
	)
	for _, s := range secs {
		sec, _ := def.section(s.Name)
		if _, err := sec.check(w); err != nil {
			if !degraded(err) {
				return nil, NewSourceError(def.source, "check", fmt.Errorf("%q: %w", s.Name, err))
			}
			w.log.Warn("section dropped",
				slog.String("source", string(def.source)),
				slog.String("section", s.Name),
				slog.String("reason", err.Error()))
			dropped = append(dropped, s.Name)
			continue
		}
		keep = append(keep, s)
		defs = append(defs, sec)
	}
	if len(keep) == 0 {
		return dropped, nil
	}

	sheet, err := rep.AddSheet(def.sheet)
	if err != nil {
		return nil, err
	}
	p := &page{sheet: sheet, blocks: make(map[string]render.Block)}
	if def.preamble != nil {
		if err := def.preamble(p, w); err != nil {
			return nil, NewSourceError(def.source, "render", err)
		}
	}
	for i, s := range keep {
		if err := defs[i].render(p, w, s, tr); err != nil {
			return nil, NewSourceError(def.source, "render", fmt.Errorf("%q: %w", s.Name, err))
		}
	}
	w.log.Info("sheet written",
		slog.String("source", string(def.source)),
		slog.String("sheet", sheet.Name),
		slog.Int("sections", len(keep)),
		slog.Int("charts", sheet.Charts()))
	return dropped, nil
}
