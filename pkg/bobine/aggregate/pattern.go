package aggregate

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/lucas-science/bobine/pkg/bobine/models"
)

// PatternOptions configures the name-pattern strategy.
type PatternOptions struct {
	// MinCarbon and MaxCarbon bound the carbon rows, inclusive.
	MinCarbon int
	MaxCarbon int
	// Complete marks inputs that describe a full 100% composition; the
	// unidentified remainder then goes to the Autres row.
	Complete bool
}

// OfflinePatternOptions returns the liquid-phase layout C6 to C32.
func OfflinePatternOptions() PatternOptions {
	return PatternOptions{MinCarbon: 6, MaxCarbon: 32, Complete: true}
}

type patternRule struct {
	re     *regexp.Regexp
	family string
	carbon int
}

var patternRules = []patternRule{
	{re: regexp.MustCompile(`(?i)^n-?c(\d+)$`), family: FamilyLinear},
	{re: regexp.MustCompile(`(?i)^c(\d+)[\s-]*linear$`), family: FamilyLinear},
	{re: regexp.MustCompile(`(?i)^c(\d+)\s*isomers?$`), family: FamilyIsomers},
	{re: regexp.MustCompile(`(?i)^iso-?c(\d+)$`), family: FamilyIsomers},
	{re: regexp.MustCompile(`(?i)^benzene(-c6)?$`), family: FamilyBTX, carbon: 6},
	{re: regexp.MustCompile(`(?i)^toluene(-c7)?$`), family: FamilyBTX, carbon: 7},
	{re: regexp.MustCompile(`(?i)^xylenes?(-c8)?$`), family: FamilyBTX, carbon: 8},
}

// MatchPattern classifies a peak name by the linear, isomer and BTX rules.
func MatchPattern(name string) (Category, bool) {
	for _, r := range patternRules {
		m := r.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n := r.carbon
		if n == 0 {
			var err error
			if n, err = strconv.Atoi(m[1]); err != nil {
				continue
			}
		}
		return Category{Carbon: "C" + strconv.Itoa(n), Family: r.family}, true
	}
	return Category{}, false
}

// ByPattern sums peaks into a Linear/Isomers/BTX pivot by name pattern.
// Peaks matching no rule or falling outside the carbon range are left
// out. With opts.Complete the Autres row holds 100 minus the identified
// total and the grand total is 100; a negative remainder is kept and
// reported in the pivot warnings.
func ByPattern(name string, peaks []models.Peak, opts PatternOptions) *models.Pivot {
	rows := append(CarbonRange(opts.MinCarbon, opts.MaxCarbon), models.RowAutres, models.RowTotal)
	p := models.NewPivot(rows, []string{FamilyLinear, FamilyIsomers, FamilyBTX, models.ColTotal})
	p.Name = name

	for _, peak := range peaks {
		c, ok := MatchPattern(peak.Name)
		if !ok {
			slog.Debug("peak matches no pattern", slog.String("pivot", name), slog.String("peak", peak.Name))
			continue
		}
		i, j := p.RowIndex(c.Carbon), p.ColIndex(c.Family)
		if i < 0 || j < 0 {
			continue
		}
		p.Cells[i][j] += peak.RelativeArea
	}
	fillTotals(p)

	if opts.Complete {
		ti, tj := p.RowIndex(models.RowTotal), p.ColIndex(models.ColTotal)
		identified := p.Cells[ti][tj]
		autres := 100 - identified
		p.Cells[p.RowIndex(models.RowAutres)][tj] = autres
		p.Cells[ti][tj] = identified + autres
		if autres < 0 {
			msg := fmt.Sprintf("identified peaks sum to %.2f%%, above 100%%; Autres is negative", identified)
			p.Warnings = append(p.Warnings, msg)
			slog.Warn("incomplete composition", slog.String("pivot", name), slog.Float64("identified", identified))
		}
	}
	return p
}
