package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lucas-science/bobine/pkg/bobine/grid"
	"github.com/lucas-science/bobine/pkg/bobine/models"
)

var experienceLabels = []string{"nom de l'experience", "nom experience", "experience"}

// ParseContext reads the four mass readings of a context sheet. Each label
// is matched ignoring case and accents; its value is the cell to the
// right. Values that are not numbers count as missing.
func ParseContext(g *grid.Grid) models.MassReadings {
	var m models.MassReadings
	for _, f := range []struct {
		label string
		dst   **float64
	}{
		{models.LabelRecipe1, &m.Recipe1},
		{models.LabelRecipe2, &m.Recipe2},
		{models.LabelAsh, &m.Ash},
		{models.LabelInjected, &m.Injected},
	} {
		a, ok := grid.Find(g, grid.Exact(f.label))
		if !ok {
			continue
		}
		if v, ok := g.At(a.Row, a.Col+1).Float(); ok {
			*f.dst = &v
		}
	}
	return m
}

// ValidateContext checks that every mass reading is present.
func ValidateContext(m models.MassReadings) models.ContextValidation {
	missing := m.Missing()
	if len(missing) == 0 {
		return models.ContextValidation{Valid: true}
	}
	return models.ContextValidation{
		Valid:        false,
		ErrorType:    "missing_masses",
		ErrorMessage: fmt.Sprintf("missing or non-numeric values for: %s", strings.Join(missing, ", ")),
		Missing:      missing,
	}
}

// ExperienceName returns the experiment name written next to an
// experiment label, or the workbook file name without extension.
func ExperienceName(g *grid.Grid, path string) string {
	for _, label := range experienceLabels {
		if a, ok := grid.Find(g, grid.Exact(label)); ok {
			if v, ok := grid.RightOf(g, a, 2); ok {
				return v
			}
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
