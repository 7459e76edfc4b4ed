package models

// Context workbook labels for the four mass readings.
const (
	LabelRecipe1  = "masse recette 1 (kg)"
	LabelRecipe2  = "masse recette 2 (kg)"
	LabelAsh      = "masse cendrier (kg)"
	LabelInjected = "masse injectée (kg)"
)

// MassReadings are the manually entered masses, in kilograms. A nil field
// means the label was not found in the context workbook.
type MassReadings struct {
	Recipe1  *float64 `json:"masse recette 1 (kg)"`
	Recipe2  *float64 `json:"masse recette 2 (kg)"`
	Ash      *float64 `json:"masse cendrier (kg)"`
	Injected *float64 `json:"masse injectée (kg)"`
}

// Missing returns the labels of the readings that are absent.
func (m MassReadings) Missing() []string {
	var out []string
	for _, f := range []struct {
		label string
		v     *float64
	}{
		{LabelRecipe1, m.Recipe1},
		{LabelRecipe2, m.Recipe2},
		{LabelAsh, m.Ash},
		{LabelInjected, m.Injected},
	} {
		if f.v == nil {
			out = append(out, f.label)
		}
	}
	return out
}

// Complete reports whether all four readings are present.
func (m MassReadings) Complete() bool { return len(m.Missing()) == 0 }

// Yield is the mass balance derived from MassReadings. Percentages are
// kept unrounded; round at presentation.
type Yield struct {
	Injected float64 `json:"injected_kg"`
	Recipe1  float64 `json:"recipe1_kg"`
	Recipe2  float64 `json:"recipe2_kg"`
	Liquid   float64 `json:"liquid_kg"`
	Gas      float64 `json:"gas_kg"`
	Residue  float64 `json:"residue_kg"`

	LiquidPct  float64 `json:"liquid_pct"`
	GasPct     float64 `json:"gas_pct"`
	ResiduePct float64 `json:"residue_pct"`

	// WtR1 and WtR2 are the recipe fractions of the liquid mass.
	WtR1 float64 `json:"wt_r1"`
	WtR2 float64 `json:"wt_r2"`
}

// ContextValidation is the outcome of checking the context workbook.
type ContextValidation struct {
	Valid        bool     `json:"valid"`
	ErrorType    string   `json:"error_type,omitempty"`
	ErrorMessage string   `json:"error_message,omitempty"`
	Missing      []string `json:"missing,omitempty"`
}
