package models

// Peak is one detected compound within a run.
type Peak struct {
	// Name is the peak (compound) name as exported by the instrument.
	Name string `json:"name"`
	// RetentionTime is in minutes; nil when the source has none.
	RetentionTime *float64 `json:"retention_time,omitempty"`
	// RelativeArea is a percentage of the run's total area.
	RelativeArea float64 `json:"relative_area"`
}

// NamedValue is a labelled scalar used by rollups.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
