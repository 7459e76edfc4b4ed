package models

// Section describes one report section a source can produce.
type Section struct {
	// Name is the section title used in requests and in the workbook.
	Name string `json:"name"`
	// Available is true when the source data supports the section.
	Available bool `json:"available"`
	// Elements lists selectable compounds, for time-series sections.
	Elements []string `json:"chimicalElements,omitempty"`
	// Reason explains why the section is unavailable.
	Reason string `json:"reason,omitempty"`
}

// SourceSections groups the sections of one source.
type SourceSections struct {
	Source   string    `json:"source"`
	Sections []Section `json:"sections"`
}
