package models

// ChartSeries represents series metadata for a chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name,omitempty"`
	// NameRange is the range reference for the series name.
	NameRange string `json:"name_range,omitempty"`
	// Categories is the range reference for category values.
	Categories string `json:"categories,omitempty"`
	// Values is the range reference for the plotted values.
	Values string `json:"values,omitempty"`
}

// Chart describes a chart found in a rendered report.
type Chart struct {
	// Sheet is the owning sheet.
	Sheet string `json:"sheet"`
	// Kind is the chart family (Line, Bar, Pie, 3DPie...).
	Kind string `json:"kind"`
	// Stacked is set for stacked bar and area charts.
	Stacked bool `json:"stacked,omitempty"`
	// Anchor is the top-left cell the chart is drawn from.
	Anchor string `json:"anchor,omitempty"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// Series lists the plotted series.
	Series []ChartSeries `json:"series"`
}
