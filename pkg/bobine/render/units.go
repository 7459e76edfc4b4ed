package render

// Default worksheet metrics in pixels at 96 DPI. A column of the default
// width spans 64 pixels and a row of the default height 20 pixels.
const (
	ColumnPixels = 64
	RowPixels    = 20
)

// Chart footprint in pixels.
const (
	ChartWidth  = 720
	ChartHeight = 400
)

// ColumnsFor returns the number of default-width columns covering px.
func ColumnsFor(px int) int {
	return (px + ColumnPixels - 1) / ColumnPixels
}

// RowsFor returns the number of default-height rows covering px.
func RowsFor(px int) int {
	return (px + RowPixels - 1) / RowPixels
}
