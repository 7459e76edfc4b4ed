// Package grid provides a read-only view over spreadsheet cells and the
// label scanner used to locate section anchors in it.
package grid

import (
	"fmt"

	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/xuri/excelize/v2"
)

// Grid is an immutable 2-D view of cell values addressed by zero-based
// (row, column).
type Grid struct {
	cells [][]models.Value
	cols  int
}

// Rect is an inclusive zero-based cell rectangle.
type Rect struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// String renders the rectangle in A1 notation.
func (r Rect) String() string {
	start, _ := excelize.CoordinatesToCellName(r.MinCol+1, r.MinRow+1)
	end, _ := excelize.CoordinatesToCellName(r.MaxCol+1, r.MaxRow+1)
	return fmt.Sprintf("%s:%s", start, end)
}

// New builds a grid from raw cell strings.
func New(rows [][]string) *Grid {
	g := &Grid{cells: make([][]models.Value, len(rows))}
	for i, row := range rows {
		vals := make([]models.Value, len(row))
		for j, s := range row {
			vals[j] = models.ParseValue(s)
		}
		g.cells[i] = vals
		if len(row) > g.cols {
			g.cols = len(row)
		}
	}
	return g
}

// FromValues builds a grid from typed values. The slices are copied.
func FromValues(rows [][]models.Value) *Grid {
	g := &Grid{cells: make([][]models.Value, len(rows))}
	for i, row := range rows {
		g.cells[i] = append([]models.Value(nil), row...)
		if len(row) > g.cols {
			g.cols = len(row)
		}
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	if g == nil {
		return 0
	}
	return len(g.cells)
}

// Cols returns the width of the widest row.
func (g *Grid) Cols() int {
	if g == nil {
		return 0
	}
	return g.cols
}

// At returns the value at (r, c). Out-of-range coordinates are empty.
func (g *Grid) At(r, c int) models.Value {
	if g == nil || r < 0 || r >= len(g.cells) || c < 0 || c >= len(g.cells[r]) {
		return models.Value{}
	}
	return g.cells[r][c]
}

// Text is a shorthand for At(r, c).Text().
func (g *Grid) Text(r, c int) string { return g.At(r, c).Text() }

// Row returns a copy of row r, padded to Cols().
func (g *Grid) Row(r int) []models.Value {
	out := make([]models.Value, g.Cols())
	if r >= 0 && r < g.Rows() {
		copy(out, g.cells[r])
	}
	return out
}

// Bounds returns the bounding rectangle of non-empty cells.
func (g *Grid) Bounds() (Rect, bool) {
	rect := Rect{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}
	for r, row := range g.cells {
		for c, v := range row {
			if v.IsEmpty() {
				continue
			}
			if rect.MinRow < 0 || r < rect.MinRow {
				rect.MinRow = r
			}
			if r > rect.MaxRow {
				rect.MaxRow = r
			}
			if rect.MinCol < 0 || c < rect.MinCol {
				rect.MinCol = c
			}
			if c > rect.MaxCol {
				rect.MaxCol = c
			}
		}
	}
	return rect, rect.MinRow >= 0
}

// CountNonEmpty counts non-empty cells within rect.
func (g *Grid) CountNonEmpty(rect Rect) int {
	count := 0
	for r := rect.MinRow; r <= rect.MaxRow && r < g.Rows(); r++ {
		for c := rect.MinCol; c <= rect.MaxCol; c++ {
			if !g.At(r, c).IsEmpty() {
				count++
			}
		}
	}
	return count
}

// RowEmpty reports whether every listed column of row r is empty.
func (g *Grid) RowEmpty(r int, cols ...int) bool {
	for _, c := range cols {
		if !g.At(r, c).IsEmpty() {
			return false
		}
	}
	return true
}
