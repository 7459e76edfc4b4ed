package parser

import (
	"fmt"
	"strconv"

	"github.com/lucas-science/bobine/pkg/bobine/grid"
	"github.com/lucas-science/bobine/pkg/bobine/models"
)

// BlockParams holds the layout policy of one block kind.
type BlockParams struct {
	// HeaderOffsets are candidate header rows relative to the anchor, in
	// order of preference.
	HeaderOffsets []int
	// DataOffset is the first data row relative to the header row.
	DataOffset int
	// MinColumns is the minimum number of contiguous header cells.
	MinColumns int
	// MaxRows caps the number of data rows scanned.
	MaxRows int
	// RequiredColumns are the columns, relative to the anchor column, whose
	// joint emptiness ends the block.
	RequiredColumns []int
	// StopPrefix, when found in the anchor column, ends the block.
	StopPrefix string
}

// DefaultBlockParams returns the generic block policy.
func DefaultBlockParams() BlockParams {
	return BlockParams{
		HeaderOffsets:   []int{2, 3},
		DataOffset:      2,
		MinColumns:      6,
		MaxRows:         50,
		RequiredColumns: []int{1, 2},
		StopPrefix:      "By Component",
	}
}

// ComponentBlockParams returns the policy of Chromeleon "By Component"
// blocks: the header sits two rows under the anchor and is followed by
// unit and spacer rows before the data.
func ComponentBlockParams() BlockParams {
	p := DefaultBlockParams()
	p.DataOffset = 4
	return p
}

// HeaderScore counts the contiguous non-empty cells of row r starting
// from column c0.
func HeaderScore(g *grid.Grid, r, c0 int) int {
	n := 0
	for c := c0; c < g.Cols(); c++ {
		if g.At(r, c).IsEmpty() {
			break
		}
		n++
	}
	return n
}

// pickHeader returns the best-scoring candidate header row. Ties go to
// the earlier candidate.
func pickHeader(g *grid.Grid, anchor grid.Anchor, offsets []int) (row, score int) {
	row, score = -1, -1
	for _, off := range offsets {
		r := anchor.Row + off
		if r >= g.Rows() {
			continue
		}
		if s := HeaderScore(g, r, anchor.Col); s > score {
			row, score = r, s
		}
	}
	return row, score
}

// ExtractBlock extracts the block starting at anchor. The header and the
// data are read from the anchor column rightwards. Header cells are
// classified with context as the compound name. A block whose header has
// fewer than MinColumns cells is rejected with ErrBlockNotRecognized.
func ExtractBlock(g *grid.Grid, anchor grid.Anchor, p BlockParams, context string) (*models.Table, error) {
	header, width := pickHeader(g, anchor, p.HeaderOffsets)
	if header < 0 || width < p.MinColumns {
		return nil, fmt.Errorf("%w: block at row %d has %d header columns, need %d",
			models.ErrBlockNotRecognized, anchor.Row+1, max(width, 0), p.MinColumns)
	}

	tbl := models.NewTable(headerNames(g, header, anchor.Col, width, context)...)
	start := header + p.DataOffset
	end := findDataEnd(g, start, anchor.Col, p)
	for r := start; r < end; r++ {
		row := make(models.Row, width)
		for c := 0; c < width; c++ {
			row[c] = g.At(r, anchor.Col+c)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, nil
}

func headerNames(g *grid.Grid, header, col, width int, context string) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for c := 0; c < width; c++ {
		name := Classify(g.Text(header, col+c), context)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = name + " (" + strconv.Itoa(n) + ")"
		}
		names[c] = name
	}
	return names
}

// findDataEnd returns the exclusive end row of the data starting at start
// in a block anchored at column col.
func findDataEnd(g *grid.Grid, start, col int, p BlockParams) int {
	var stop grid.Predicate
	if p.StopPrefix != "" {
		stop = grid.HasPrefix(p.StopPrefix)
	}
	required := make([]int, len(p.RequiredColumns))
	for i, c := range p.RequiredColumns {
		required[i] = col + c
	}
	r := start
	for ; r < g.Rows(); r++ {
		if p.MaxRows > 0 && r-start >= p.MaxRows {
			break
		}
		if stop != nil && stop(g.Text(r, col)) {
			break
		}
		if len(required) > 0 && g.RowEmpty(r, required...) {
			break
		}
	}
	return r
}
