package models

// Sentinel row and column labels of a Pivot.
const (
	RowAutres = "Autres"
	RowTotal  = "Total"
	ColAutres = "Autres"
	ColTotal  = "Total"
)

// Pivot is a carbon-number by family table of relative areas.
type Pivot struct {
	// Name labels the pivot in reports (e.g. "R1", "Moyenne").
	Name string `json:"name,omitempty"`
	// Rows are the carbon categories followed by Autres and Total.
	Rows []string `json:"rows"`
	// Columns are the families followed by Total.
	Columns []string `json:"columns"`
	// Cells is indexed [row][column].
	Cells [][]float64 `json:"cells"`
	// Warnings lists validation findings that did not stop aggregation.
	Warnings []string `json:"warnings,omitempty"`
}

// NewPivot allocates a zeroed pivot.
func NewPivot(rows, columns []string) *Pivot {
	cells := make([][]float64, len(rows))
	for i := range cells {
		cells[i] = make([]float64, len(columns))
	}
	return &Pivot{
		Rows:    append([]string(nil), rows...),
		Columns: append([]string(nil), columns...),
		Cells:   cells,
	}
}

// IsEmpty reports whether the pivot holds no rows.
func (p *Pivot) IsEmpty() bool {
	return p == nil || len(p.Rows) == 0 || len(p.Columns) == 0
}

// RowIndex returns the position of row, or -1.
func (p *Pivot) RowIndex(row string) int {
	if p == nil {
		return -1
	}
	for i, r := range p.Rows {
		if r == row {
			return i
		}
	}
	return -1
}

// ColIndex returns the position of col, or -1.
func (p *Pivot) ColIndex(col string) int {
	if p == nil {
		return -1
	}
	for i, c := range p.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Get returns the cell at (row, col), or 0 when either label is absent.
func (p *Pivot) Get(row, col string) float64 {
	i, j := p.RowIndex(row), p.ColIndex(col)
	if i < 0 || j < 0 {
		return 0
	}
	return p.Cells[i][j]
}

// Families returns the columns without the Total column.
func (p *Pivot) Families() []string {
	var out []string
	for _, c := range p.Columns {
		if c != ColTotal {
			out = append(out, c)
		}
	}
	return out
}

// GrandTotal returns the Total/Total cell.
func (p *Pivot) GrandTotal() float64 { return p.Get(RowTotal, ColTotal) }

// HasData reports whether any non-Total cell is non-zero.
func (p *Pivot) HasData() bool {
	if p.IsEmpty() {
		return false
	}
	for i, r := range p.Rows {
		if r == RowTotal {
			continue
		}
		for _, v := range p.Cells[i] {
			if v != 0 {
				return true
			}
		}
	}
	return false
}

// Table converts the pivot into a Table whose first column, named by
// label, holds the row labels.
func (p *Pivot) Table(label string) *Table {
	t := NewTable(append([]string{label}, p.Columns...)...)
	for i, r := range p.Rows {
		row := make(Row, 0, len(p.Columns)+1)
		row = append(row, Text(r))
		for _, v := range p.Cells[i] {
			row = append(row, Number(v))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
