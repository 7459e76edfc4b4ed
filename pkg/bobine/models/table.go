package models

// Row is one table row, aligned with Table.Columns.
type Row []Value

// Table is a normalized table. Every row has one value per column.
// Transformations return new tables and leave the receiver untouched.
type Table struct {
	// Columns holds the canonical or passthrough column names.
	Columns []string `json:"columns"`
	// Rows holds the data rows.
	Rows []Row `json:"rows"`
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the table carries column name.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Get returns the value at row i in column name, or Empty.
func (t *Table) Get(i int, name string) Value {
	j := t.Index(name)
	if j < 0 || i < 0 || i >= len(t.Rows) || j >= len(t.Rows[i]) {
		return Value{}
	}
	return t.Rows[i][j]
}

// Column returns a copy of the values in column name.
func (t *Table) Column(name string) []Value {
	j := t.Index(name)
	if j < 0 {
		return nil
	}
	out := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		if j < len(r) {
			out[i] = r[j]
		}
	}
	return out
}

// Append adds a row. Missing trailing values are padded with Empty.
func (t *Table) Append(values ...Value) {
	row := make(Row, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// Select returns a table restricted to the named columns, in that order.
// Unknown names yield empty columns.
func (t *Table) Select(names ...string) *Table {
	out := NewTable(names...)
	idx := make([]int, len(names))
	for k, n := range names {
		idx[k] = t.Index(n)
	}
	for _, r := range t.Rows {
		row := make(Row, len(names))
		for k, j := range idx {
			if j >= 0 && j < len(r) {
				row[k] = r[j]
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// Rename returns a copy with columns renamed according to m.
func (t *Table) Rename(m map[string]string) *Table {
	out := t.clone()
	for i, c := range out.Columns {
		if n, ok := m[c]; ok {
			out.Columns[i] = n
		}
	}
	return out
}

// Filter returns a copy holding only the rows keep accepts.
func (t *Table) Filter(keep func(i int, r Row) bool) *Table {
	out := NewTable(t.Columns...)
	for i, r := range t.Rows {
		if keep(i, r) {
			out.Rows = append(out.Rows, append(Row(nil), r...))
		}
	}
	return out
}

// WithColumn returns a copy with an extra column filled by fn.
func (t *Table) WithColumn(name string, fn func(i int, r Row) Value) *Table {
	out := NewTable(append(append([]string(nil), t.Columns...), name)...)
	for i, r := range t.Rows {
		row := make(Row, len(out.Columns))
		copy(row, r)
		row[len(row)-1] = fn(i, r)
		out.Rows = append(out.Rows, row)
	}
	return out
}

func (t *Table) clone() *Table {
	out := NewTable(t.Columns...)
	for _, r := range t.Rows {
		out.Rows = append(out.Rows, append(Row(nil), r...))
	}
	return out
}
