// Package render writes report workbooks: tables, pivots and the charts
// derived from them.
package render

import (
	"fmt"
	"strings"

	"github.com/lucas-science/bobine/pkg/bobine/grid"
	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the worksheet name limit of the file format.
const maxSheetName = 31

// Report is a workbook under construction.
type Report struct {
	f      *excelize.File
	sheets []*Sheet
	styles styles
}

type styles struct {
	title, header, number, text int
}

// New creates an empty report.
func New() (*Report, error) {
	f := excelize.NewFile()
	r := &Report{f: f}
	var err error
	if r.styles.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	}); err != nil {
		return nil, err
	}
	border := []excelize.Border{
		{Type: "left", Color: "A6A6A6", Style: 1},
		{Type: "right", Color: "A6A6A6", Style: 1},
		{Type: "top", Color: "A6A6A6", Style: 1},
		{Type: "bottom", Color: "A6A6A6", Style: 1},
	}
	if r.styles.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	}); err != nil {
		return nil, err
	}
	if r.styles.number, err = f.NewStyle(&excelize.Style{NumFmt: 2, Border: border}); err != nil {
		return nil, err
	}
	if r.styles.text, err = f.NewStyle(&excelize.Style{Border: border}); err != nil {
		return nil, err
	}
	return r, nil
}

// File exposes the underlying workbook.
func (r *Report) File() *excelize.File { return r.f }

// Sheets returns the sheet names in creation order.
func (r *Report) Sheets() []string {
	out := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		out[i] = s.Name
	}
	return out
}

// AddSheet appends a sheet. Names are cut to the format limit and made
// unique with a numeric suffix.
func (r *Report) AddSheet(name string) (*Sheet, error) {
	name = r.uniqueName(SheetName(name))
	if len(r.sheets) == 0 {
		if err := r.f.SetSheetName(r.f.GetSheetName(0), name); err != nil {
			return nil, err
		}
	} else if _, err := r.f.NewSheet(name); err != nil {
		return nil, err
	}
	s := &Sheet{r: r, Name: name, row: 1}
	r.sheets = append(r.sheets, s)
	return s, nil
}

func (r *Report) uniqueName(name string) string {
	taken := func(n string) bool {
		for _, s := range r.sheets {
			if strings.EqualFold(s.Name, n) {
				return true
			}
		}
		return false
	}
	if !taken(name) {
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		base := []rune(name)
		if len(base)+len([]rune(suffix)) > maxSheetName {
			base = base[:maxSheetName-len([]rune(suffix))]
		}
		if n := string(base) + suffix; !taken(n) {
			return n
		}
	}
}

// SheetName strips the characters a worksheet name may not hold and cuts
// it to the format limit.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Sheet"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// SaveAs sets print areas on every sheet and writes the workbook.
func (r *Report) SaveAs(path string) error {
	if len(r.sheets) == 0 {
		return fmt.Errorf("report has no sheets")
	}
	for _, s := range r.sheets {
		if err := s.SetPrintArea(); err != nil {
			return fmt.Errorf("print area of %s: %w", s.Name, err)
		}
	}
	r.f.SetActiveSheet(0)
	return r.f.SaveAs(path)
}

// Close releases the workbook.
func (r *Report) Close() error { return r.f.Close() }

// Sheet is one worksheet with a top-to-bottom write cursor for tables and
// a separate column of charts to their right.
type Sheet struct {
	r    *Report
	Name string

	row      int
	width    int
	chartRow int
	charts   int
	maxRow   int
	maxCol   int
}

// Block locates a written table. Rows and columns are 1-based.
type Block struct {
	Sheet  string
	Header int
	First  int
	Last   int
	Col    int
	Cols   int
}

// Len returns the number of data rows.
func (b Block) Len() int { return b.Last - b.First + 1 }

// Trim drops n data rows from the end, e.g. Autres and Total.
func (b Block) Trim(n int) Block {
	b.Last -= n
	return b
}

// Ref returns the absolute reference of data column i (0-based).
func (b Block) Ref(i int) string {
	return rangeRef(b.Sheet, b.Col+i, b.First, b.Col+i, b.Last)
}

// HeaderRef returns the absolute reference of the header of column i.
func (b Block) HeaderRef(i int) string {
	return cellRef(b.Sheet, b.Col+i, b.Header)
}

// RowLabelRef returns the reference of the first cell of data row i.
func (b Block) RowLabelRef(i int) string {
	return cellRef(b.Sheet, b.Col, b.First+i)
}

// RowRef returns the reference of data row i over columns from..to.
func (b Block) RowRef(i, from, to int) string {
	return rangeRef(b.Sheet, b.Col+from, b.First+i, b.Col+to, b.First+i)
}

// HeaderRange returns the reference of the header cells from..to.
func (b Block) HeaderRange(from, to int) string {
	return rangeRef(b.Sheet, b.Col+from, b.Header, b.Col+to, b.Header)
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func cellRef(sheet string, col, row int) string {
	c, _ := excelize.CoordinatesToCellName(col, row, true)
	return quoteSheet(sheet) + "!" + c
}

func rangeRef(sheet string, c1, r1, c2, r2 int) string {
	a, _ := excelize.CoordinatesToCellName(c1, r1, true)
	b, _ := excelize.CoordinatesToCellName(c2, r2, true)
	return quoteSheet(sheet) + "!" + a + ":" + b
}

func (s *Sheet) touch(col, row int) {
	s.maxCol = max(s.maxCol, col)
	s.maxRow = max(s.maxRow, row)
}

// Skip advances the write cursor by n blank rows.
func (s *Sheet) Skip(n int) { s.row += n }

// Title writes a bold line at the cursor.
func (s *Sheet) Title(text string) error {
	cell, _ := excelize.CoordinatesToCellName(1, s.row)
	if err := s.r.f.SetCellValue(s.Name, cell, text); err != nil {
		return err
	}
	if err := s.r.f.SetCellStyle(s.Name, cell, cell, s.r.styles.title); err != nil {
		return err
	}
	s.touch(1, s.row)
	s.row++
	return nil
}

// Table writes t at the cursor, preceded by title when not empty, and
// leaves one blank row after it.
func (s *Sheet) Table(title string, t *models.Table) (Block, error) {
	if title != "" {
		if err := s.Title(title); err != nil {
			return Block{}, err
		}
	}
	b := Block{Sheet: s.Name, Header: s.row, First: s.row + 1, Last: s.row + t.Len(), Col: 1, Cols: len(t.Columns)}
	for j, name := range t.Columns {
		if err := s.setValue(b.Col+j, b.Header, models.Text(name), s.r.styles.header); err != nil {
			return Block{}, err
		}
	}
	for i, row := range t.Rows {
		for j := range t.Columns {
			v := models.Empty()
			if j < len(row) {
				v = row[j]
			}
			style := s.r.styles.text
			if v.Kind == models.KindNumber {
				style = s.r.styles.number
			}
			if err := s.setValue(b.Col+j, b.First+i, v, style); err != nil {
				return Block{}, err
			}
		}
	}
	s.width = max(s.width, b.Cols)
	s.touch(b.Col+b.Cols-1, max(b.Header, b.Last))
	s.row = max(b.Header, b.Last) + 2
	return b, nil
}

// Pivot writes p as a table whose first column, named label, holds the
// row labels.
func (s *Sheet) Pivot(title, label string, p *models.Pivot) (Block, error) {
	b, err := s.Table(title, p.Table(label))
	if err != nil {
		return Block{}, err
	}
	for _, w := range p.Warnings {
		if err := s.Note(w); err != nil {
			return Block{}, err
		}
	}
	return b, nil
}

// NamedValues writes a two-column table.
func (s *Sheet) NamedValues(title, nameHeader, valueHeader string, vals []models.NamedValue) (Block, error) {
	t := models.NewTable(nameHeader, valueHeader)
	for _, v := range vals {
		t.Append(models.Text(v.Name), models.Number(v.Value))
	}
	return s.Table(title, t)
}

// Note writes a plain line at the cursor.
func (s *Sheet) Note(text string) error {
	if err := s.setValue(1, s.row, models.Text(text), 0); err != nil {
		return err
	}
	s.row += 2
	return nil
}

func (s *Sheet) setValue(col, row int, v models.Value, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	switch v.Kind {
	case models.KindNumber:
		err = s.r.f.SetCellValue(s.Name, cell, v.Num)
	case models.KindText:
		err = s.r.f.SetCellValue(s.Name, cell, v.Str)
	}
	if err != nil {
		return err
	}
	s.touch(col, row)
	if style == 0 {
		return nil
	}
	return s.r.f.SetCellStyle(s.Name, cell, cell, style)
}

// CopyGrid writes the values of g from the top-left corner, leaving the
// cursor below it.
func (s *Sheet) CopyGrid(g *grid.Grid) error {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if err := s.setValue(c+1, r+1, g.At(r, c), 0); err != nil {
				return err
			}
		}
	}
	s.width = max(s.width, g.Cols())
	s.row = max(s.row, g.Rows()+2)
	return nil
}

// SetPrintArea covers every written cell and chart of the sheet.
func (s *Sheet) SetPrintArea() error {
	if s.maxRow == 0 || s.maxCol == 0 {
		return nil
	}
	return s.r.f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: rangeRef(s.Name, 1, 1, s.maxCol, s.maxRow),
		Scope:    s.Name,
	})
}
