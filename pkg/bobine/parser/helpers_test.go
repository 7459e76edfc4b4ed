package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var componentHeader = []string{
	"No.", "Injection Name", "Inject Time", "Ret.Time (min)", "Area (pA*min)", "Height (pA)", "Rel.Area (%)", "Amount",
}

// componentBlock lays out one Chromeleon "By Component" section: anchor,
// spacer, header, units, two spacers, data, closing blank row.
func componentBlock(element string, data [][]string) [][]string {
	rows := [][]string{
		{"By Component", "", element},
		{},
		componentHeader,
		{"", "", "", "min", "pA*min", "pA", "%", ""},
		{},
		{},
	}
	rows = append(rows, data...)
	return append(rows, []string{})
}

func concatRows(parts ...[][]string) [][]string {
	var out [][]string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// writeWorkbook saves sheets (name -> rows) into an xlsx under dir.
func writeWorkbook(t *testing.T, dir, name string, sheets map[string][][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for sheet, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
			first = false
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for r, row := range rows {
			for c, v := range row {
				if v == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(sheet, cell, v))
			}
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}
