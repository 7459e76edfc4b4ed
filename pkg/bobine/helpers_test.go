package bobine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sensorCSV = "Time;TT301 °C;TT302 °C;TT303 °C;FT240;PI177 bar;PT230 bar\n" +
	"2024-06-25 10:00:00;450,5;460;470;1,2;2,5;1,0\n" +
	"2024-06-25 10:01:00;451;461;471;1,3;2,75;1,25\n" +
	"2024-06-25 10:02:00;452;462;472;1,4;3;1,5\n"

var componentHeader = []string{
	"No.", "Injection Name", "Inject Time", "Ret.Time (min)", "Area (pA*min)", "Height (pA)", "Rel.Area (%)", "Amount",
}

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

func integrationRows(peaks ...[]string) [][]string {
	rows := [][]string{
		{"Integration Results"},
		{},
		{"No.", "Peakname", "Retention Time", "Area", "Height", "Relative Area", "Amount Normalized", "Amount Cumul."},
		{"", "", "min", "pA*min", "pA", "%", "%", "%"},
	}
	return append(rows, peaks...)
}

func concatRows(parts ...[][]string) [][]string {
	var out [][]string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func writeWorkbook(t *testing.T, dir, name, sheet string, rows [][]string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
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
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeText(t *testing.T, dir, name, text string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

// dataRoot lays out an experiment directory with context, pyrolysis,
// online and offline data. The permanent gas source is absent.
func dataRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	base := filepath.Join(root, "Bobine_data")

	writeWorkbook(t, filepath.Join(base, "context", "context"), "context.xlsx", "Contexte", [][]string{
		{"Nom de l'expérience", "Essai 42"},
		{"Masse recette 1 (kg)", "1.21"},
		{"Masse recette 2 (kg)", "1.04"},
		{"Masse cendrier (kg)", "0.59"},
		{"Masse injectée (kg)", "8"},
	})

	writeText(t, filepath.Join(base, "pignat", "pignat"), "pignat.csv", sensorCSV)

	writeWorkbook(t, filepath.Join(base, "chromeleon", "online"), "online.xlsx", "Summary", concatRows(
		[][]string{{"Summary report"}, {}},
		componentBlock("Methane", [][]string{
			{"1", "inj 2", "23/01/2025 10:20", "1.4", "10", "5", "42", ""},
			{"2", "blanc 1", "23/01/2025 10:10", "1.3", "10", "5", "0", ""},
			{"3", "inj 1", "23/01/2025 10:00", "1.2", "10", "5", "38", ""},
		}),
		componentBlock("Ethylene", [][]string{
			{"1", "inj 2", "23/01/2025 10:20", "2.4", "10", "5", "11", ""},
			{"2", "blanc 1", "23/01/2025 10:10", "2.3", "10", "5", "0", ""},
			{"3", "inj 1", "23/01/2025 10:00", "2.5", "10", "5", "9", ""},
		}),
	))

	offline := filepath.Join(base, "chromeleon", "offline")
	writeWorkbook(t, offline, "essai_R1.xlsx", "Integration", integrationRows(
		[]string{"1", "n-C6", "3.2", "1", "1", "20", "", ""},
		[]string{"2", "C6 isomers", "3.1", "1", "1", "10", "", ""},
		[]string{"3", "Toluene-C7", "4.5", "1", "1", "30", "", ""},
		[]string{"4", "n-C10", "7.5", "1", "1", "20", "", ""},
	))
	writeWorkbook(t, offline, "essai_R2.xlsx", "Integration", integrationRows(
		[]string{"1", "n-C6", "3.2", "1", "1", "22", "", ""},
		[]string{"2", "C6 isomers", "3.1", "1", "1", "8", "", ""},
		[]string{"3", "Toluene-C7", "4.5", "1", "1", "30", "", ""},
		[]string{"4", "n-C10", "7.5", "1", "1", "20", "", ""},
	))
	return root
}
