package grid

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Load reads a sheet of an open workbook into a grid.
func Load(f *excelize.File, sheet string) (*Grid, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return New(rows), nil
}

// Open loads the named sheet of the workbook at path.
func Open(path, sheet string) (*Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f, sheet)
}

// OpenFirst loads the first sheet of the workbook at path and returns its
// name alongside the grid.
func OpenFirst(path string) (string, *Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	g, err := Load(f, sheets[0])
	if err != nil {
		return "", nil, err
	}
	return sheets[0], g, nil
}

// OpenAll loads every sheet of the workbook at path, in workbook order.
func OpenAll(path string) ([]string, map[string]*Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	names := f.GetSheetList()
	grids := make(map[string]*Grid, len(names))
	for _, name := range names {
		g, err := Load(f, name)
		if err != nil {
			return nil, nil, err
		}
		grids[name] = g
	}
	return names, grids, nil
}
