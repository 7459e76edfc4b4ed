package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// chartGap is the number of blank columns between tables and charts.
const chartGap = 2

// LineChart plots columns of b against the category column catCol, one
// series per value column.
func (s *Sheet) LineChart(title, yTitle string, b Block, catCol int, valueCols []int) error {
	if b.Len() < 1 || len(valueCols) == 0 {
		return fmt.Errorf("line chart %q: nothing to plot", title)
	}
	series := make([]excelize.ChartSeries, 0, len(valueCols))
	for _, j := range valueCols {
		series = append(series, excelize.ChartSeries{
			Name:       b.HeaderRef(j),
			Categories: b.Ref(catCol),
			Values:     b.Ref(j),
			Marker:     excelize.ChartMarker{Symbol: "none"},
		})
	}
	return s.addChart(&excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis:  excelize.ChartAxis{MajorGridLines: false},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: yTitle}},
		},
	})
}

// StackedChart draws one stacked column per data row of b; each value
// column becomes a stacked segment.
func (s *Sheet) StackedChart(title string, b Block, catCol int, valueCols []int) error {
	if b.Len() < 1 || len(valueCols) == 0 {
		return fmt.Errorf("stacked chart %q: nothing to plot", title)
	}
	series := make([]excelize.ChartSeries, 0, len(valueCols))
	for _, j := range valueCols {
		series = append(series, excelize.ChartSeries{
			Name:       b.HeaderRef(j),
			Categories: b.Ref(catCol),
			Values:     b.Ref(j),
		})
	}
	return s.addChart(&excelize.Chart{
		Type:   excelize.ColStacked,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "right"},
		YAxis:  excelize.ChartAxis{MajorGridLines: true},
	})
}

// PieChart draws the values of column valCol labelled by catCol.
func (s *Sheet) PieChart(title string, b Block, catCol, valCol int, threeD bool) error {
	if b.Len() < 1 {
		return fmt.Errorf("pie chart %q: nothing to plot", title)
	}
	kind := excelize.Pie
	if threeD {
		kind = excelize.Pie3D
	}
	return s.addChart(&excelize.Chart{
		Type: kind,
		Series: []excelize.ChartSeries{{
			Name:       b.HeaderRef(valCol),
			Categories: b.Ref(catCol),
			Values:     b.Ref(valCol),
		}},
		Title:    []excelize.RichTextRun{{Text: title}},
		Legend:   excelize.ChartLegend{Position: "right"},
		PlotArea: excelize.ChartPlotArea{ShowPercent: true},
	})
}

// addChart places c in the chart column right of the widest table, below
// the previous chart.
func (s *Sheet) addChart(c *excelize.Chart) error {
	col := max(s.width, 1) + chartGap + 1
	if s.chartRow == 0 {
		s.chartRow = 1
	}
	cell, err := excelize.CoordinatesToCellName(col, s.chartRow)
	if err != nil {
		return err
	}
	c.Dimension = excelize.ChartDimension{Width: ChartWidth, Height: ChartHeight}
	if err := s.r.f.AddChart(s.Name, cell, c); err != nil {
		return fmt.Errorf("add chart to %s: %w", s.Name, err)
	}
	rows := RowsFor(ChartHeight)
	s.touch(col+ColumnsFor(ChartWidth)-1, s.chartRow+rows-1)
	s.chartRow += rows + 1
	s.charts++
	return nil
}

// Charts returns the number of charts placed on the sheet.
func (s *Sheet) Charts() int { return s.charts }
