package parser

import (
	"errors"
	"testing"

	"github.com/lucas-science/bobine/pkg/bobine/grid"
	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlineGrid() *grid.Grid {
	return grid.New(concatRows(
		[][]string{{"Summary report"}, {}},
		componentBlock("Methane", [][]string{
			{"1", "inj 2", "23/01/2025 10:20", "1.4", "10", "5", "42", ""},
			{"2", "blanc 1", "23/01/2025 10:10", "1.3", "10", "5", "0", ""},
			{"3", "inj 1", "23/01/2025 10:00", "1.2", "10", "5", "38", ""},
		}),
		componentBlock("Ethylene", [][]string{
			{"1", "inj 2", "23/01/2025 10:20", "n.a.", "10", "5", "11", ""},
			{"2", "blanc 1", "23/01/2025 10:10", "2.3", "10", "5", "0", ""},
			{"3", "inj 1", "23/01/2025 10:00", "2.5", "10", "5", "9", ""},
		}),
		[][]string{
			{"By Component", "", "Broken"},
			{},
			{"No.", "Injection Name"},
		},
	))
}

func TestParseOnline(t *testing.T) {
	run, err := ParseOnline(onlineGrid(), ComponentBlockParams())
	require.NoError(t, err)

	assert.Equal(t, []string{"Methane", "Ethylene"}, run.ElementNames())
	assert.Equal(t, 2, run.Elements[0].Table.Len(), "blank injection filtered")
}

func TestParseOnlineWithoutBlocks(t *testing.T) {
	_, err := ParseOnline(grid.New([][]string{{"nothing here"}}), ComponentBlockParams())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrBlockNotRecognized))

	_, err = ParseOnline(grid.New([][]string{{"By Component", "", "X"}, {}, {"a"}}), ComponentBlockParams())
	assert.True(t, errors.Is(err, models.ErrBlockNotRecognized))
}

func TestInjectionSeries(t *testing.T) {
	run, err := ParseOnline(onlineGrid(), ComponentBlockParams())
	require.NoError(t, err)

	series, err := run.InjectionSeries()
	require.NoError(t, err)

	require.Equal(t, []string{
		ColInjectionName, ColInjectionTime, "Rel. Area (%) : Methane", "Rel. Area (%) : Ethylene",
	}, series.Columns)
	require.Equal(t, 3, series.Len())

	assert.Equal(t, "inj 1", series.Get(0, ColInjectionName).Text())
	assert.Equal(t, "10:00:00", series.Get(0, ColInjectionTime).Text())
	assert.Equal(t, "inj 2", series.Get(1, ColInjectionName).Text())
	assert.Equal(t, 9.0, series.Get(0, "Rel. Area (%) : Ethylene").Num)

	assert.Equal(t, RowMoyennes, series.Get(2, ColInjectionName).Text())
	assert.Equal(t, "00:20:00", series.Get(2, ColInjectionTime).Text())
	assert.InDelta(t, 40.0, series.Get(2, "Rel. Area (%) : Methane").Num, 1e-9)
	assert.InDelta(t, 10.0, series.Get(2, "Rel. Area (%) : Ethylene").Num, 1e-9)

	check := CheckSeries(series)
	assert.Equal(t, 2, check.Timepoints)
	assert.True(t, check.Chartable())
	assert.Equal(t, []string{"Methane", "Ethylene"}, check.Elements)
}

func TestOnlinePeaks(t *testing.T) {
	run, err := ParseOnline(onlineGrid(), ComponentBlockParams())
	require.NoError(t, err)
	series, err := run.InjectionSeries()
	require.NoError(t, err)

	peaks := run.Peaks(series)
	require.Len(t, peaks, 2)
	assert.Equal(t, "Methane", peaks[0].Name)
	assert.InDelta(t, 40.0, peaks[0].RelativeArea, 1e-9)
	require.NotNil(t, peaks[0].RetentionTime)
	assert.InDelta(t, 1.3, *peaks[0].RetentionTime, 1e-9)
	require.NotNil(t, peaks[1].RetentionTime)
	assert.InDelta(t, 2.5, *peaks[1].RetentionTime, 1e-9, "n.a. is ignored")
}

func TestElementNameFallsBackToNextRow(t *testing.T) {
	g := grid.New([][]string{
		{"By Component", "", "7"},
		{"", "", "", "Propane"},
	})
	assert.Equal(t, "Propane", ElementName(g, 0))
	assert.Equal(t, "", ElementName(grid.New([][]string{{"By Component"}}), 0))
}

func TestCheckSeriesSinglePoint(t *testing.T) {
	tbl := models.NewTable(ColInjectionName, ColInjectionTime, RelativeAreaColumn("Methane"))
	tbl.Append(models.Text("inj 1"), models.Text("10:00:00"), models.Number(3))
	tbl.Append(models.Text(RowMoyennes), models.Text("00:00:00"), models.Number(3))

	check := CheckSeries(tbl)
	assert.Equal(t, 1, check.Timepoints)
	assert.False(t, check.Chartable())
}
