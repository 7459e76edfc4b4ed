package parser

import (
	"testing"

	"github.com/lucas-science/bobine/pkg/bobine/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func permanentBlock(compound string, data [][]string) [][]string {
	rows := [][]string{
		{"By Component", "", compound},
		{},
		{"No.", "Injection Name", "Ret.Time", "Area", "Height", "Amount", "Rel.Area"},
		{},
		{},
	}
	return append(rows, data...)
}

func permanentGrids() (*grid.Grid, *grid.Grid) {
	summary := grid.New(concatRows(
		[][]string{{"Sequence", "240625_permanent_gas"}, {}},
		permanentBlock("Hydrogen", [][]string{
			{"1", "240625_injection 2", "", "", "", "", "14"},
			{"2", "blanc 3", "", "", "", "", "3"},
			{"3", "240625_injection 1", "", "", "", "", "10"},
		}),
		permanentBlock("Methane", [][]string{
			{"1", "240625_injection 2", "", "", "", "", "n.a."},
			{"2", "blanc 3", "", "", "", "", "1"},
			{"3", "240625_injection 1", "", "", "", "", "6"},
			{"4", "n.a.", "", "", "", "", "6"},
		}),
	))
	overview := grid.New([][]string{
		{"Injection Details"},
		{"No.", "Injection Name", "", "", "", "Inject Time"},
		{"1", "240625_injection 1", "", "", "", "25/06/2024 09:00"},
		{"2", "blanc 3", "", "", "", "25/06/2024 09:30"},
		{"3", "240625_injection 2", "", "", "", "25/06/2024 10:00"},
	})
	return summary, overview
}

func TestParsePermanent(t *testing.T) {
	summary, overview := permanentGrids()

	run, err := ParsePermanent(summary, overview, PermanentBlockParams())
	require.NoError(t, err)

	assert.Equal(t, "240625", run.ExperienceNumber)
	assert.Equal(t, []string{"Hydrogen", "Methane"}, run.Compounds)

	s := run.Series
	require.Equal(t, 3, s.Len())
	assert.Equal(t, "240625_injection 1", s.Get(0, ColInjectionName).Text())
	assert.Equal(t, "09:00:00", s.Get(0, ColInjectionTime).Text())
	assert.Equal(t, "240625_injection 2", s.Get(1, ColInjectionName).Text())
	assert.Equal(t, 0.0, s.Get(1, "Rel. Area (%) : Methane").Num)

	assert.Equal(t, RowMoyennes, s.Get(2, ColInjectionName).Text())
	assert.InDelta(t, 12.0, s.Get(2, "Rel. Area (%) : Hydrogen").Num, 1e-9)
	assert.InDelta(t, 6.0, s.Get(2, "Rel. Area (%) : Methane").Num, 1e-9, "zeros are left out of the mean")

	peaks := run.Peaks()
	require.Len(t, peaks, 2)
	assert.InDelta(t, 12.0, peaks[0].RelativeArea, 1e-9)
	assert.Nil(t, peaks[0].RetentionTime)
}

func TestParsePermanentWithoutOverview(t *testing.T) {
	summary, _ := permanentGrids()

	run, err := ParsePermanent(summary, nil, PermanentBlockParams())
	require.NoError(t, err)
	assert.Equal(t, "", run.Series.Get(0, ColInjectionTime).Text())
}

func TestParsePermanentRejectsForeignSheet(t *testing.T) {
	_, err := ParsePermanent(grid.New([][]string{{"Overview"}}), nil, PermanentBlockParams())
	assert.Error(t, err)
}

func TestExperienceNumber(t *testing.T) {
	tests := []struct {
		rows [][]string
		want string
	}{
		{[][]string{{"", "240625_run"}}, "240625"},
		{[][]string{{"abc_def"}, {"241001 injection 4"}}, "241001"},
		{[][]string{{"nothing"}}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExperienceNumber(grid.New(tt.rows)))
	}
}

func TestFilterInjections(t *testing.T) {
	names := []string{"240625_a", "Injection 3", "blanc injection", "other"}
	assert.Equal(t, []string{"240625_a", "Injection 3"}, filterInjections(names, "240625"))
	assert.Equal(t, names, filterInjections(names, ""))
}
