package parser

import (
	"errors"
	"testing"

	"github.com/lucas-science/bobine/pkg/bobine/grid"
	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBlock(t *testing.T) {
	g := grid.New(componentBlock("Methane", [][]string{
		{"1", "inj 1", "10:00", "1.2", "10", "5", "40", ""},
		{"2", "inj 2", "10:10", "1.3", "11", "6", "41", ""},
		{"3", "inj 3", "10:20", "1.4", "12", "7", "42", ""},
	}))
	anchor, ok := grid.Find(g, grid.HasPrefix("By Component"))
	require.True(t, ok)

	tbl, err := ExtractBlock(g, anchor, ComponentBlockParams(), "Methane")
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{
		ColNo, ColInjectionName, ColInjectionTime, ColRetentionTime, ColArea, ColHeight,
		"Rel. Area (%) : Methane", ColAmountPercent,
	}, tbl.Columns)
	assert.Equal(t, "inj 3", tbl.Get(2, ColInjectionName).Text())
	assert.Equal(t, 42.0, tbl.Get(2, "Rel. Area (%) : Methane").Num)
}

func TestExtractBlockStopsAtNextBlock(t *testing.T) {
	rows := componentBlock("Methane", [][]string{
		{"1", "inj 1", "10:00", "1.2", "10", "5", "40", ""},
	})
	rows = rows[:len(rows)-1]
	rows = append(rows, componentBlock("Ethylene", nil)...)
	g := grid.New(rows)

	tbl, err := ExtractBlock(g, grid.Anchor{Row: 0}, ComponentBlockParams(), "Methane")
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestExtractBlockSafetyCap(t *testing.T) {
	var data [][]string
	for i := 0; i < 80; i++ {
		data = append(data, []string{"1", "inj", "10:00", "1", "1", "1", "1", ""})
	}
	g := grid.New(componentBlock("Methane", data))

	p := ComponentBlockParams()
	p.MaxRows = 25
	tbl, err := ExtractBlock(g, grid.Anchor{Row: 0}, p, "Methane")
	require.NoError(t, err)
	assert.Equal(t, 25, tbl.Len())
}

func TestExtractBlockRejectsNarrowHeader(t *testing.T) {
	g := grid.New([][]string{
		{"By Component", "", "Methane"},
		{},
		{"No.", "Injection Name", "Rel. Area"},
		{},
		{"1", "inj", "3"},
	})

	_, err := ExtractBlock(g, grid.Anchor{Row: 0}, DefaultBlockParams(), "Methane")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrBlockNotRecognized))
}

func TestExtractBlockPicksBestHeaderOffset(t *testing.T) {
	// Variant export: the header is pushed one row down.
	g := grid.New([][]string{
		{"By Component", "", "Methane"},
		{},
		{"", "unit row"},
		componentHeader,
		{},
		{"1", "inj 1", "10:00", "1.2", "10", "5", "40", ""},
		{},
	})

	tbl, err := ExtractBlock(g, grid.Anchor{Row: 0}, DefaultBlockParams(), "Methane")
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "inj 1", tbl.Get(0, ColInjectionName).Text())
}

func TestHeaderScore(t *testing.T) {
	g := grid.New([][]string{{"a", "b", "", "d"}, {}, {"", "x"}})
	assert.Equal(t, 2, HeaderScore(g, 0, 0))
	assert.Equal(t, 0, HeaderScore(g, 1, 0))
	assert.Equal(t, 0, HeaderScore(g, 2, 0))
	assert.Equal(t, 1, HeaderScore(g, 2, 1))
	assert.Equal(t, 1, HeaderScore(g, 0, 3))
	assert.Equal(t, 0, HeaderScore(g, 9, 0))
}

func TestExtractBlockFromIndentedAnchor(t *testing.T) {
	var rows [][]string
	for _, row := range componentBlock("Methane", [][]string{
		{"1", "inj 1", "10:00", "1.2", "10", "5", "40", ""},
		{"2", "inj 2", "10:10", "1.3", "11", "6", "41", ""},
	}) {
		rows = append(rows, append([]string{"", "note"}, row...))
	}
	g := grid.New(rows)
	anchor, ok := grid.Find(g, grid.HasPrefix("By Component"))
	require.True(t, ok)
	require.Equal(t, 2, anchor.Col)

	tbl, err := ExtractBlock(g, anchor, ComponentBlockParams(), "Methane")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, ColNo, tbl.Columns[0])
	assert.Equal(t, "inj 2", tbl.Get(1, ColInjectionName).Text())
	assert.Equal(t, 41.0, tbl.Get(1, "Rel. Area (%) : Methane").Num)
}
