package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	t := NewTable("Injection Name", "Rel. Area (%)")
	t.Append(Text("inj 1"), Number(40))
	t.Append(Text("blanc"), Number(0))
	t.Append(Text("inj 2"))
	return t
}

func TestTableAccessors(t *testing.T) {
	tbl := sampleTable()

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, 1, tbl.Index("Rel. Area (%)"))
	assert.Equal(t, -1, tbl.Index("missing"))
	assert.Equal(t, 40.0, tbl.Get(0, "Rel. Area (%)").Num)
	assert.True(t, tbl.Get(2, "Rel. Area (%)").IsEmpty())
	assert.True(t, tbl.Get(9, "Rel. Area (%)").IsEmpty())
	assert.Len(t, tbl.Column("Injection Name"), 3)
}

func TestTableTransformsAreImmutable(t *testing.T) {
	tbl := sampleTable()

	renamed := tbl.Rename(map[string]string{"Rel. Area (%)": "Area"})
	assert.Equal(t, []string{"Injection Name", "Area"}, renamed.Columns)
	assert.Equal(t, []string{"Injection Name", "Rel. Area (%)"}, tbl.Columns)

	filtered := tbl.Filter(func(_ int, r Row) bool { return r[0].Text() != "blanc" })
	assert.Equal(t, 2, filtered.Len())
	assert.Equal(t, 3, tbl.Len())

	selected := tbl.Select("Rel. Area (%)", "Unknown")
	require.Equal(t, []string{"Rel. Area (%)", "Unknown"}, selected.Columns)
	assert.True(t, selected.Rows[0][1].IsEmpty())

	extended := tbl.WithColumn("Flag", func(i int, _ Row) Value { return Number(float64(i)) })
	assert.Equal(t, 3, len(extended.Columns))
	assert.Equal(t, 2.0, extended.Get(2, "Flag").Num)
	assert.Len(t, tbl.Rows[0], 2)
}

func TestPivotHelpers(t *testing.T) {
	p := NewPivot([]string{"C1", RowAutres, RowTotal}, []string{"Paraffin", ColTotal})
	assert.False(t, p.HasData())
	p.Cells[0][0] = 40
	p.Cells[0][1] = 40
	p.Cells[2][1] = 40

	assert.True(t, p.HasData())
	assert.Equal(t, 40.0, p.Get("C1", "Paraffin"))
	assert.Equal(t, 0.0, p.Get("C9", "Paraffin"))
	assert.Equal(t, 40.0, p.GrandTotal())
	assert.Equal(t, []string{"Paraffin"}, p.Families())

	tbl := p.Table("Carbon")
	assert.Equal(t, []string{"Carbon", "Paraffin", ColTotal}, tbl.Columns)
	assert.Equal(t, "C1", tbl.Get(0, "Carbon").Text())

	var nilPivot *Pivot
	assert.True(t, nilPivot.IsEmpty())
}

func TestMassReadingsMissing(t *testing.T) {
	v := 1.0
	m := MassReadings{Recipe1: &v, Injected: &v}
	assert.Equal(t, []string{LabelRecipe2, LabelAsh}, m.Missing())
	assert.False(t, m.Complete())
}
