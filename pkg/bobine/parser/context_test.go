package parser

import (
	"testing"

	"github.com/lucas-science/bobine/pkg/bobine/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContext(t *testing.T) {
	g := grid.New([][]string{
		{"Essai", ""},
		{"Masse recette 1 (kg)", "1.21"},
		{"", "MASSE RECETTE 2 (KG)", "1,04"},
		{"masse cendrier (kg)", "0.59"},
		{"Masse injectee (kg)", "8"},
	})

	m := ParseContext(g)
	require.True(t, m.Complete())
	assert.Equal(t, 1.21, *m.Recipe1)
	assert.Equal(t, 1.04, *m.Recipe2)
	assert.Equal(t, 0.59, *m.Ash)
	assert.Equal(t, 8.0, *m.Injected)
	assert.True(t, ValidateContext(m).Valid)
}

func TestParseContextMissing(t *testing.T) {
	g := grid.New([][]string{
		{"masse recette 1 (kg)", "1"},
		{"masse injectée (kg)", "to be weighed"},
	})

	m := ParseContext(g)
	assert.NotNil(t, m.Recipe1)
	assert.Nil(t, m.Injected)

	v := ValidateContext(m)
	assert.False(t, v.Valid)
	assert.Equal(t, "missing_masses", v.ErrorType)
	assert.Len(t, v.Missing, 3)
	assert.Contains(t, v.ErrorMessage, "masse injectée (kg)")
}

func TestExperienceName(t *testing.T) {
	g := grid.New([][]string{{"Nom de l'expérience", "", "Bobine 42"}})
	assert.Equal(t, "Bobine 42", ExperienceName(g, "/data/ctx.xlsx"))
	assert.Equal(t, "ctx", ExperienceName(grid.New(nil), "/data/ctx.xlsx"))
}
