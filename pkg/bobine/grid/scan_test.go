package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Injection Name", "injection name"},
		{"  Injection  Name ", "injection name"},
		{"Masse injectée (kg)", "masse injectee (kg)"},
		{"MASSE   CENDRIER (KG)", "masse cendrier (kg)"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.input), "Normalize(%q)", tt.input)
	}
}

func TestFind(t *testing.T) {
	g := New([][]string{
		{"Report", ""},
		{"", "Injection Name"},
		{"By Component", "", "Methane"},
		{"By Component", "", "Ethylene"},
	})

	a, ok := Find(g, Exact("injection name"))
	require.True(t, ok)
	assert.Equal(t, Anchor{Row: 1, Col: 1, Text: "Injection Name"}, a)

	all := FindAll(g, HasPrefix("by component"))
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].Row)
	assert.Equal(t, 3, all[1].Row)

	inCol := FindInColumn(g, 2, Contains("thane"))
	require.Len(t, inCol, 1)
	assert.Equal(t, "Methane", inCol[0].Text)

	_, ok = Find(g, Exact("Integration Results"))
	assert.False(t, ok)
}

func TestFindOnEmptyGrid(t *testing.T) {
	_, ok := Find(New(nil), Exact("anything"))
	assert.False(t, ok)
	assert.Empty(t, FindAll(New([][]string{{}}), Contains("x")))
}

func TestRightOf(t *testing.T) {
	g := New([][]string{{"masse cendrier (kg)", "", "0.59"}})
	a, ok := Find(g, Exact("Masse cendrier (kg)"))
	require.True(t, ok)

	v, ok := RightOf(g, a, 2)
	assert.True(t, ok)
	assert.Equal(t, "0.59", v)

	_, ok = RightOf(g, a, 1)
	assert.False(t, ok)
}
