package parser

import (
	"testing"

	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/stretchr/testify/assert"
)

func TestStandardizeTime(t *testing.T) {
	tests := []struct {
		input models.Value
		want  string
	}{
		{models.Text("2025-01-23 14:30:45"), "14:30:45"},
		{models.Text("23/01/2025 14:30"), "14:30:00"},
		{models.Text("14:30"), "14:30:00"},
		{models.Text("9:05:07"), "09:05:07"},
		{models.Text("injected at 08:15 local"), "08:15:00"},
		{models.Text("n.a."), "n.a."},
		{models.Number(0.5), "12:00:00"},
		{models.Number(45678.25), "06:00:00"},
		{models.Empty(), ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StandardizeTime(tt.input), "StandardizeTime(%q)", tt.input.Text())
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "01:30:15", Duration("10:00:00", "11:30:15"))
	assert.Equal(t, "00:00:00", Duration("10:00:00", "10:00:00"))
	assert.Equal(t, "01:00:00", Duration("23:30:00", "00:30:00"))
	assert.Equal(t, "n.a.", Duration("", "10:00:00"))
	assert.Equal(t, "n.a.", Duration("10:00", "11:00:00"))
}

func TestTimeLess(t *testing.T) {
	assert.True(t, timeLess("09:00:00", "b", "10:00:00", "a"))
	assert.True(t, timeLess("10:00:00", "a", "10:00:00", "b"))
	assert.True(t, timeLess("10:00:00", "z", "garbage", "a"))
	assert.False(t, timeLess("garbage", "a", "10:00:00", "z"))
}
