package grid

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Anchor locates a recognized marker cell.
type Anchor struct {
	Row  int
	Col  int
	Text string
}

// Predicate tests the trimmed text of a cell.
type Predicate func(text string) bool

// Normalize folds s for label comparison. Accents are stripped, runs of
// whitespace (non-breaking spaces included) collapse to one space and the
// result is lower-cased.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// Exact matches cells whose normalized text equals label.
func Exact(label string) Predicate {
	want := Normalize(label)
	return func(text string) bool { return Normalize(text) == want }
}

// HasPrefix matches cells whose normalized text starts with prefix.
func HasPrefix(prefix string) Predicate {
	want := Normalize(prefix)
	return func(text string) bool { return strings.HasPrefix(Normalize(text), want) }
}

// Contains matches cells whose normalized text contains sub.
func Contains(sub string) Predicate {
	want := Normalize(sub)
	return func(text string) bool { return strings.Contains(Normalize(text), want) }
}

// Find scans row-major and returns the first matching cell.
func Find(g *Grid, match Predicate) (Anchor, bool) {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < len(g.cells[r]); c++ {
			if a, ok := test(g, r, c, match); ok {
				return a, true
			}
		}
	}
	return Anchor{}, false
}

// FindAll returns every matching cell in row-major order.
func FindAll(g *Grid, match Predicate) []Anchor {
	var out []Anchor
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < len(g.cells[r]); c++ {
			if a, ok := test(g, r, c, match); ok {
				out = append(out, a)
			}
		}
	}
	return out
}

// FindInColumn returns the matching cells of one column, top to bottom.
func FindInColumn(g *Grid, col int, match Predicate) []Anchor {
	var out []Anchor
	for r := 0; r < g.Rows(); r++ {
		if a, ok := test(g, r, col, match); ok {
			out = append(out, a)
		}
	}
	return out
}

// RightOf returns the first non-empty cell to the right of a, within
// limit columns.
func RightOf(g *Grid, a Anchor, limit int) (string, bool) {
	for c := a.Col + 1; c <= a.Col+limit; c++ {
		if v := g.At(a.Row, c); !v.IsEmpty() {
			return v.Text(), true
		}
	}
	return "", false
}

func test(g *Grid, r, c int, match Predicate) (Anchor, bool) {
	v := g.At(r, c)
	if v.IsEmpty() {
		return Anchor{}, false
	}
	text := v.Text()
	if !match(text) {
		return Anchor{}, false
	}
	return Anchor{Row: r, Col: c, Text: text}, true
}
