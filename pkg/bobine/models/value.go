// Package models holds the data types shared by the bobine packages.
package models

import (
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	// KindEmpty is a missing or blank cell.
	KindEmpty Kind = iota
	// KindText is a non-numeric string.
	KindText
	// KindNumber is a parsed number.
	KindNumber
)

// Value is a single cell value: text, number or empty.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
}

// Empty returns the empty value.
func Empty() Value { return Value{} }

// Text returns a text value, or Empty when s is blank.
func Text(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{Kind: KindText, Str: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f, Str: strconv.FormatFloat(f, 'f', -1, 64)}
}

// ParseValue classifies a raw cell string. Strings that parse as a plain
// number become numbers; everything else stays text.
func ParseValue(s string) Value {
	trimmed := TrimCell(s)
	if trimmed == "" {
		return Value{}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Value{Kind: KindNumber, Num: f, Str: trimmed}
	}
	return Value{Kind: KindText, Str: trimmed}
}

// IsEmpty reports whether the value is blank.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// Text returns the trimmed textual form of the value.
func (v Value) Text() string {
	switch v.Kind {
	case KindEmpty:
		return ""
	case KindNumber:
		if v.Str != "" {
			return v.Str
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return TrimCell(v.Str)
}

// Float coerces the value to a number. Comma decimal separators are
// accepted; anything else that does not parse reports false.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindText:
		return ParseNumber(v.Str)
	}
	return 0, false
}

// FloatOr returns the lenient number or def.
func (v Value) FloatOr(def float64) float64 {
	if f, ok := v.Float(); ok {
		return f
	}
	return def
}

// ParseNumber parses s leniently: surrounding blanks and non-breaking spaces
// are stripped, a trailing percent sign is ignored and a comma decimal
// separator is read as a dot.
func ParseNumber(s string) (float64, bool) {
	s = TrimCell(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// TrimCell trims blanks, including non-breaking spaces.
func TrimCell(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
}
