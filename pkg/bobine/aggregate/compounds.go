// Package aggregate folds peak tables into carbon-number by family pivots.
package aggregate

import (
	"strconv"
	"strings"

	"github.com/lucas-science/bobine/pkg/bobine/models"
)

// Family names.
const (
	FamilyParaffin = "Paraffin"
	FamilyLinear   = "Linear"
	FamilyOlefin   = "Olefin"
	FamilyIsomers  = "Isomers"
	FamilyBTX      = "BTX"
	FamilyBTXGas   = "BTX gas"
	FamilyAutres   = models.ColAutres
)

// Category is the (carbon, family) cell a compound is summed into.
type Category struct {
	Carbon string
	Family string
}

// CompoundMap is a static compound dictionary with its pivot layout.
type CompoundMap struct {
	// Rows are the carbon rows, Autres included.
	Rows []string
	// Families are the family columns, without Autres and Total.
	Families []string

	entries map[string]Category
}

// NewCompoundMap builds a dictionary; names are matched ignoring case.
func NewCompoundMap(rows, families []string, entries map[string]Category) *CompoundMap {
	m := &CompoundMap{
		Rows:     append([]string(nil), rows...),
		Families: append([]string(nil), families...),
		entries:  make(map[string]Category, len(entries)),
	}
	for name, c := range entries {
		m.entries[strings.ToLower(strings.TrimSpace(name))] = c
	}
	return m
}

// Lookup returns the category of a compound.
func (m *CompoundMap) Lookup(name string) (Category, bool) {
	c, ok := m.entries[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Len returns the number of known compounds.
func (m *CompoundMap) Len() int { return len(m.entries) }

// CarbonRange returns C<from> through C<to>.
func CarbonRange(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, "C"+strconv.Itoa(i))
	}
	return out
}

// OnlineCompounds is the dictionary of the online gas chromatograph.
func OnlineCompounds() *CompoundMap {
	return NewCompoundMap(
		append(CarbonRange(1, 8), models.RowAutres),
		[]string{FamilyParaffin, FamilyOlefin, FamilyBTX},
		map[string]Category{
			"Methane":           {"C1", FamilyParaffin},
			"Ethane":            {"C2", FamilyParaffin},
			"Ethylene":          {"C2", FamilyOlefin},
			"Acetylene":         {"C2", FamilyAutres},
			"Propane":           {"C3", FamilyParaffin},
			"Cyclopropane":      {"C3", FamilyAutres},
			"Propylene":         {"C3", FamilyOlefin},
			"Propadiene":        {"C3", FamilyOlefin},
			"iso-Butane":        {"C4", FamilyParaffin},
			"n-Butane":          {"C4", FamilyParaffin},
			"trans-2-Butene":    {"C4", FamilyOlefin},
			"1-Butene":          {"C4", FamilyOlefin},
			"iso-Butylene":      {"C4", FamilyOlefin},
			"cis-2-Butene":      {"C4", FamilyOlefin},
			"1,3-Butadiene":     {"C4", FamilyOlefin},
			"iso-Pentane":       {"C5", FamilyOlefin},
			"n-Pentane":         {"C5", FamilyParaffin},
			"trans-2-Pentene":   {"C5", FamilyOlefin},
			"2-methyl-2-Butene": {"C5", FamilyOlefin},
			"1-Pentene":         {"C5", FamilyOlefin},
			"cis-2-Pentene":     {"C5", FamilyOlefin},
			"Other C5":          {"C5", FamilyOlefin},
			"n-Hexane":          {"C6", FamilyParaffin},
			"Other C6":          {"C6", FamilyOlefin},
			"Benzene":           {"C6", FamilyBTX},
			"Other C7":          {"C7", FamilyOlefin},
			"Toluene":           {"C7", FamilyBTX},
		},
	)
}

// PermanentCompounds is the dictionary of the permanent-gas chromatograph.
func PermanentCompounds() *CompoundMap {
	return NewCompoundMap(
		append(CarbonRange(1, 8), models.RowAutres),
		[]string{FamilyLinear, FamilyOlefin, FamilyBTXGas},
		map[string]Category{
			"Helium":         {"C1", FamilyLinear},
			"Hydrogen":       {"C1", FamilyLinear},
			"Carbon dioxide": {models.RowAutres, FamilyAutres},
			"Methane":        {"C1", FamilyLinear},
			"Ethylene":       {"C2", FamilyOlefin},
			"Ethane":         {"C2", FamilyLinear},
			"Propane":        {"C3", FamilyLinear},
			"Propylene":      {"C3", FamilyOlefin},
			"Butane":         {"C4", FamilyLinear},
			"n-Butane":       {"C4", FamilyLinear},
			"iso-Butane":     {"C4", FamilyLinear},
			"Butene":         {"C4", FamilyOlefin},
			"1-Butene":       {"C4", FamilyOlefin},
			"Pentane":        {"C5", FamilyLinear},
			"n-Pentane":      {"C5", FamilyLinear},
			"iso-Pentane":    {"C5", FamilyLinear},
			"Hexane":         {"C6", FamilyLinear},
			"n-Hexane":       {"C6", FamilyLinear},
			"Benzene":        {"C6", FamilyBTXGas},
			"Toluene":        {"C7", FamilyBTXGas},
			"Xylene":         {"C8", FamilyBTXGas},
		},
	)
}

// HVCCategory is one high-value-chemical line of a gas pivot.
type HVCCategory struct {
	Name    string
	Carbons []string
	Family  string
}

// OnlineHVC lists the high-value chemicals of the online pivot.
var OnlineHVC = []HVCCategory{
	{Name: "C2 Olefin", Carbons: []string{"C2"}, Family: FamilyOlefin},
	{Name: "C3 Olefin", Carbons: []string{"C3"}, Family: FamilyOlefin},
	{Name: "C4 Olefin", Carbons: []string{"C4"}, Family: FamilyOlefin},
	{Name: "BTX", Carbons: []string{"C6", "C7"}, Family: FamilyBTX},
}
