// Package parser turns raw instrument grids into normalized tables.
package parser

import (
	"regexp"
	"strings"
)

// Role is a canonical column role.
type Role string

// Canonical column roles.
const (
	RoleInjectionName Role = "InjectionName"
	RoleInjectionTime Role = "InjectionTime"
	RoleNo            Role = "No"
	RoleRetentionTime Role = "RetentionTime"
	RoleArea          Role = "Area"
	RoleHeight        Role = "Height"
	RoleRelativeArea  Role = "RelativeArea"
	RoleAmountPercent Role = "AmountPercent"
	RolePeakType      Role = "PeakType"
)

// Canonical column names written into normalized tables.
const (
	ColInjectionName = "Injection Name"
	ColInjectionTime = "Injection Time"
	ColNo            = "No"
	ColRetentionTime = "Ret. Time (min)"
	ColArea          = "Area (pA*min)"
	ColHeight        = "Height (pA)"
	ColRelativeArea  = "Rel. Area (%)"
	ColAmountPercent = "Amount (%)"
	ColPeakType      = "Peak Type"
)

var roleNames = map[Role]string{
	RoleInjectionName: ColInjectionName,
	RoleInjectionTime: ColInjectionTime,
	RoleNo:            ColNo,
	RoleRetentionTime: ColRetentionTime,
	RoleArea:          ColArea,
	RoleHeight:        ColHeight,
	RoleRelativeArea:  ColRelativeArea,
	RoleAmountPercent: ColAmountPercent,
	RolePeakType:      ColPeakType,
}

type columnRule struct {
	role  Role
	match func(h string) bool
}

func has(h string, subs ...string) bool {
	for _, s := range subs {
		if !strings.Contains(h, s) {
			return false
		}
	}
	return true
}

var (
	reNumber        = regexp.MustCompile(`^(no\.?|n°|nr\.?|num.*|#)$`)
	reInjectionName = regexp.MustCompile(`^inj.*name`)
	reInjectionTime = regexp.MustCompile(`^inj.*(time|date)`)
	reRetention     = regexp.MustCompile(`^(rt|r\.t\.?)(\s*\(.*\))?$`)
)

// columnRules is evaluated top to bottom; the first match wins.
var columnRules = []columnRule{
	{RoleInjectionTime, func(h string) bool { return has(h, "inject", "time") || reInjectionTime.MatchString(h) }},
	{RoleNo, reNumber.MatchString},
	{RoleInjectionName, func(h string) bool { return has(h, "injection", "name") || reInjectionName.MatchString(h) }},
	{RoleRetentionTime, func(h string) bool {
		return has(h, "ret.time") || has(h, "ret", "time") || reRetention.MatchString(h)
	}},
	{RoleArea, func(h string) bool { return h == "area" || (has(h, "area") && !has(h, "rel")) }},
	{RoleHeight, func(h string) bool { return has(h, "height") }},
	{RoleRelativeArea, func(h string) bool { return has(h, "rel", "area") }},
	{RoleAmountPercent, func(h string) bool { return has(h, "amount") || (has(h, "%") && !has(h, "rel")) }},
	{RolePeakType, func(h string) bool { return has(h, "peak", "type") }},
}

// RoleOf returns the canonical role of a raw header.
func RoleOf(raw string) (Role, bool) {
	h := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if h == "" {
		return "", false
	}
	for _, rule := range columnRules {
		if rule.match(h) {
			return rule.role, true
		}
	}
	return "", false
}

// Classify maps a raw header to its canonical column name. Relative area
// columns are suffixed with the contextual compound name when one is
// given. Unrecognized headers are returned unchanged.
func Classify(raw, context string) string {
	role, ok := RoleOf(raw)
	if !ok {
		return raw
	}
	return ColumnName(role, context)
}

// ColumnName returns the canonical column name of role.
func ColumnName(role Role, context string) string {
	name := roleNames[role]
	if role == RoleRelativeArea && context != "" {
		return RelativeAreaColumn(context)
	}
	return name
}

// RelativeAreaColumn names the relative area column of one compound.
func RelativeAreaColumn(compound string) string {
	return ColRelativeArea + " : " + compound
}

// CompoundOf extracts the compound name from a relative area column.
func CompoundOf(column string) (string, bool) {
	prefix := ColRelativeArea + " : "
	if !strings.HasPrefix(column, prefix) {
		return "", false
	}
	return strings.TrimPrefix(column, prefix), true
}
