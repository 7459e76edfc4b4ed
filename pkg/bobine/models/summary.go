package models

// Summary is the fixed rollup over the total phase table.
type Summary struct {
	LightOlefins  float64 `json:"light_olefins"`
	Aromatics     float64 `json:"aromatics"`
	OtherHCGas    float64 `json:"other_hc_gas"`
	OtherHCLiquid float64 `json:"other_hc_liquid"`
	Residue       float64 `json:"residue"`

	Ethylene  float64 `json:"ethylene"`
	Propylene float64 `json:"propylene"`
	C4Olefins float64 `json:"c4_olefins"`
	Benzene   float64 `json:"benzene"`
	Toluene   float64 `json:"toluene"`
	Xylene    float64 `json:"xylene"`
	HVC       float64 `json:"hvc"`
}

// Breakdown returns the product repartition rows.
func (s Summary) Breakdown() []NamedValue {
	return []NamedValue{
		{Name: "Light olefin", Value: s.LightOlefins},
		{Name: "Aromatics", Value: s.Aromatics},
		{Name: "Other HC gas", Value: s.OtherHCGas},
		{Name: "Other HC liquid", Value: s.OtherHCLiquid},
		{Name: "Residue", Value: s.Residue},
	}
}

// HVCBreakdown returns the high-value chemical rows, HVC total last.
func (s Summary) HVCBreakdown() []NamedValue {
	return []NamedValue{
		{Name: "Ethylene", Value: s.Ethylene},
		{Name: "Propylene", Value: s.Propylene},
		{Name: "C4=", Value: s.C4Olefins},
		{Name: "Benzene", Value: s.Benzene},
		{Name: "Toluene", Value: s.Toluene},
		{Name: "Xylene", Value: s.Xylene},
		{Name: "HVC", Value: s.HVC},
	}
}
