package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVariants(t *testing.T) {
	tests := []struct {
		role     Role
		variants []string
	}{
		{RoleRetentionTime, []string{"Ret.Time", "RT", "Retention Time (min)", "Ret. Time (min)", "ret time"}},
		{RoleInjectionTime, []string{"Inject Time", "Injection Time", "Injection Date/Time", "inj. date"}},
		{RoleInjectionName, []string{"Injection Name", "injection  name", "Inj. Name"}},
		{RoleNo, []string{"No", "No.", "n°", "Number"}},
		{RoleArea, []string{"Area", "Area (pA*min)"}},
		{RoleHeight, []string{"Height", "Height (pA)"}},
		{RoleRelativeArea, []string{"Rel. Area (%)", "Relative Area", "Rel.Area"}},
		{RoleAmountPercent, []string{"Amount", "Amount (%)", "%"}},
		{RolePeakType, []string{"Peak Type", "peak type"}},
	}

	for _, tt := range tests {
		for _, v := range tt.variants {
			role, ok := RoleOf(v)
			assert.True(t, ok, "RoleOf(%q)", v)
			assert.Equal(t, tt.role, role, "RoleOf(%q)", v)
		}
	}
}

func TestClassifyPassthrough(t *testing.T) {
	for _, h := range []string{"Peakname", "Comment", "Sample Weight", "  spaced  ", ""} {
		assert.Equal(t, h, Classify(h, ""), "Classify(%q)", h)
		assert.Equal(t, h, Classify(h, "Methane"), "Classify(%q) with context", h)
	}
}

func TestClassifyRelativeAreaContext(t *testing.T) {
	assert.Equal(t, "Rel. Area (%) : Methane", Classify("Rel.Area", "Methane"))
	assert.Equal(t, "Rel. Area (%)", Classify("Rel.Area", ""))
	assert.Equal(t, ColRetentionTime, Classify("RT", "Methane"))

	name, ok := CompoundOf(Classify("Relative Area", "Ethylene"))
	assert.True(t, ok)
	assert.Equal(t, "Ethylene", name)

	_, ok = CompoundOf(ColArea)
	assert.False(t, ok)
}

func TestClassifyIsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, ColInjectionTime, Classify("Inject Time", "x"))
	}
}
