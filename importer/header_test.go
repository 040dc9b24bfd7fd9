package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeaderToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lower case", input: "Sample Name", want: "sample name"},
		{name: "parentheses removed", input: "C(t)", want: "ct"},
		{name: "square brackets removed", input: "Cq [mean]", want: "cq mean"},
		{name: "cyrillic te", input: "Cт", want: "ct"},
		{name: "cyrillic es and te", input: "Ст", want: "ct"},
		{name: "cyrillic upper es", input: "СQ", want: "cq"},
		{name: "cyrillic a", input: "А1", want: "a1"},
		{name: "cyrillic en", input: "Н12", want: "h12"},
		{name: "whitespace collapsed", input: "  Target \t  Name ", want: "target name"},
		{name: "non-breaking space", input: "Ct Mean", want: "ct mean"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeaderToken(tt.input))
		})
	}
}

func TestNormalizeHeaderToken_Idempotent(t *testing.T) {
	for _, s := range []string{"C(t)", "Ст", "Sample Name", "Лунка"} {
		once := NormalizeHeaderToken(s)
		assert.Equal(t, once, NormalizeHeaderToken(once), s)
	}
}

func TestClassifyHeader(t *testing.T) {
	tests := []struct {
		header string
		want   Role
		ok     bool
	}{
		{"Well", RoleWell, true},
		{"Well Position", RoleWell, true},
		{"Pos", RoleWell, true},
		{"Лунка", RoleWell, true},
		{"Sample Name", RoleSample, true},
		{"Name", RoleSample, true},
		{"Образец", RoleSample, true},
		{"Target Name", RoleTarget, true},
		{"Detector", RoleTarget, true},
		{"Мишень", RoleTarget, true},
		{"Ct", RoleCT, true},
		{"CT", RoleCT, true},
		{"Cq", RoleCT, true},
		{"C(t)", RoleCT, true},
		{"Ст", RoleCT, true},
		{"Ct Mean", RoleCT, true},
		{"Quencher", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := ClassifyHeader(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsExactCTHeader(t *testing.T) {
	assert.True(t, IsExactCTHeader("Ct"))
	assert.True(t, IsExactCTHeader(" c(t) "))
	assert.True(t, IsExactCTHeader("Cq"))
	assert.False(t, IsExactCTHeader("Ct Mean"))
	assert.False(t, IsExactCTHeader("Detector"))
}

func TestIsCTHeader_DoesNotMatchInsideWords(t *testing.T) {
	assert.False(t, IsCTHeader("Detector"))
	assert.False(t, IsCTHeader("Product"))
	assert.True(t, IsCTHeader("Cq Std. Dev"))
}

func TestIsTargetLabel(t *testing.T) {
	assert.True(t, IsTargetLabel("Target"))
	assert.True(t, IsTargetLabel("Target 1"))
	assert.True(t, IsTargetLabel("Name"))
	assert.False(t, IsTargetLabel("SC2"))
	assert.False(t, IsTargetLabel("FAM"))
}
