package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWell(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"A1", "A01", true},
		{"A01", "A01", true},
		{"a1", "A01", true},
		{"H12", "H12", true},
		{"B 7", "B07", true},
		{" C10 ", "C10", true},
		{"А1", "A01", true}, // кириллическая А
		{"I1", "", false},
		{"A13", "", false},
		{"A0", "", false},
		{"A00", "", false},
		{"A001", "", false},
		{"A010", "", false},
		{"A012", "", false},
		{"B09", "B09", true},
		{"1", "", false},
		{"", "", false},
		{"Well", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeWell(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeWell_IdempotentOverPlate(t *testing.T) {
	for _, row := range "ABCDEFGH" {
		for col := 1; col <= 12; col++ {
			raw := fmt.Sprintf("%c%d", row, col)
			once, ok := NormalizeWell(raw)
			require.True(t, ok, raw)
			assert.Regexp(t, CanonicalWellPattern, once)

			twice, ok := NormalizeWell(once)
			require.True(t, ok)
			assert.Equal(t, once, twice)
		}
	}
}

func TestWellMatchRate(t *testing.T) {
	assert.Equal(t, 0.0, WellMatchRate(nil))
	assert.Equal(t, 1.0, WellMatchRate([]string{"A1", "B02"}))
	assert.Equal(t, 0.5, WellMatchRate([]string{"A1", "17"}))
}
