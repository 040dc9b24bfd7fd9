package analysis

import (
	"fmt"
	"testing"

	"pcrimport/extractors"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ct(v float64) *float64 { return &v }

func row(well, target string, v *float64) extractors.NormalizedRow {
	return extractors.NormalizedRow{Well: well, Target: target, CT: v}
}

func TestAnalyze_ValidPairDetectable(t *testing.T) {
	rows := []extractors.NormalizedRow{
		row("A01", "RP", ct(15)),
		row("A01", "SC2", ct(25)),
		row("A02", "RP", ct(15)),
	}

	summary, pairs, err := Analyze(DefaultConfig(), "PLATE3_20240101.xlsx", rows, map[string]string{"A1": "S1"})
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	want := &WellPairResult{
		Wells:        [2]string{"A01", "A02"},
		Sample:       "S1",
		ControlCT:    []float64{15, 15},
		ControlValid: true,
		Validation:   Valid,
		Results: map[string]TargetResult{
			"SC2": {Classification: Detectable, CT: ct(25), Display: "25.00"},
		},
		Selected: true,
	}
	if diff := cmp.Diff(want, pairs[0]); diff != "" {
		t.Errorf("pair mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "3", summary.PlateID)
	assert.Equal(t, "2024-01-01", summary.Date)
	assert.True(t, summary.Valid)
	assert.Equal(t, 1, summary.PairsEvaluated)
	assert.Equal(t, 0, summary.InvalidSamples)
	assert.Equal(t, []string{"SC2"}, summary.Targets)
	assert.Equal(t, map[string]int{"SC2": 1}, summary.DetectableCounts)
}

func TestAnalyze_MissingControlInvalidatesPair(t *testing.T) {
	rows := []extractors.NormalizedRow{
		row("A01", "RP", nil),
		row("A01", "SC2", ct(25)),
		row("A02", "RP", nil),
	}

	summary, pairs, err := Analyze(DefaultConfig(), "run.xlsx", rows, map[string]string{"A01": "S1"})
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	p := pairs[0]
	assert.False(t, p.ControlValid)
	assert.Equal(t, Invalid, p.Validation)
	assert.False(t, p.Selected)
	assert.Equal(t, Detectable, p.Results["SC2"].Classification)

	assert.Equal(t, 1, summary.InvalidSamples)
	assert.True(t, summary.Valid, "only control samples invalidate the run")
	assert.Equal(t, map[string]int{"SC2": 0}, summary.DetectableCounts)
	assert.Equal(t, Unknown, summary.PlateID)
	assert.Equal(t, Unknown, summary.Date)
}

func TestAnalyze_ControlAnyInRange(t *testing.T) {
	rows := []extractors.NormalizedRow{
		row("B01", "RP", ct(12)),
		row("B02", "RP", ct(40)),
	}

	_, pairs, err := Analyze(DefaultConfig(), "", rows, map[string]string{"B1": "S1"})
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.True(t, pairs[0].ControlValid)
	assert.Equal(t, Valid, pairs[0].Validation)
	assert.Equal(t, []float64{12, 40}, pairs[0].ControlCT)
}

func TestAnalyze_ControlBoundaries(t *testing.T) {
	for _, tt := range []struct {
		rp    float64
		valid bool
	}{
		{9.99, false}, {10, true}, {35, true}, {35.01, false},
	} {
		_, pairs, err := Analyze(DefaultConfig(), "", []extractors.NormalizedRow{row("C03", "rp", ct(tt.rp))}, map[string]string{"C03": "S"})
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, tt.valid, pairs[0].ControlValid, "rp %v", tt.rp)
	}
}

func TestAnalyze_Classification(t *testing.T) {
	tests := []struct {
		ct       *float64
		want     Classification
		display  string
		selected bool
	}{
		{ct(10), Detectable, "10.00", true},
		{ct(38), Detectable, "38.00", true},
		{ct(38.004), Unclassified, "38.00", true},
		{ct(38.01), Inconclusive, "38.01", false},
		{ct(40), Inconclusive, "40.00", false},
		{ct(45), Unclassified, "45.00", true},
		{ct(5.5), Unclassified, "5.50", true},
		{nil, NotDetected, "", true},
	}

	for _, tt := range tests {
		rows := []extractors.NormalizedRow{row("D05", "RP", ct(20)), row("D06", "FLU", tt.ct)}
		summary, pairs, err := Analyze(DefaultConfig(), "", rows, map[string]string{"D05": "S"})
		require.NoError(t, err)
		require.Len(t, pairs, 1)

		res := pairs[0].Results["FLU"]
		assert.Equal(t, tt.want, res.Classification, "ct %v", tt.ct)
		assert.Equal(t, tt.display, res.Display)
		assert.Equal(t, tt.selected, pairs[0].Selected)

		wantCount := 0
		if tt.want == Detectable {
			wantCount = 1
		}
		assert.Equal(t, wantCount, summary.DetectableCounts["FLU"])
	}
}

func TestAnalyze_FirstNonNullCTWins(t *testing.T) {
	rows := []extractors.NormalizedRow{
		row("E01", "RP", ct(20)),
		row("E01", "SC2", nil),
		row("E02", "SC2", ct(39)),
		row("E02", "SC2", ct(22)),
	}

	_, pairs, err := Analyze(DefaultConfig(), "", rows, map[string]string{"E01": "S"})
	require.NoError(t, err)
	res := pairs[0].Results["SC2"]
	assert.Equal(t, Inconclusive, res.Classification)
	assert.Equal(t, 39.0, *res.CT)
	assert.False(t, pairs[0].Selected)
}

func TestAnalyze_InvalidNeverSelected(t *testing.T) {
	faker := gofakeit.New(7)
	for i := 0; i < 50; i++ {
		var rp *float64
		if faker.Bool() {
			rp = ct(faker.Float64Range(36, 50))
		}
		rows := []extractors.NormalizedRow{
			row("F07", "RP", rp),
			row("F07", "SC2", ct(faker.Float64Range(10, 38))),
		}

		_, pairs, err := Analyze(DefaultConfig(), "", rows, map[string]string{"F07": "S-" + faker.DigitN(5)})
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, Invalid, pairs[0].Validation)
		assert.False(t, pairs[0].Selected)
	}
}

func TestAnalyze_ControlSampleInvalidatesRun(t *testing.T) {
	rows := []extractors.NormalizedRow{
		row("H11", "RP", nil),
		row("H12", "RP", nil),
		row("A01", "RP", ct(20)),
	}
	wellMap := map[string]string{"H11": "neg-ctrl", "A01": "S1"}

	summary, pairs, err := Analyze(DefaultConfig(), "", rows, wellMap)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, "A01", pairs[0].Wells[0])
	assert.Equal(t, CategorySample, pairs[0].Category)
	assert.Equal(t, CategoryNegative, pairs[1].Category)
	assert.Equal(t, Invalid, pairs[1].Validation)
	assert.False(t, summary.Valid)
	assert.Equal(t, 1, summary.InvalidSamples)
}

func TestAnalyze_PositiveControlCategory(t *testing.T) {
	rows := []extractors.NormalizedRow{row("G01", "RP", ct(25))}
	_, pairs, err := Analyze(DefaultConfig(), "", rows, map[string]string{"G01": "K+ POS"})
	require.NoError(t, err)
	assert.Equal(t, CategoryPositive, pairs[0].Category)
	assert.Equal(t, Valid, pairs[0].Validation)
}

func TestEnumeratePairs_Skips(t *testing.T) {
	rows := []extractors.NormalizedRow{
		row("A01", "RP", ct(20)), // образец указан только для второй лунки
		row("A03", "RP", ct(20)), // нет образца
		row("B02", "RP", ct(20)), // данных первой лунки нет, образец есть
	}
	wellMap := map[string]string{"A02": "S1", "B01": "S2", "C01": "S3"}

	_, pairs, err := Analyze(DefaultConfig(), "", rows, wellMap)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, [2]string{"B01", "B02"}, pairs[0].Wells)
	assert.Equal(t, "S2", pairs[0].Sample)
}

func TestAnalyze_FullPlate(t *testing.T) {
	faker := gofakeit.New(42)

	var rows []extractors.NormalizedRow
	wellMap := make(map[string]string)
	for _, r := range plateRows {
		for c := 1; c <= plateColumns; c++ {
			well := fmt.Sprintf("%c%02d", r, c)
			rows = append(rows, row(well, "RP", ct(faker.Float64Range(10, 35))))
			if c%2 == 1 {
				wellMap[well] = "S-" + faker.DigitN(6)
				rows = append(rows, row(well, "SC2", ct(faker.Float64Range(10, 38))))
			}
		}
	}

	summary, pairs, err := Analyze(DefaultConfig(), "PLATE 7 20231231", rows, wellMap)
	require.NoError(t, err)
	assert.Len(t, pairs, 48)
	assert.Equal(t, 48, summary.PairsEvaluated)
	assert.Equal(t, 48, summary.DetectableCounts["SC2"])
	assert.Equal(t, "7", summary.PlateID)
	assert.Equal(t, "2023-12-31", summary.Date)
	for _, p := range pairs {
		assert.True(t, p.Selected)
	}
}

func TestRun_StateMachine(t *testing.T) {
	run := NewRun(DefaultConfig(), "", []extractors.NormalizedRow{row("A01", "RP", ct(20))}, map[string]string{"A01": "S"})
	assert.Equal(t, Initialized, run.State())

	_, err := run.EvaluateNext()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, run.EnumeratePairs(), ErrInvalidState)
	_, err = run.Finalize()
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, run.ExtractMetadata())
	assert.Equal(t, MetadataExtracted, run.State())
	assert.ErrorIs(t, run.ExtractMetadata(), ErrInvalidState)

	require.NoError(t, run.EnumeratePairs())
	assert.Equal(t, WellPairsEnumerated, run.State())

	// Пока есть неоценённые пары, итог не подводится
	_, err = run.Finalize()
	assert.ErrorIs(t, err, ErrInvalidState)

	ok, err := run.EvaluateNext()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Evaluating, run.State())

	ok, err = run.EvaluateNext()
	require.NoError(t, err)
	assert.False(t, ok)

	summary, err := run.Finalize()
	require.NoError(t, err)
	assert.Equal(t, Finalized, run.State())
	assert.Equal(t, 1, summary.PairsEvaluated)

	_, err = run.EvaluateNext()
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = run.Finalize()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRun_ExplicitTargets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Targets = []string{"FLU-A", "FLU-B"}
	rows := []extractors.NormalizedRow{row("A01", "RP", ct(20)), row("A01", "flu-a", ct(30)), row("A01", "SC2", ct(30))}

	summary, pairs, err := Analyze(cfg, "", rows, map[string]string{"A01": "S"})
	require.NoError(t, err)

	want := map[string]TargetResult{
		"FLU-A": {Classification: Detectable, CT: ct(30), Display: "30.00"},
		"FLU-B": {Classification: NotDetected},
	}
	if diff := cmp.Diff(want, pairs[0].Results, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]int{"FLU-A": 1, "FLU-B": 0}, summary.DetectableCounts)
}

func TestOverrideAndRecount(t *testing.T) {
	rows := []extractors.NormalizedRow{row("A01", "RP", nil), row("A01", "SC2", ct(20))}
	_, pairs, err := Analyze(DefaultConfig(), "", rows, map[string]string{"A01": "S"})
	require.NoError(t, err)
	require.False(t, pairs[0].Selected)

	pairs[0].Override(true)
	assert.True(t, pairs[0].Selected)
	assert.True(t, pairs[0].Overridden)
	assert.Equal(t, map[string]int{"SC2": 1}, CountDetectable(pairs, []string{"SC2"}))
}

func TestWellMapFromRows(t *testing.T) {
	rows := []extractors.NormalizedRow{
		{Well: "A01", Sample: "S1", Target: "RP"},
		{Well: "A01", Sample: "other", Target: "SC2"},
		{Well: "A02", Sample: "", Target: "RP"},
		{Well: "B01", Sample: "S2", Target: "RP"},
	}
	assert.Equal(t, map[string]string{"A01": "S1", "B01": "S2"}, WellMapFromRows(rows))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.ControlTarget = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.DetectableRange = Range{Min: 38, Max: 10}
	assert.Error(t, cfg.Validate())
}
