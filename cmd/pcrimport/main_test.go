package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcrimport/formats"
	"pcrimport/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func plateFile(t *testing.T) string {
	return testutil.WriteXLSX(t, "PLATE3_20240520.xlsx", testutil.SheetData{
		Name: "Results",
		Rows: testutil.QuantStudioRows(
			[]string{"1", "A1", "", "Ivanov", "RP", "UNKNOWN", "VIC", "NFQ-MGB", "18.4", ""},
			[]string{"1", "A1", "", "Ivanov", "SC2", "UNKNOWN", "FAM", "NFQ-MGB", "27.9", ""},
			[]string{"2", "A2", "", "Ivanov", "RP", "UNKNOWN", "VIC", "NFQ-MGB", "19.0", ""},
		),
	})
}

func TestDetectCommand(t *testing.T) {
	out, err := run(t, "detect", plateFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, formats.FormatQuantStudio)
	assert.Contains(t, out, "100.00")
}

func TestExtractCommand_JSON(t *testing.T) {
	out, err := run(t, "extract", "--json", plateFile(t))
	require.NoError(t, err)

	var report struct {
		Format string `json:"format"`
		Rows   []struct {
			Well string `json:"well"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, formats.FormatQuantStudio, report.Format)
	require.Len(t, report.Rows, 3)
	assert.Equal(t, "A01", report.Rows[0].Well)
}

func TestAnalyzeCommand_WellMap(t *testing.T) {
	mapFile := filepath.Join(t.TempDir(), "plate.yaml")
	require.NoError(t, os.WriteFile(mapFile, []byte("A1: Petrov\n"), 0o644))

	out, err := run(t, "analyze", "--map", mapFile, plateFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Petrov")
	assert.Contains(t, out, "plate: 3")
	assert.Contains(t, out, "SC2 detectable: 1")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	_, err := run(t, "analyze", "--format", "missing", plateFile(t))
	assert.ErrorIs(t, err, formats.ErrUnknownFormat)

	_, err = run(t, "analyze", "--kind", "csv", plateFile(t))
	assert.Error(t, err)

	_, err = run(t, "analyze")
	assert.Error(t, err)
}

func TestFormatsCommands(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "formats.db")
	file := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(file,
		[]byte(`[{"id":"lab_plate","layout":{"columns":{"well":0,"ct":1},"start_row":1}}]`), 0o644))

	_, err := run(t, "formats", "add", file)
	assert.ErrorIs(t, err, errNoFormatsDB)

	out, err := run(t, "formats", "add", "--formats-db", db, file)
	require.NoError(t, err)
	assert.Contains(t, out, "stored lab_plate")

	out, err = run(t, "formats", "list", "--formats-db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "lab_plate")
	assert.Contains(t, out, formats.FormatGeneric)

	out, err = run(t, "formats", "show", "Generic")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "generic"`)

	_, err = run(t, "formats", "remove", "--formats-db", db, "lab_plate")
	require.NoError(t, err)
	_, err = run(t, "formats", "remove", "--formats-db", db, "lab_plate")
	assert.ErrorIs(t, err, formats.ErrUnknownFormat)
}
