package formats_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pcrimport/formats"
	"pcrimport/importer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_YAML(t *testing.T) {
	path := writeFile(t, "formats.yaml", `
formats:
  - id: lab_cycler
    vendor: Lab
    header_keywords: [well, sample, target, ct]
    layout:
      columns: {well: 0, sample: 1, target: 2, ct: 5}
      start_row: 3
    extractor: block
    require_target: true
  - id: broken
    extractor: teleport
  - vendor: no id at all
`)

	src := formats.NewFileSource(path, quietLogger())
	descriptors, err := src.Descriptors(context.Background())
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	d := descriptors[0]
	assert.Equal(t, "lab_cycler", d.ID)
	assert.Equal(t, formats.ExtractorBlock, d.Extractor)
	assert.True(t, d.RequireTarget)
	assert.Equal(t, 3, d.Layout.StartRow)
	assert.Equal(t, 5, d.Layout.Columns[importer.RoleCT])
}

func TestFileSource_JSONList(t *testing.T) {
	path := writeFile(t, "formats.json", `[
		{"id": "json_cycler", "layout": {"columns": {"well": 0, "ct": 1}, "start_row": 1}},
		{"id": "bad", "layout": {"columns": {"well": "first"}}}
	]`)

	descriptors, err := formats.NewFileSource(path, quietLogger()).Descriptors(context.Background())
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "json_cycler", descriptors[0].ID)
	assert.Equal(t, formats.ExtractorGeneric, descriptors[0].Extractor)
}

func TestFileSource_JSONObject(t *testing.T) {
	path := writeFile(t, "formats.json", `{"formats": [{"id": "a", "extractor": "multi_target"}]}`)

	descriptors, err := formats.NewFileSource(path, quietLogger()).Descriptors(context.Background())
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, formats.ExtractorMultiTarget, descriptors[0].Extractor)
}

func TestFileSource_Errors(t *testing.T) {
	_, err := formats.NewFileSource(filepath.Join(t.TempDir(), "missing.yaml"), quietLogger()).
		Descriptors(context.Background())
	assert.Error(t, err)

	path := writeFile(t, "formats.json", `{"formats": [`)
	_, err = formats.NewFileSource(path, quietLogger()).Descriptors(context.Background())
	assert.Error(t, err)
}

func TestRegistry_LoadFromUnparsableFileKeepsBuiltins(t *testing.T) {
	path := writeFile(t, "formats.yaml", "formats: [: : :")

	r := formats.NewRegistry(quietLogger(), formats.NewFileSource(path, quietLogger()))
	require.NoError(t, r.Load(context.Background()))
	assert.Equal(t, len(formats.Builtin()), r.Len())
}

func TestDecodeDescriptor(t *testing.T) {
	d, err := formats.DecodeDescriptor([]byte(`{"id": "x", "layout": {"columns": {"well": 0, "ct": 2}}}`))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Layout.Columns[importer.RoleCT])

	data, err := formats.EncodeDescriptor(d)
	require.NoError(t, err)
	again, err := formats.DecodeDescriptor(data)
	require.NoError(t, err)
	assert.Equal(t, d, again)

	_, err = formats.DecodeDescriptor([]byte(`{"vendor": "nobody"}`))
	assert.Error(t, err)
}
