package database

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"pcrimport/formats"
	"pcrimport/importer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DescriptorStore {
	t.Helper()
	store, err := NewDescriptorStore(":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDescriptorStore_SaveAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	d := formats.Descriptor{
		ID:        "Lab Cycler",
		Vendor:    "Lab",
		Extractor: formats.ExtractorBlock,
		Layout: formats.Layout{
			Columns:  map[importer.Role]int{importer.RoleWell: 0, importer.RoleCT: 4},
			StartRow: 2,
		},
	}
	require.NoError(t, store.Save(ctx, d))

	d.Vendor = "Lab v2"
	require.NoError(t, store.Save(ctx, d))

	got, err := store.Descriptors(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lab v2", got[0].Vendor)
	assert.Equal(t, 4, got[0].Layout.Columns[importer.RoleCT])
}

func TestDescriptorStore_SkipsMalformed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRaw(ctx, "garbage", "{not json"))
	require.NoError(t, store.SaveRaw(ctx, "no_id", `{"vendor": "x"}`))
	require.NoError(t, store.SaveRaw(ctx, "ok", `{"id": "ok", "layout": {"columns": {"well": 0, "ct": 1}}}`))

	got, err := store.Descriptors(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
}

func TestDescriptorStore_SaveRejectsInvalid(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.Save(context.Background(), formats.Descriptor{Extractor: "x"}))
}

func TestDescriptorStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, formats.Descriptor{ID: "temp"}))
	require.NoError(t, store.Delete(ctx, "TEMP"))
	assert.ErrorIs(t, store.Delete(ctx, "temp"), formats.ErrUnknownFormat)
}

func TestDescriptorStore_AsRegistrySource(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewDescriptorStore(filepath.Join(dir, "nested", "formats.db"), logger)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, formats.Descriptor{
		ID:     "stored_format",
		Layout: formats.Layout{Columns: map[importer.Role]int{importer.RoleWell: 1, importer.RoleCT: 3}},
	}))

	registry := formats.NewRegistry(logger, store)
	require.NoError(t, registry.Load(ctx))

	d, ok := registry.Get("Stored Format")
	require.True(t, ok)
	assert.Equal(t, 1, d.Layout.Columns[importer.RoleWell])
	assert.Equal(t, len(formats.Builtin())+1, registry.Len())
}
