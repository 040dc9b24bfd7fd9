package container

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pcrimport/formats"
	"pcrimport/internal/config"
)

const customFormats = `
formats:
  - id: lab_plate
    header_keywords: [well, ct]
    layout:
      columns: {well: 0, ct: 1}
      start_row: 1
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewContainer_BuiltinsOnly(t *testing.T) {
	c, err := NewContainer(context.Background(), config.GetDefaults(), quietLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Store)
	assert.Nil(t, c.Watcher)
	assert.NotNil(t, c.UseCase)
	assert.Equal(t, len(formats.Builtin()), c.Registry.Len())
}

func TestNewContainer_AllSources(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	file := filepath.Join(dir, "formats.yaml")
	require.NoError(t, os.WriteFile(file, []byte(customFormats), 0o644))

	cfg := config.GetDefaults()
	cfg.FormatsFile = file
	cfg.FormatsDB = filepath.Join(dir, "db", "formats.db")
	cfg.FormatsWatch = true
	cfg.WatchDelay = 10 * time.Millisecond

	c, err := NewContainer(context.Background(), cfg, quietLogger())
	require.NoError(t, err)

	require.NotNil(t, c.Store)
	require.NotNil(t, c.Watcher)
	_, ok := c.Registry.Get("lab_plate")
	assert.True(t, ok)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestNewContainer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewContainer(ctx, config.GetDefaults(), quietLogger())
	assert.ErrorIs(t, err, context.Canceled)
}
