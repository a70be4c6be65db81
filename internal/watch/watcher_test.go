package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewFileWatcher_Validation(t *testing.T) {
	_, err := NewFileWatcher(nil, time.Millisecond, func(context.Context, []string) {})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	_, err = NewFileWatcher([]string{path}, time.Millisecond, nil)
	assert.Error(t, err)

	_, err = NewFileWatcher([]string{filepath.Join(t.TempDir(), "missing", "x.yaml")}, time.Millisecond, func(context.Context, []string) {})
	assert.Error(t, err, "parent directory must exist")
}

func TestFileWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o600))

	changes := make(chan []string, 10)
	fw, err := NewFileWatcher([]string{path}, 50*time.Millisecond, func(_ context.Context, paths []string) {
		changes <- paths
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("v"+string(rune('1'+i))), 0o600))
	}
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))

	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	select {
	case paths := <-changes:
		assert.Equal(t, []string{abs}, paths)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	require.NoError(t, fw.Stop())

	stats := fw.Stats()
	assert.GreaterOrEqual(t, stats.Events, 1)
	assert.GreaterOrEqual(t, stats.Triggers, 1)
	assert.Equal(t, abs, stats.LastPath)
}

func TestFileWatcher_StopAfterCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles: {}"), 0o600))

	fw, err := NewFileWatcher([]string{path}, 10*time.Millisecond, func(context.Context, []string) {})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	fw.Start(ctx)
	fw.Start(ctx)
	cancel()

	assert.NoError(t, fw.Stop())
}
