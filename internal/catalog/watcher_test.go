package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "perfumes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"code":"A","inspiredBy":"a"}]`), 0o644))

	holder := NewHolder(NewSourceLoader(&FileSource{Path: path}, nil), discardLogger())
	require.NoError(t, holder.Load(context.Background()))
	require.Equal(t, 1, holder.Snapshot().Len())

	w, err := NewWatcher(path, holder, 20*time.Millisecond, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte(`[{"code":"A","inspiredBy":"a"},{"code":"B","inspiredBy":"b"}]`), 0o644))
	require.Eventually(t, func() bool {
		return holder.Snapshot().Len() == 2
	}, 5*time.Second, 20*time.Millisecond)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{`), 0o644))

	cancel()
	require.NoError(t, <-done)
	require.Equal(t, 2, holder.Snapshot().Len())
}

func TestWatcherRejectsMissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "perfumes.json"), NewHolder(&scriptedLoader{}, nil), 0, nil)
	require.Error(t, err)
}
