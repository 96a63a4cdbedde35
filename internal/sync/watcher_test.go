package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/codegraphhq/codegraph/internal/config"
	"github.com/codegraphhq/codegraph/internal/parser"
	"github.com/codegraphhq/codegraph/internal/store"
)

// TestMain verifies the watcher's fsnotify goroutine and debounce timer
// are fully torn down on ctx cancellation, the way the teacher's
// indexing/watcher.go tests guard against a leaked fsnotify watcher.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	root := t.TempDir()
	storeDir := t.TempDir()

	st, err := store.Open(storeDir)
	require.NoError(t, err)
	defer st.Close()

	s := New(root, st, parser.NewPool(), config.Default(), nil)
	w, err := NewWatcher(s, root, 10*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after context cancellation")
	}
}
