package sync

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher wraps Sync.Run with an fsnotify-driven debounce, so a burst of
// filesystem events (an editor save, a branch checkout) triggers exactly
// one Run after activity settles. This is the supplemental "on demand"
// watch mode spec.md's §4.H framing allows for but doesn't itself
// require; grounded on the teacher's indexing/watcher.go +
// debounced_rebuilder.go (standardbeagle/lci), which debounce fsnotify
// events the same way before calling back into its incremental rebuild.
type Watcher struct {
	sync      *Sync
	fsw       *fsnotify.Watcher
	debounce  time.Duration
	OnSummary func(Summary, error)
}

// NewWatcher opens an fsnotify watch on root and every directory beneath
// it. Watcher has no Close method: the watch is closed when Run returns
// after its ctx is cancelled.
func NewWatcher(s *Sync, root string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addRecursive(fsw, root); err != nil {
		fsw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &Watcher{sync: s, fsw: fsw, debounce: debounce}, nil
}

// Run blocks, debouncing fsnotify events into Sync.Run calls, until ctx
// is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return w.fsw.Close()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			_ = event
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if w.OnSummary != nil {
				w.OnSummary(Summary{}, err)
			}
		case <-fire:
			summary, err := w.sync.Run(ctx)
			if w.OnSummary != nil {
				w.OnSummary(summary, err)
			}
		}
	}
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
}
