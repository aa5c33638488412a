package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Rapid successive writes to the same record collapse into one
// notification.
const watchDebounce = 100 * time.Millisecond

// Watch reports external changes to the record stored under key, the
// filesystem analog of the browser storage event. The returned channel
// receives a signal whenever another writer creates, overwrites, or
// removes the record, and is closed once ctx ends.
func (s *FileStore) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}

	// Watch the directory, not the file: the record may not exist yet,
	// and removal would drop a direct file watch.
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watcher.Add[%s]: %w", s.dir, err)
	}

	target := s.path(key)
	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)
		defer func() { _ = watcher.Close() }()

		var last time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
					continue
				}
				if !last.IsZero() && time.Since(last) < watchDebounce {
					continue
				}
				last = time.Now()

				select {
				case ch <- struct{}{}:
				default: // receiver is behind, signal already pending
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("store watch error", zap.String("key", key), zap.Error(err))
			}
		}
	}()

	return ch, nil
}
