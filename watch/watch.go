// Package watch reports debounced changes to a single file.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last write before a change is
// reported.
const DefaultDebounce = 200 * time.Millisecond

// Watcher delivers one value on Events per burst of writes to the watched
// file. A nil value is a change; a non-nil value is a watcher error.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer

	events chan error
	Events <-chan error
	done   chan struct{}
	once   sync.Once
}

// File starts watching path. The parent directory is watched so editors that
// save by renaming over the file are still seen.
func File(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	events := make(chan error, 1)
	w := &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		events:   events,
		Events:   events,
		done:     make(chan struct{}),
	}

	go w.process()

	return w, nil
}

// Close stops the watcher. Pending debounced events are dropped.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) send(err error) {
	select {
	case <-w.done:
	case w.events <- err:
	default:
		// A change is already pending.
	}
}

func (w *Watcher) debounceUpdate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.send(nil)
	})
}

func (w *Watcher) process() {
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(err)
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.debounceUpdate()
			}
		}
	}
}
