package profile

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change reports that the profile file was rewritten or removed.
type Change struct {
	Path    string
	Removed bool
}

// Watcher monitors a profile file for changes using fsnotify. It watches
// the parent directory so atomic renames are seen.
type Watcher struct {
	Path    string
	Changes <-chan Change // Read-only external channel

	changes chan Change
	done    chan struct{}
	started bool
	watcher *fsnotify.Watcher
}

// debounce coalesces the write bursts editors and Save produce.
const debounce = 100 * time.Millisecond

// NewWatcher creates a watcher for the profile file at path.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Path:    filepath.Clean(path),
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching. The parent directory must exist.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. It is safe to call
// after a failed Start.
func (w *Watcher) Stop() {
	w.watcher.Close()
	if w.started {
		<-w.done
	}
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				w.emit()
				pending = time.Time{}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

func (w *Watcher) emit() {
	_, err := os.Stat(w.Path)
	c := Change{Path: w.Path, Removed: os.IsNotExist(err)}
	select {
	case w.changes <- c:
	default:
		// A full buffer already holds a pending reload.
	}
}
