// Package watch arms one-shot, per-file write hooks on top of fsnotify.
// Hooks are identified by a caller-chosen key; registering the same key
// again replaces the previous hook rather than stacking a second one, and a
// hook disarms itself before its callback runs.
package watch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// hook is one armed registration.
type hook struct {
	key      string
	path     string
	callback func()
}

// FileWatcher implements contracts.IFileWatcher over directory-level
// fsnotify watches. fsnotify watches directories rather than files so that
// editors which replace a file on save (write temp, rename over) still
// produce an event for the registered path.
type FileWatcher struct {
	fsw    *fsnotify.Watcher
	stderr io.Writer

	mutex   sync.Mutex
	hooks   map[string]*hook            // by key
	byPath  map[string]map[string]*hook // path -> key -> hook
	watched map[string]struct{}         // directories added to fsnotify
	closed  bool
}

// New creates a FileWatcher and starts its event loop.
func New() (*FileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &FileWatcher{
		fsw:     fsw,
		stderr:  os.Stderr,
		hooks:   make(map[string]*hook),
		byPath:  make(map[string]map[string]*hook),
		watched: make(map[string]struct{}),
	}

	go w.run()

	return w, nil
}

// OnNextWrite arms a hook that fires once on the next write to path, then
// self-removes. An existing hook under the same key is replaced.
func (w *FileWatcher) OnNextWrite(key string, path string, callback func()) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve watch path %s: %w", path, err)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return fmt.Errorf("watcher is closed")
	}

	dir := filepath.Dir(absPath)
	if _, ok := w.watched[dir]; !ok {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		w.watched[dir] = struct{}{}
	}

	if previous, ok := w.hooks[key]; ok {
		w.removeLocked(previous)
	}

	h := &hook{key: key, path: absPath, callback: callback}
	w.hooks[key] = h
	if w.byPath[absPath] == nil {
		w.byPath[absPath] = make(map[string]*hook)
	}
	w.byPath[absPath][key] = h

	return nil
}

// Close stops the event loop and releases the fsnotify watcher. Armed hooks
// are discarded without firing.
func (w *FileWatcher) Close() error {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return nil
	}
	w.closed = true
	w.hooks = make(map[string]*hook)
	w.byPath = make(map[string]map[string]*hook)
	w.mutex.Unlock()

	return w.fsw.Close()
}

// Pending returns the number of armed hooks.
func (w *FileWatcher) Pending() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return len(w.hooks)
}

// run dispatches fsnotify events to armed hooks until the watcher closes.
func (w *FileWatcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.fire(event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(w.stderr, "watch: %v\n", err)
		}
	}
}

// fire disarms and invokes every hook registered for path. Hooks are
// detached under the lock and invoked outside it, so a callback may re-arm
// a hook without deadlocking.
func (w *FileWatcher) fire(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mutex.Lock()
	keyed := w.byPath[absPath]
	if len(keyed) == 0 {
		w.mutex.Unlock()
		return
	}
	fired := make([]*hook, 0, len(keyed))
	for _, h := range keyed {
		fired = append(fired, h)
		delete(w.hooks, h.key)
	}
	delete(w.byPath, absPath)
	w.mutex.Unlock()

	for _, h := range fired {
		h.callback()
	}
}

// removeLocked detaches a hook from both indexes. Callers hold w.mutex.
func (w *FileWatcher) removeLocked(h *hook) {
	delete(w.hooks, h.key)
	if keyed := w.byPath[h.path]; keyed != nil {
		delete(keyed, h.key)
		if len(keyed) == 0 {
			delete(w.byPath, h.path)
		}
	}
}
