package snippet_loader

import (
	"fmt"
	"os"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/snipd-dev/snipd/snippet_loader/contracts"
	"github.com/snipd-dev/snipd/snippet_loader/models"
)

// Loader orchestrates snippet loading per category: it consults the cache,
// parses misses, registers the resulting records with the snippet engine,
// arms a write watch per file and tracks each category's lazy state. All
// state lives on the Loader instance so tests run against a fresh one.
//
// A mutex guards the registry tables because watch callbacks re-enter the
// loader from the watcher goroutine; per-path parse-at-most-once is
// preserved under concurrent loads of overlapping files.
type Loader struct {
	cache   *SnippetCache
	engine  contracts.ISnippetEngine
	watcher contracts.IFileWatcher

	// pruneBatchSize caps how much stale engine state one reload may clean
	// up, so a reload burst cannot stall on an unbounded sweep.
	pruneBatchSize int

	mutex         sync.Mutex
	categoryFiles models.CategoryFileMap
	lazyState     map[string]*models.LazyLoadState

	// ReloadHook, when set, observes completed single-file reloads.
	ReloadHook func(category, path string)
}

// NewLoader wires a Loader onto its collaborators. pruneBatchSize values
// below one fall back to a conservative default.
func NewLoader(cache *SnippetCache, engine contracts.ISnippetEngine, watcher contracts.IFileWatcher, pruneBatchSize int) *Loader {
	if pruneBatchSize < 1 {
		pruneBatchSize = 64
	}
	return &Loader{
		cache:          cache,
		engine:         engine,
		watcher:        watcher,
		pruneBatchSize: pruneBatchSize,
		categoryFiles:  make(models.CategoryFileMap),
		lazyState:      make(map[string]*models.LazyLoadState),
	}
}

// Load eagerly loads the given files for category: cache hits are reused,
// misses are parsed and cached, records are registered with the engine and a
// one-shot write watch is armed per file. Files are processed in the order
// supplied. A missing or malformed file contributes zero records and never
// aborts the rest of the batch.
func (l *Loader) Load(category string, files []string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.loadLocked(category, files)
}

// LazyLoad defers loading of the given files until category is first
// demanded. If category has already materialized it behaves exactly like
// Load.
func (l *Loader) LazyLoad(category string, files []string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	state := l.lazyState[category]
	if state != nil && state.Materialized {
		l.loadLocked(category, files)
		return
	}

	if state == nil {
		state = &models.LazyLoadState{}
		l.lazyState[category] = state
	}
	for _, path := range files {
		state.PendingFiles = appendUnique(state.PendingFiles, path)
		l.categoryFiles.Add(category, path)
	}
}

// RequireCategory is the external demand signal. The first demand runs one
// materialization pass: every pending file of every not-yet-materialized
// category is loaded eagerly and the category is marked materialized. A
// category materializes at most once; later demands are no-ops.
func (l *Loader) RequireCategory(category string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.lazyState[category] == nil {
		// Demand for a category nothing was deferred for still marks it
		// materialized so later LazyLoad calls load immediately.
		l.lazyState[category] = &models.LazyLoadState{Materialized: true}
	}

	for cat, state := range l.lazyState {
		if state.Materialized {
			continue
		}
		state.Materialized = true
		pending := state.PendingFiles
		state.PendingFiles = nil
		l.loadLocked(cat, pending)
	}
}

// ReloadFile invalidates path's cache entry and re-runs the load for that
// single file under category, then asks the engine to prune stale derived
// state up to the configured batch size. It only acts when path currently
// has a live cache entry.
func (l *Loader) ReloadFile(category, path string) {
	l.mutex.Lock()

	if !l.cache.Contains(path) {
		l.mutex.Unlock()
		return
	}

	hook := l.reloadLocked(category, path)
	l.mutex.Unlock()

	if hook != nil {
		hook(category, path)
	}
}

// handleFileWrite is the write-watch callback. Unlike ReloadFile it does not
// require a live cache entry: a malformed save leaves none behind, and the
// next save must still re-run the load so a fixed file comes back.
func (l *Loader) handleFileWrite(category, path string) {
	l.mutex.Lock()
	hook := l.reloadLocked(category, path)
	l.mutex.Unlock()

	if hook != nil {
		hook(category, path)
	}
}

// reloadLocked invalidates path, re-runs the single-file load and asks the
// engine for a bounded prune. Callers hold l.mutex and invoke the returned
// hook only after releasing it.
func (l *Loader) reloadLocked(category, path string) func(category, path string) {
	l.cache.Invalidate(path)
	l.loadLocked(category, []string{path})
	l.engine.PruneInvalidated(l.pruneBatchSize)
	return l.ReloadHook
}

// LoadMap eagerly loads every category of an aggregated contribution map.
func (l *Loader) LoadMap(contributions models.CategoryFileMap) {
	for category, files := range contributions {
		l.Load(category, files)
	}
}

// LazyLoadMap defers every category of an aggregated contribution map.
func (l *Loader) LazyLoadMap(contributions models.CategoryFileMap) {
	for category, files := range contributions {
		l.LazyLoad(category, files)
	}
}

// CategoryFiles returns a copy of the category to contributing-files table.
func (l *Loader) CategoryFiles() models.CategoryFileMap {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	snapshot := make(models.CategoryFileMap, len(l.categoryFiles))
	snapshot.Merge(l.categoryFiles)
	return snapshot
}

// loadLocked is the eager path. Callers hold l.mutex.
func (l *Loader) loadLocked(category string, files []string) {
	for _, path := range files {
		l.categoryFiles.Add(category, path)
		l.loadFile(category, path)
	}
	l.engine.AnnounceRefresh(category)
}

// loadFile loads one file for one category, parsing only on a cache miss.
func (l *Loader) loadFile(category, path string) {
	// One watch per (category, path), armed before any read or parse outcome
	// so a malformed save still re-arms and a later fix reloads.
	// Re-registering replaces the hook, so repeated loads never stack
	// duplicate watches.
	l.watcher.OnNextWrite(watchKey(category, path), path, func() {
		l.handleFileWrite(category, path)
	})

	entry, found := l.cache.Get(path)
	if !found {
		data, err := os.ReadFile(path)
		if err != nil {
			// File was removed or never existed; routine, skip it.
			return
		}

		triggerSnippets, autoSnippets, err := ParseFile(data)
		if err != nil {
			// Malformed file contributes zero snippets this pass.
			return
		}

		entry = &models.PathCacheEntry{
			TriggerSnippets: triggerSnippets,
			AutoSnippets:    autoSnippets,
			ContentHash:     xxh3.Hash(data),
		}
		l.cache.Put(path, entry)
	}

	l.engine.Register(category, entry.TriggerSnippets, contracts.RegistrationOptions{
		Type:   contracts.RegistrationTrigger,
		Key:    registrationKey(contracts.RegistrationTrigger, category, path),
		Notify: true,
	})
	l.engine.Register(category, entry.AutoSnippets, contracts.RegistrationOptions{
		Type:   contracts.RegistrationAuto,
		Key:    registrationKey(contracts.RegistrationAuto, category, path),
		Notify: true,
	})
}

func registrationKey(kind contracts.RegistrationType, category, path string) string {
	return fmt.Sprintf("%s:%s:%s", kind, category, path)
}

func watchKey(category, path string) string {
	return fmt.Sprintf("%s:%s", category, path)
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
