package engine

import (
	"sort"
	"sync"

	"github.com/snipd-dev/snipd/snippet_loader/contracts"
	"github.com/snipd-dev/snipd/snippet_loader/models"
)

// registration is one named batch of records handed over by the loader.
type registration struct {
	category string
	opts     contracts.RegistrationOptions
	records  []models.SnippetRecord
}

// SnippetEngine is the default in-memory snippet engine. It keeps the
// loader's named registrations, replaces a registration when the same key is
// registered again, and queues the replaced batch for bounded cleanup via
// PruneInvalidated.
type SnippetEngine struct {
	mutex         sync.RWMutex
	registrations map[string]*registration
	order         []string
	invalidated   []string
	refreshes     map[string]int
}

// NewSnippetEngine creates an empty engine.
func NewSnippetEngine() *SnippetEngine {
	return &SnippetEngine{
		registrations: make(map[string]*registration),
		refreshes:     make(map[string]int),
	}
}

// Register stores records under opts.Key for category. Registering an
// existing key replaces the previous batch and marks it for cleanup.
func (e *SnippetEngine) Register(category string, records []models.SnippetRecord, opts contracts.RegistrationOptions) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if _, exists := e.registrations[opts.Key]; exists {
		e.invalidated = append(e.invalidated, opts.Key)
	} else {
		e.order = append(e.order, opts.Key)
	}

	e.registrations[opts.Key] = &registration{
		category: category,
		opts:     opts,
		records:  records,
	}
}

// AnnounceRefresh records that category's snippet set changed. Consumers of
// the engine re-query availability after a refresh.
func (e *SnippetEngine) AnnounceRefresh(category string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.refreshes[category]++
}

// PruneInvalidated drops queued stale state, at most limit entries per call.
func (e *SnippetEngine) PruneInvalidated(limit int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > len(e.invalidated) {
		limit = len(e.invalidated)
	}
	e.invalidated = e.invalidated[limit:]
}

// ActiveCategories returns the sorted categories that currently have at
// least one registered record.
func (e *SnippetEngine) ActiveCategories() []string {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	seen := make(map[string]struct{})
	for _, reg := range e.registrations {
		if len(reg.records) == 0 {
			continue
		}
		seen[reg.category] = struct{}{}
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Snippets returns category's records of the given registration type in
// registration order.
func (e *SnippetEngine) Snippets(category string, kind contracts.RegistrationType) []models.SnippetRecord {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	var records []models.SnippetRecord
	for _, key := range e.order {
		reg, exists := e.registrations[key]
		if !exists || reg.category != category || reg.opts.Type != kind {
			continue
		}
		records = append(records, reg.records...)
	}
	return records
}

// RefreshCount returns how many refresh announcements category has seen.
func (e *SnippetEngine) RefreshCount(category string) int {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.refreshes[category]
}

// PendingInvalidated returns how many stale batches await cleanup.
func (e *SnippetEngine) PendingInvalidated() int {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return len(e.invalidated)
}
