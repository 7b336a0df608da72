package models

// SnippetRecord is one parsed snippet. Immutable once created; a source
// entry declaring several prefixes produces one record per prefix with the
// shared name, body and description.
type SnippetRecord struct {
	Trigger     string
	Name        string
	Description string
	Body        string
	AutoTrigger bool
	WordTrigger bool
}

// PathCacheEntry holds the parse result for one snippet file, keyed by its
// absolute path. The same entry is shared by every category referencing the
// file; it is removed only by explicit invalidation.
type PathCacheEntry struct {
	TriggerSnippets []SnippetRecord
	AutoSnippets    []SnippetRecord
	ContentHash     uint64
}

// LazyLoadState tracks the deferral state of one category. A category moves
// from not-materialized to materialized at most once; afterwards any further
// registration for it loads immediately.
type LazyLoadState struct {
	Materialized bool
	PendingFiles []string
}

// CategoryFileMap maps a category key to the ordered set of absolute file
// paths contributing snippets to it.
type CategoryFileMap map[string][]string

// Add appends path to the category's file list unless it is already present.
func (m CategoryFileMap) Add(category, path string) {
	for _, existing := range m[category] {
		if existing == path {
			return
		}
	}
	m[category] = append(m[category], path)
}

// Merge folds other into m. Merging is additive; existing contributions are
// never replaced and duplicates are dropped.
func (m CategoryFileMap) Merge(other CategoryFileMap) {
	for category, files := range other {
		for _, path := range files {
			m.Add(category, path)
		}
	}
}

// Categories returns the category keys present in the map.
func (m CategoryFileMap) Categories() []string {
	keys := make([]string, 0, len(m))
	for category := range m {
		keys = append(keys, category)
	}
	return keys
}
