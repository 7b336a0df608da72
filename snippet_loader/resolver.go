package snippet_loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/snipd-dev/snipd/snippet_loader/models"
)

// CategoryFilter is an allow/deny predicate over category keys built from
// caller-supplied include/exclude lists. Exclude takes precedence; an empty
// include list admits all categories.
type CategoryFilter struct {
	include map[string]struct{}
	exclude map[string]struct{}
}

// NewCategoryFilter builds a filter from include and exclude lists. Either
// list may be nil.
func NewCategoryFilter(include, exclude []string) *CategoryFilter {
	filter := &CategoryFilter{
		exclude: make(map[string]struct{}, len(exclude)),
	}
	if len(include) > 0 {
		filter.include = make(map[string]struct{}, len(include))
		for _, category := range include {
			filter.include[category] = struct{}{}
		}
	}
	for _, category := range exclude {
		filter.exclude[category] = struct{}{}
	}
	return filter
}

// Admits reports whether category passes the filter.
func (f *CategoryFilter) Admits(category string) bool {
	if f == nil {
		return true
	}
	if _, denied := f.exclude[category]; denied {
		return false
	}
	if f.include == nil {
		return true
	}
	_, allowed := f.include[category]
	return allowed
}

// ResolveRoot reads root's manifest and returns the category to file-path
// contributions it declares, filtered and with paths joined onto root. A
// missing manifest or one without a snippets section is a normal non-match
// and yields an empty map with no error. A malformed manifest yields an
// empty map and the decode error; callers treat it as zero contributions.
func ResolveRoot(root string, manifestName string, filter *CategoryFilter) (models.CategoryFileMap, error) {
	contributions := make(models.CategoryFileMap)

	manifestPath := filepath.Join(root, manifestName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return contributions, nil
		}
		return contributions, fmt.Errorf("failed to read manifest %s: %w", manifestPath, err)
	}

	var manifest models.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return contributions, fmt.Errorf("failed to decode manifest %s: %w", manifestPath, err)
	}

	for _, entry := range manifest.Contributes.Snippets {
		if entry.Path == "" {
			continue
		}

		filePath := entry.Path
		if !filepath.IsAbs(filePath) {
			filePath = filepath.Join(root, filePath)
		}

		for _, category := range entry.Language {
			if !filter.Admits(category) {
				continue
			}
			contributions.Add(category, filePath)
		}
	}

	return contributions, nil
}
