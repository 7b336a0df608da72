package models

import (
	"encoding/json"
	"fmt"
)

// StringList decodes a JSON value that may be either a single string or an
// array of strings. Any other shape is a decode error.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*s = StringList(list)
	return nil
}

// ManifestSnippetEntry is one declared contribution in a package manifest.
// Path is relative to the manifest's directory.
type ManifestSnippetEntry struct {
	Language StringList `json:"language"`
	Path     string     `json:"path"`
}

// ManifestContributes is the "contributes" section of a package manifest.
type ManifestContributes struct {
	Snippets []ManifestSnippetEntry `json:"snippets"`
}

// Manifest is the package-level descriptor declaring which snippet files
// contribute to which categories.
type Manifest struct {
	Name        string              `json:"name"`
	Contributes ManifestContributes `json:"contributes"`
}

// SnippetEntryExt is the extension block of a snippet-definition entry.
type SnippetEntryExt struct {
	AutoTrigger bool `json:"autotrigger"`
}

// SnippetEntry is one named entry in a snippet-definition file.
type SnippetEntry struct {
	Prefix      StringList       `json:"prefix"`
	Body        StringList       `json:"body"`
	Description string           `json:"description"`
	Snipd       *SnippetEntryExt `json:"snipd"`
}
