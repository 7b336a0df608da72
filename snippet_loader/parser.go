package snippet_loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/snipd-dev/snipd/snippet_loader/models"
)

// ParseFile decodes one snippet-definition file into its trigger-driven and
// auto-triggered record lists. A structural decode failure aborts the whole
// file and returns the error with no partial records; a malformed individual
// entry is skipped without affecting its siblings. Record order matches
// declaration order in the source document, which is why the top-level
// object is consumed through a token stream instead of a map.
func ParseFile(data []byte) ([]models.SnippetRecord, []models.SnippetRecord, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode snippet file: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("snippet file must be a JSON object, got %v", token)
	}

	var triggerSnippets []models.SnippetRecord
	var autoSnippets []models.SnippetRecord

	for decoder.More() {
		nameToken, err := decoder.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode snippet file: %w", err)
		}
		name, ok := nameToken.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token in snippet file: %v", nameToken)
		}

		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("failed to decode snippet file: %w", err)
		}

		var entry models.SnippetEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			// Malformed entry, skip it and keep the rest of the file.
			continue
		}

		records := buildRecords(name, entry)
		if entry.Snipd != nil && entry.Snipd.AutoTrigger {
			autoSnippets = append(autoSnippets, records...)
		} else {
			triggerSnippets = append(triggerSnippets, records...)
		}
	}

	// Consume the closing brace; a truncated document surfaces here.
	if _, err := decoder.Token(); err != nil {
		return nil, nil, fmt.Errorf("failed to decode snippet file: %w", err)
	}

	return triggerSnippets, autoSnippets, nil
}

// buildRecords expands one entry into its records, one per declared prefix.
// Name and description are shared; an empty description falls back to the
// entry name.
func buildRecords(name string, entry models.SnippetEntry) []models.SnippetRecord {
	if len(entry.Prefix) == 0 {
		return nil
	}

	description := entry.Description
	if description == "" {
		description = name
	}

	body := strings.Join(entry.Body, "\n")
	autoTrigger := entry.Snipd != nil && entry.Snipd.AutoTrigger

	records := make([]models.SnippetRecord, 0, len(entry.Prefix))
	for _, trigger := range entry.Prefix {
		if trigger == "" {
			continue
		}
		records = append(records, models.SnippetRecord{
			Trigger:     trigger,
			Name:        name,
			Description: description,
			Body:        body,
			AutoTrigger: autoTrigger,
			WordTrigger: true,
		})
	}

	return records
}
