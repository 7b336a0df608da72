package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipd-dev/snipd/snippet_loader/contracts"
	"github.com/snipd-dev/snipd/snippet_loader/models"
)

func triggerOpts(key string) contracts.RegistrationOptions {
	return contracts.RegistrationOptions{Type: contracts.RegistrationTrigger, Key: key}
}

// Test basic registration and retrieval in registration order
func TestSnippetEngine_RegisterAndSnippets(t *testing.T) {
	snippetEngine := NewSnippetEngine()

	snippetEngine.Register("go", []models.SnippetRecord{{Trigger: "fn", Name: "func"}}, triggerOpts("trigger:go:a.json"))
	snippetEngine.Register("go", []models.SnippetRecord{{Trigger: "st", Name: "struct"}}, triggerOpts("trigger:go:b.json"))

	records := snippetEngine.Snippets("go", contracts.RegistrationTrigger)
	require.Len(t, records, 2)
	assert.Equal(t, "func", records[0].Name)
	assert.Equal(t, "struct", records[1].Name)

	assert.Empty(t, snippetEngine.Snippets("go", contracts.RegistrationAuto))
	assert.Empty(t, snippetEngine.Snippets("python", contracts.RegistrationTrigger))
}

// Test that re-registering a key replaces the batch and queues the old one
func TestSnippetEngine_ReplaceByKey(t *testing.T) {
	snippetEngine := NewSnippetEngine()
	key := "trigger:go:a.json"

	snippetEngine.Register("go", []models.SnippetRecord{{Trigger: "old", Name: "old"}}, triggerOpts(key))
	assert.Equal(t, 0, snippetEngine.PendingInvalidated())

	snippetEngine.Register("go", []models.SnippetRecord{{Trigger: "new", Name: "new"}}, triggerOpts(key))

	records := snippetEngine.Snippets("go", contracts.RegistrationTrigger)
	require.Len(t, records, 1)
	assert.Equal(t, "new", records[0].Name)
	assert.Equal(t, 1, snippetEngine.PendingInvalidated())
}

// Test that cleanup is bounded by the caller's limit
func TestSnippetEngine_BoundedPrune(t *testing.T) {
	snippetEngine := NewSnippetEngine()
	key := "trigger:go:a.json"

	for i := 0; i < 5; i++ {
		snippetEngine.Register("go", nil, triggerOpts(key))
	}
	require.Equal(t, 4, snippetEngine.PendingInvalidated())

	snippetEngine.PruneInvalidated(3)
	assert.Equal(t, 1, snippetEngine.PendingInvalidated())

	// Limits past the queue length drain it without panicking.
	snippetEngine.PruneInvalidated(10)
	assert.Equal(t, 0, snippetEngine.PendingInvalidated())

	snippetEngine.PruneInvalidated(-1)
	assert.Equal(t, 0, snippetEngine.PendingInvalidated())
}

// Test that only categories with records count as active
func TestSnippetEngine_ActiveCategories(t *testing.T) {
	snippetEngine := NewSnippetEngine()

	snippetEngine.Register("python", []models.SnippetRecord{{Trigger: "def"}}, triggerOpts("trigger:python:a.json"))
	snippetEngine.Register("go", []models.SnippetRecord{{Trigger: "fn"}}, triggerOpts("trigger:go:b.json"))
	snippetEngine.Register("lua", nil, triggerOpts("trigger:lua:c.json"))

	assert.Equal(t, []string{"go", "python"}, snippetEngine.ActiveCategories())
}

// Test refresh announcement accounting
func TestSnippetEngine_RefreshCount(t *testing.T) {
	snippetEngine := NewSnippetEngine()

	assert.Equal(t, 0, snippetEngine.RefreshCount("go"))
	snippetEngine.AnnounceRefresh("go")
	snippetEngine.AnnounceRefresh("go")
	snippetEngine.AnnounceRefresh("python")

	assert.Equal(t, 2, snippetEngine.RefreshCount("go"))
	assert.Equal(t, 1, snippetEngine.RefreshCount("python"))
}
