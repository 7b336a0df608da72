package snippet_loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test that a simple file produces records in declaration order
func TestParseFile_DeclarationOrder(t *testing.T) {
	data := []byte(`{
		"zulu": {"prefix": "zz", "body": "last"},
		"alpha": {"prefix": "aa", "body": "first"},
		"mike": {"prefix": "mm", "body": "middle"}
	}`)

	triggerSnippets, autoSnippets, err := ParseFile(data)
	require.NoError(t, err)
	require.Len(t, triggerSnippets, 3)
	assert.Empty(t, autoSnippets)

	// Order follows the source document, not key order.
	assert.Equal(t, "zulu", triggerSnippets[0].Name)
	assert.Equal(t, "alpha", triggerSnippets[1].Name)
	assert.Equal(t, "mike", triggerSnippets[2].Name)
}

// Test that a prefix list expands into one record per trigger
func TestParseFile_PrefixExpansion(t *testing.T) {
	data := []byte(`{
		"log statement": {
			"prefix": ["foo", "bar"],
			"body": "console.log($1)",
			"description": "print something"
		}
	}`)

	triggerSnippets, _, err := ParseFile(data)
	require.NoError(t, err)
	require.Len(t, triggerSnippets, 2)

	assert.Equal(t, "foo", triggerSnippets[0].Trigger)
	assert.Equal(t, "bar", triggerSnippets[1].Trigger)
	for _, record := range triggerSnippets {
		assert.Equal(t, "log statement", record.Name)
		assert.Equal(t, "print something", record.Description)
		assert.Equal(t, "console.log($1)", record.Body)
	}
}

// Test that a body given as a list of lines is joined with newlines
func TestParseFile_BodyLinesJoined(t *testing.T) {
	data := []byte(`{
		"main": {
			"prefix": "main",
			"body": ["func main() {", "\t$0", "}"]
		}
	}`)

	triggerSnippets, _, err := ParseFile(data)
	require.NoError(t, err)
	require.Len(t, triggerSnippets, 1)
	assert.Equal(t, "func main() {\n\t$0\n}", triggerSnippets[0].Body)
}

// Test that the extension block routes records to the auto list
func TestParseFile_AutoTrigger(t *testing.T) {
	data := []byte(`{
		"arrow": {
			"prefix": "=>",
			"body": "() => {$0}",
			"snipd": {"autotrigger": true}
		},
		"plain": {"prefix": "pl", "body": "plain"}
	}`)

	triggerSnippets, autoSnippets, err := ParseFile(data)
	require.NoError(t, err)
	require.Len(t, triggerSnippets, 1)
	require.Len(t, autoSnippets, 1)

	assert.Equal(t, "plain", triggerSnippets[0].Name)
	assert.Equal(t, "arrow", autoSnippets[0].Name)
	assert.True(t, autoSnippets[0].AutoTrigger)
	assert.False(t, triggerSnippets[0].AutoTrigger)
}

// Test that a description falls back to the entry name
func TestParseFile_DescriptionFallback(t *testing.T) {
	data := []byte(`{"for loop": {"prefix": "for", "body": "for {}"}}`)

	triggerSnippets, _, err := ParseFile(data)
	require.NoError(t, err)
	require.Len(t, triggerSnippets, 1)
	assert.Equal(t, "for loop", triggerSnippets[0].Description)
}

// Test that one malformed entry is skipped without dropping its siblings
func TestParseFile_MalformedEntryIsolated(t *testing.T) {
	data := []byte(`{
		"good one": {"prefix": "g1", "body": "first"},
		"broken": {"prefix": 42, "body": "ignored"},
		"good two": {"prefix": "g2", "body": "second"}
	}`)

	triggerSnippets, autoSnippets, err := ParseFile(data)
	require.NoError(t, err)
	assert.Empty(t, autoSnippets)
	require.Len(t, triggerSnippets, 2)
	assert.Equal(t, "good one", triggerSnippets[0].Name)
	assert.Equal(t, "good two", triggerSnippets[1].Name)
}

// Test that a structural decode failure aborts the whole file
func TestParseFile_StructuralFailure(t *testing.T) {
	cases := map[string][]byte{
		"not json":    []byte(`this is not json`),
		"not object":  []byte(`["a", "b"]`),
		"truncated":   []byte(`{"a": {"prefix": "a", "body": "x"}`),
		"empty input": []byte(``),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			triggerSnippets, autoSnippets, err := ParseFile(data)
			assert.Error(t, err)
			assert.Nil(t, triggerSnippets)
			assert.Nil(t, autoSnippets)
		})
	}
}

// Test that entries without usable prefixes yield no records
func TestParseFile_EmptyPrefix(t *testing.T) {
	data := []byte(`{
		"no prefix": {"body": "x"},
		"empty list": {"prefix": [], "body": "y"},
		"kept": {"prefix": "k", "body": "z"}
	}`)

	triggerSnippets, _, err := ParseFile(data)
	require.NoError(t, err)
	require.Len(t, triggerSnippets, 1)
	assert.Equal(t, "kept", triggerSnippets[0].Name)
}
