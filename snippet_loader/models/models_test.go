package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test that a string-or-list value accepts both JSON shapes
func TestStringList_UnmarshalJSON(t *testing.T) {
	var single StringList
	require.NoError(t, json.Unmarshal([]byte(`"go"`), &single))
	assert.Equal(t, StringList{"go"}, single)

	var list StringList
	require.NoError(t, json.Unmarshal([]byte(`["go", "python"]`), &list))
	assert.Equal(t, StringList{"go", "python"}, list)

	var empty StringList
	require.NoError(t, json.Unmarshal([]byte(`[]`), &empty))
	assert.Empty(t, empty)

	var bad StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &bad))
}

// Test additive, order-preserving accumulation of contributions
func TestCategoryFileMap_AddAndMerge(t *testing.T) {
	contributions := make(CategoryFileMap)
	contributions.Add("go", "/abs/a.json")
	contributions.Add("go", "/abs/b.json")
	contributions.Add("go", "/abs/a.json") // duplicate, dropped

	assert.Equal(t, []string{"/abs/a.json", "/abs/b.json"}, contributions["go"])

	other := CategoryFileMap{
		"go":     {"/abs/b.json", "/abs/c.json"},
		"python": {"/abs/p.json"},
	}
	contributions.Merge(other)

	assert.Equal(t, []string{"/abs/a.json", "/abs/b.json", "/abs/c.json"}, contributions["go"])
	assert.Equal(t, []string{"/abs/p.json"}, contributions["python"])
	assert.ElementsMatch(t, []string{"go", "python"}, contributions.Categories())
}
