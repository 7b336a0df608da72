package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test home and environment expansion
func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/snippets")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "snippets"), expanded)

	expanded, err = ExpandPath("~")
	require.NoError(t, err)
	assert.Equal(t, home, expanded)

	t.Setenv("SNIPD_TEST_DIR", "/opt/packs")
	expanded, err = ExpandPath("$SNIPD_TEST_DIR/go")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/opt/packs", "go"), expanded)

	// A relative path comes back absolute.
	expanded, err = ExpandPath("relative/dir")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(expanded))
}

// Test comma splitting and whitespace trimming
func TestSplitPathList(t *testing.T) {
	out := SplitPathList([]string{"/a, /b", " /c ", "", " , "})
	assert.Equal(t, []string{"/a", "/b", "/c"}, out)

	assert.Nil(t, SplitPathList(nil))
}

// Test existence helpers against real filesystem state
func TestPathExistsAndIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.json")
	require.NoError(t, os.WriteFile(file, []byte(`{}`), 0644))

	assert.True(t, PathExists(dir))
	assert.True(t, PathExists(file))
	assert.False(t, PathExists(filepath.Join(dir, "missing")))

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
}

// Test the scan ignore list
func TestIsDefaultIgnored(t *testing.T) {
	assert.True(t, IsDefaultIgnored("node_modules"))
	assert.True(t, IsDefaultIgnored("node_modules/pack"))
	assert.True(t, IsDefaultIgnored("vendor/node_modules/pack"))
	assert.True(t, IsDefaultIgnored(".git"))

	assert.False(t, IsDefaultIgnored("snippets"))
	assert.False(t, IsDefaultIgnored("my-bindir"))
}
