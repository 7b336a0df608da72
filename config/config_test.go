package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "snipd"}
	InitFlags(cmd)
	return cmd
}

// Test config file type detection by extension
func TestGetConfigFileType(t *testing.T) {
	assert.Equal(t, "json", GetConfigFileType("snipd-config.json"))
	assert.Equal(t, "yaml", GetConfigFileType("snipd-config.yaml"))
	assert.Equal(t, "yaml", GetConfigFileType("snipd-config.yml"))
	assert.Equal(t, "", GetConfigFileType("snipd-config.toml"))
	assert.Equal(t, "", GetConfigFileType("snipd-config"))
}

// Test that the modtime cache returns the cached config until invalidated
func TestLoadConfigWithCache(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "snipd-config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("theme: monokai\nprune_batch_size: 8\n"), 0644))
	t.Cleanup(ClearConfigCache)

	first := LoadConfigWithCache(newConfigCommand(), dir)
	require.NotNil(t, first)
	assert.Equal(t, "monokai", first.Theme)
	assert.Equal(t, 8, first.PruneBatchSize)

	// Unchanged file, cached config returned as-is.
	second := LoadConfigWithCache(newConfigCommand(), dir)
	assert.Same(t, first, second)

	// Explicit invalidation forces a fresh load.
	InvalidateConfigCache(configPath)
	third := LoadConfigWithCache(newConfigCommand(), dir)
	assert.NotSame(t, first, third)
	assert.Equal(t, "monokai", third.Theme)

	// Clearing the whole cache does the same.
	ClearConfigCache()
	fourth := LoadConfigWithCache(newConfigCommand(), dir)
	assert.NotSame(t, third, fourth)
	assert.Equal(t, 8, fourth.PruneBatchSize)
}
