package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/snipd-dev/snipd/constants/lipgloss"
)

// configCacheEntry holds cached configuration with metadata
type configCacheEntry struct {
	config  *Config
	modTime time.Time
}

// Global cache for configuration files
var (
	configCache = make(map[string]*configCacheEntry)
	cacheMutex  sync.RWMutex
)

// Config represents the structure of the configuration file
type Config struct {
	Version        string   `mapstructure:"version"`
	Theme          string   `mapstructure:"theme"`
	ManifestName   string   `mapstructure:"manifest_name"`
	Paths          []string `mapstructure:"paths"`
	SearchPaths    []string `mapstructure:"search_paths"`
	Include        []string `mapstructure:"include"`
	Exclude        []string `mapstructure:"exclude"`
	PruneBatchSize int      `mapstructure:"prune_batch_size"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:        "0.3.1",
	Theme:          "dracula",
	ManifestName:   "package.json",
	Paths:          nil,
	SearchPaths:    []string{"~/.snipd/snippets"},
	Include:        nil,
	Exclude:        nil,
	PruneBatchSize: 64,
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		// Use the config file from the flag
		viper.SetConfigFile(cfgFile)
		if fileType := GetConfigFileType(cfgFile); fileType != "" {
			viper.SetConfigType(fileType)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("snipd-config") // Name of config file (without extension)
		viper.AddConfigPath(cwd)            // Look in the current working directory

		// Support both JSON and YAML formats
		viper.SetConfigType("yaml") // Set default type
		if err := viper.ReadInConfig(); err != nil {
			// If YAML fails, try JSON
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// If both fail, we'll continue with defaults
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	// Read the explicitly specified config file (if any)
	if cfgFile != "" {
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("manifest_name", DefaultConfig.ManifestName)
	viper.SetDefault("paths", DefaultConfig.Paths)
	viper.SetDefault("search_paths", DefaultConfig.SearchPaths)
	viper.SetDefault("include", DefaultConfig.Include)
	viper.SetDefault("exclude", DefaultConfig.Exclude)
	viper.SetDefault("prune_batch_size", DefaultConfig.PruneBatchSize)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "SNIPD_THEME")
	_ = viper.BindEnv("manifest_name", "SNIPD_MANIFEST_NAME")
	_ = viper.BindEnv("paths", "SNIPD_PATHS")
	_ = viper.BindEnv("search_paths", "SNIPD_SEARCH_PATHS")
	_ = viper.BindEnv("include", "SNIPD_INCLUDE")
	_ = viper.BindEnv("exclude", "SNIPD_EXCLUDE")
	_ = viper.BindEnv("prune_batch_size", "SNIPD_PRUNE_BATCH_SIZE")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("manifest_name", rootCmd.PersistentFlags().Lookup("manifest_name"))
	_ = viper.BindPFlag("paths", rootCmd.PersistentFlags().Lookup("paths"))
	_ = viper.BindPFlag("search_paths", rootCmd.PersistentFlags().Lookup("search_paths"))
	_ = viper.BindPFlag("include", rootCmd.PersistentFlags().Lookup("include"))
	_ = viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	_ = viper.BindPFlag("prune_batch_size", rootCmd.PersistentFlags().Lookup("prune_batch_size"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Theme used when rendering snippet bodies (e.g., 'dracula', 'monokai')")
	rootCmd.PersistentFlags().String("manifest_name", DefaultConfig.ManifestName, "Name of the package manifest file declaring snippet contributions")
	rootCmd.PersistentFlags().StringSlice("paths", DefaultConfig.Paths, "Explicit snippet package roots (comma-separated, overrides search paths)")
	rootCmd.PersistentFlags().StringSlice("search_paths", DefaultConfig.SearchPaths, "Directories scanned recursively for snippet package manifests")
	rootCmd.PersistentFlags().StringSlice("include", DefaultConfig.Include, "Categories to admit; empty admits all")
	rootCmd.PersistentFlags().StringSlice("exclude", DefaultConfig.Exclude, "Categories to reject; exclude wins over include")
	rootCmd.PersistentFlags().Int("prune_batch_size", DefaultConfig.PruneBatchSize, "Upper bound on stale engine entries cleaned up after one reload")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}

// LoadConfigWithCache loads configuration with caching support
func LoadConfigWithCache(rootCmd *cobra.Command, cwd string) *Config {
	var configFilePath string

	// Determine config file path
	if cfgFile != "" {
		configFilePath = cfgFile
	} else {
		// Check for default config files
		yamlPath := fmt.Sprintf("%s/snipd-config.yaml", cwd)
		ymlPath := fmt.Sprintf("%s/snipd-config.yml", cwd)
		jsonPath := fmt.Sprintf("%s/snipd-config.json", cwd)

		if _, err := os.Stat(yamlPath); err == nil {
			configFilePath = yamlPath
		} else if _, err := os.Stat(ymlPath); err == nil {
			configFilePath = ymlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			configFilePath = jsonPath
		}
	}

	// If no config file exists, return default configuration loading
	if configFilePath == "" {
		return LoadConfigs(rootCmd, cwd)
	}

	// Check file modification time
	fileInfo, err := os.Stat(configFilePath)
	if err != nil {
		// File doesn't exist or error, fallback to regular loading
		return LoadConfigs(rootCmd, cwd)
	}

	// Check cache first
	cacheMutex.RLock()
	if cached, exists := configCache[configFilePath]; exists {
		// Check if file has been modified since cache
		if fileInfo.ModTime().Equal(cached.modTime) {
			cacheMutex.RUnlock()
			return cached.config
		}
	}
	cacheMutex.RUnlock()

	// Load configuration normally
	config := LoadConfigs(rootCmd, cwd)

	// Update cache
	cacheMutex.Lock()
	configCache[configFilePath] = &configCacheEntry{
		config:  config,
		modTime: fileInfo.ModTime(),
	}
	cacheMutex.Unlock()

	return config
}

// ClearConfigCache clears all cached configuration files
func ClearConfigCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	configCache = make(map[string]*configCacheEntry)
}

// InvalidateConfigCache removes a specific config file from cache
func InvalidateConfigCache(configPath string) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	delete(configCache, configPath)
}
