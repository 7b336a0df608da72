package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snipd-dev/snipd/config"
	"github.com/snipd-dev/snipd/constants/lipgloss"
	"github.com/snipd-dev/snipd/engine"
	"github.com/snipd-dev/snipd/snippet_loader"
	"github.com/snipd-dev/snipd/snippet_loader/contracts"
	"github.com/snipd-dev/snipd/snippet_loader/models"
)

// RootDependencies holds the wired collaborators shared by the subcommands.
type RootDependencies struct {
	Config *config.Config
	Cwd    string
	Cache  *snippet_loader.SnippetCache
	Engine *engine.SnippetEngine
	Loader *snippet_loader.Loader
}

var rootCmd = &cobra.Command{
	Use:   "snipd",
	Short: "Discover, parse and cache snippet packages",
	Long: `snipd discovers snippet-package manifests on disk, resolves which
snippet files contribute to which categories, parses them into snippet
records and keeps the parse cache coherent as files change.`,
	Run: func(cmd *cobra.Command, args []string) {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}

// handleRootCommand loads configuration and builds the dependency set used
// by every subcommand. The watcher is chosen per subcommand since one-shot
// commands have no resident loop to receive events.
func handleRootCommand(cmd *cobra.Command, watcher contracts.IFileWatcher) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Failed to get current directory: %v", err)))
		return nil
	}

	cfg := config.LoadConfigWithCache(cmd.Root(), cwd)

	cache := snippet_loader.NewSnippetCache()
	snippetEngine := engine.NewSnippetEngine()
	loader := snippet_loader.NewLoader(cache, snippetEngine, watcher, cfg.PruneBatchSize)

	return &RootDependencies{
		Config: cfg,
		Cwd:    cwd,
		Cache:  cache,
		Engine: snippetEngine,
		Loader: loader,
	}
}

// resolveContributions discovers package roots and aggregates every
// manifest's category contributions under the configured filter.
func resolveContributions(deps *RootDependencies) models.CategoryFileMap {
	roots := snippet_loader.DiscoverRoots(snippet_loader.DiscoverOptions{
		Paths:        deps.Config.Paths,
		SearchPaths:  deps.Config.SearchPaths,
		ManifestName: deps.Config.ManifestName,
	})

	filter := snippet_loader.NewCategoryFilter(deps.Config.Include, deps.Config.Exclude)

	aggregated := make(models.CategoryFileMap)
	for _, root := range roots {
		contributions, err := snippet_loader.ResolveRoot(root, deps.Config.ManifestName, filter)
		if err != nil {
			// A malformed manifest contributes nothing; keep going.
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Skipping %s: %v", root, err)))
			continue
		}
		aggregated.Merge(contributions)
	}

	return aggregated
}
