package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/snipd-dev/snipd/constants/lipgloss"
	"github.com/snipd-dev/snipd/watch"
)

// scanCmd: snipd scan
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover snippet packages and show the category table",
	Long: `The 'scan' subcommand discovers every snippet-package root under the
configured paths, resolves each package manifest and prints which snippet
files contribute to which categories. With --stats it also loads every
category eagerly and reports parse-cache statistics.`,
	Run: func(cmd *cobra.Command, args []string) {
		showStats, _ := cmd.Flags().GetBool("stats")
		handleScanCommand(cmd, showStats)
	},
}

func init() {
	scanCmd.Flags().BoolP("stats", "s", false, "Load all categories and show cache statistics")
	rootCmd.AddCommand(scanCmd)
}

func handleScanCommand(cmd *cobra.Command, showStats bool) {
	deps := handleRootCommand(cmd, watch.NewNullWatcher())
	if deps == nil {
		return
	}

	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Scanning snippet packages...")
	contributions := resolveContributions(deps)
	spinner.Stop()

	if len(contributions) == 0 {
		fmt.Println(lipgloss.Yellow.Render("No snippet contributions found"))
		return
	}

	categories := contributions.Categories()
	sort.Strings(categories)

	tableData := pterm.TableData{{"Category", "Files"}}
	for _, category := range categories {
		tableData = append(tableData, []string{category, strings.Join(contributions[category], "\n")})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()

	if !showStats {
		return
	}

	deps.Loader.LoadMap(contributions)

	active := deps.Engine.ActiveCategories()
	fmt.Println(lipgloss.Info.Render(fmt.Sprintf("Active categories: %s", strings.Join(active, ", "))))

	perfStats := deps.Cache.GetPerformanceStats()
	fmt.Println(lipgloss.Info.Render("Cache statistics:"))
	fmt.Printf("  Entries: %d\n", deps.Cache.Len())
	fmt.Printf("  Requests: %v\n", perfStats["total_requests"])
	fmt.Printf("  Hits: %v\n", perfStats["cache_hits"])
	fmt.Printf("  Misses: %v\n", perfStats["cache_misses"])
	fmt.Printf("  Hit rate: %.2f%%\n", perfStats["hit_rate_percent"])
}
