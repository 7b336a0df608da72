package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/snipd-dev/snipd/constants/lipgloss"
	"github.com/snipd-dev/snipd/watch"
)

// watchCmd: snipd watch
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Load all snippet packages and reload files as they change",
	Long: `The 'watch' subcommand loads every discovered category eagerly and then
stays resident. Each loaded file carries a one-shot write watch; saving a
snippet file invalidates only that file's cache entry and re-runs its load,
re-arming the watch for the next save.`,
	Run: func(cmd *cobra.Command, args []string) {
		handleWatchCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func handleWatchCommand(cmd *cobra.Command) {
	fileWatcher, err := watch.New()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Failed to start file watcher: %v", err)))
		return
	}
	defer fileWatcher.Close()

	deps := handleRootCommand(cmd, fileWatcher)
	if deps == nil {
		return
	}

	deps.Loader.ReloadHook = func(category, path string) {
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✔ Reloaded %s (%s)", path, category)))
	}

	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Loading snippet packages...")
	contributions := resolveContributions(deps)
	deps.Loader.LoadMap(contributions)
	spinner.Stop()

	active := deps.Engine.ActiveCategories()
	fmt.Println(lipgloss.Info.Render(fmt.Sprintf("Watching %d categories, %d cached files", len(active), deps.Cache.Len())))
	fmt.Println(lipgloss.BoxStyle.Render("Press Ctrl+C to stop"))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()
	fmt.Println(lipgloss.Yellow.Render("\n🔄 Exiting..."))
}
