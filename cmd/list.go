package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/snipd-dev/snipd/constants/lipgloss"
	"github.com/snipd-dev/snipd/snippet_loader/contracts"
	"github.com/snipd-dev/snipd/utils"
	"github.com/snipd-dev/snipd/watch"
)

// listCmd: snipd list <category>
var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "Load one category and list its snippet records",
	Long: `The 'list' subcommand resolves the configured snippet packages, loads the
given category through the lazy path and prints every snippet record it
produces. With --body each snippet body is rendered with syntax
highlighting, using the category as the language hint.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showBody, _ := cmd.Flags().GetBool("body")
		handleListCommand(cmd, args[0], showBody)
	},
}

func init() {
	listCmd.Flags().BoolP("body", "b", false, "Render snippet bodies with syntax highlighting")
	rootCmd.AddCommand(listCmd)
}

func handleListCommand(cmd *cobra.Command, category string, showBody bool) {
	deps := handleRootCommand(cmd, watch.NewNullWatcher())
	if deps == nil {
		return
	}

	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Loading snippets...")
	contributions := resolveContributions(deps)

	files, found := contributions[category]
	if !found || len(files) == 0 {
		spinner.Stop()
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("No snippet files contribute to category %q", category)))
		return
	}

	// Defer through the lazy path, then demand the category; this is the
	// same sequence an editor host drives.
	deps.Loader.LazyLoad(category, files)
	deps.Loader.RequireCategory(category)
	spinner.Stop()

	triggerSnippets := deps.Engine.Snippets(category, contracts.RegistrationTrigger)
	autoSnippets := deps.Engine.Snippets(category, contracts.RegistrationAuto)

	if len(triggerSnippets) == 0 && len(autoSnippets) == 0 {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Category %q produced no snippet records", category)))
		return
	}

	tableData := pterm.TableData{{"Trigger", "Name", "Description", "Auto"}}
	for _, record := range triggerSnippets {
		tableData = append(tableData, []string{record.Trigger, record.Name, record.Description, ""})
	}
	for _, record := range autoSnippets {
		tableData = append(tableData, []string{record.Trigger, record.Name, record.Description, "yes"})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()

	if !showBody {
		return
	}

	for _, record := range append(triggerSnippets, autoSnippets...) {
		fmt.Println(lipgloss.Info.Render(fmt.Sprintf("── %s (%s)", record.Name, record.Trigger)))
		utils.RenderSnippetBody(record.Body, category, deps.Config.Theme)
	}
}
