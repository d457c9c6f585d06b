package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/craftpkg/craftpkg/internal/ops"
	"github.com/craftpkg/craftpkg/internal/render"
)

const descriptionWidth = 50

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the plugin registry",
	Long:  `Search the registry for server plugins matching the query. Results are ranked by the registry.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	if err := ops.Register("search", ops.GroupPackage, searchCmd, "Search the plugin registry"); err != nil {
		panic(fmt.Sprintf("failed to register search command: %v", err))
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	app, err := newAppFn(cmd)
	if err != nil {
		return err
	}

	hits, err := app.client.Search(cmd.Context(), args[0], app.cfg.Search.Limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(hits) == 0 {
		cmd.Printf("No plugins found for %q.\n", args[0])
		return nil
	}

	rows := make([][]string, 0, len(hits))
	for _, hit := range hits {
		rows = append(rows, []string{
			hit.Slug,
			render.Truncate(hit.Description, descriptionWidth),
			hit.Author,
			strconv.Itoa(hit.Downloads),
		})
	}
	render.Table(cmd.OutOrStdout(), []string{"Package", "Description", "Author", "Downloads"}, rows)
	return nil
}
