package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftpkg/craftpkg/internal/ops"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check registry reachability per loader",
	Long: `Issue one search against the registry for each configured loader to verify
the registry is reachable before a batch of installs or upgrades. The registry
serves fresh data on every request, so there is no local index to refresh.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	if err := ops.Register("update", ops.GroupSupport, updateCmd, "Check registry reachability"); err != nil {
		panic(fmt.Sprintf("failed to register update command: %v", err))
	}
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	app, err := newAppFn(cmd)
	if err != nil {
		return err
	}

	for i, loader := range app.cfg.Plugins.Loaders {
		if _, err := app.client.Search(cmd.Context(), loader, 1); err != nil {
			return fmt.Errorf("registry unreachable for %s: %w", loader, err)
		}
		cmd.Printf("Hit:%d %s %s\n", i+1, app.cfg.Registry.BaseURL, loader)
	}

	cmd.Println("Reading package lists... Done")
	cmd.Println("All loader indexes reachable.")
	return nil
}
