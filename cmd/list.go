package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftpkg/craftpkg/internal/inventory"
	"github.com/craftpkg/craftpkg/internal/ops"
	"github.com/craftpkg/craftpkg/internal/render"
	"github.com/craftpkg/craftpkg/pkg/logger"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed plugins",
	Long: `Enumerate the plugin directory and resolve each artifact against the registry
by content hash. Artifacts the registry does not know are listed as unresolved.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	if err := ops.Register("list", ops.GroupPackage, listCmd, "List installed plugins"); err != nil {
		panic(fmt.Sprintf("failed to register list command: %v", err))
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	app, err := newAppFn(cmd)
	if err != nil {
		return err
	}

	result, err := inventory.Scan(app.cfg.Plugins.Dir)
	if err != nil {
		return err
	}
	for _, skipped := range result.Skipped {
		logger.Warn("skipped unreadable artifact", logger.String("filename", skipped.Filename), logger.Err(skipped.Err))
	}
	if len(result.Artifacts) == 0 {
		cmd.Println("No plugins installed.")
		return nil
	}

	hashes := make([]string, 0, len(result.Artifacts))
	seen := make(map[string]struct{})
	for _, a := range result.Artifacts {
		if _, dup := seen[a.Hash]; dup {
			continue
		}
		seen[a.Hash] = struct{}{}
		hashes = append(hashes, a.Hash)
	}

	matches, err := app.client.GetVersionsByHash(cmd.Context(), hashes)
	if err != nil {
		return fmt.Errorf("failed to resolve installed plugins: %w", err)
	}

	rows := make([][]string, 0, len(result.Artifacts))
	for _, a := range result.Artifacts {
		version, ok := matches[a.Hash]
		if !ok {
			rows = append(rows, []string{a.Filename, "-", "unresolved"})
			continue
		}
		rows = append(rows, []string{a.Filename, version.VersionNumber, version.Name})
	}
	render.Table(cmd.OutOrStdout(), []string{"Artifact", "Version", "Release"}, rows)
	return nil
}
