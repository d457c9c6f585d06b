package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftpkg/craftpkg/internal/ops"
	"github.com/craftpkg/craftpkg/internal/transfer"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <package>",
	Short: "Remove an installed plugin",
	Long: `Delete the single installed artifact whose filename contains the given name,
case-insensitively. When several artifacts match, nothing is deleted and all
candidates are listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	if err := ops.Register("remove", ops.GroupPackage, removeCmd, "Remove an installed plugin"); err != nil {
		panic(fmt.Sprintf("failed to register remove command: %v", err))
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	app, err := newAppFn(cmd)
	if err != nil {
		return err
	}

	removed, err := app.transfers.Remove(app.cfg.Plugins.Dir, args[0])
	if err != nil {
		var ambiguous *transfer.AmbiguousError
		if errors.As(err, &ambiguous) {
			cmd.Printf("E: Multiple candidates found for %s. Be more specific:\n", args[0])
			for _, candidate := range ambiguous.Candidates {
				cmd.Printf("  %s\n", candidate)
			}
		}
		return err
	}

	cmd.Printf("Removing %s (%s)...\n", args[0], removed)
	return nil
}
