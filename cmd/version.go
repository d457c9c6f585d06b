package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/craftpkg/craftpkg/internal/ops"
	"github.com/craftpkg/craftpkg/pkg/buildinfo"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show craftpkg version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	if err := ops.Register("version", ops.GroupSupport, versionCmd, "Show craftpkg version"); err != nil {
		panic(fmt.Sprintf("failed to register version command: %v", err))
	}
	versionCmd.Flags().Bool("extended", false, "Show module and runtime details")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	cmd.Printf("craftpkg %s\n", buildinfo.BinaryVersion)

	extended, _ := cmd.Flags().GetBool("extended")
	if extended {
		if mv := buildinfo.ModuleVersion(); mv != "" {
			cmd.Printf("module:  %s\n", mv)
		}
		cmd.Printf("go:      %s\n", runtime.Version())
		cmd.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
	return nil
}
