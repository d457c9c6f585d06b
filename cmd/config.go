package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftpkg/craftpkg/internal/ops"
	"github.com/craftpkg/craftpkg/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage craftpkg configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + config.FileName + " in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.WriteDefault(config.FileName); err != nil {
			return err
		}
		cmd.Printf("Wrote %s\n", config.FileName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	if err := ops.Register("config", ops.GroupSupport, configCmd, "Manage craftpkg configuration"); err != nil {
		panic(fmt.Sprintf("failed to register config command: %v", err))
	}
}
