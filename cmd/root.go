package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/craftpkg/craftpkg/internal/engine"
	"github.com/craftpkg/craftpkg/internal/inventory"
	"github.com/craftpkg/craftpkg/internal/ops"
	"github.com/craftpkg/craftpkg/internal/transfer"
	"github.com/craftpkg/craftpkg/pkg/buildinfo"
	"github.com/craftpkg/craftpkg/pkg/exitcode"
	"github.com/craftpkg/craftpkg/pkg/logger"
	"github.com/craftpkg/craftpkg/pkg/registry"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "craftpkg",
		Short: "Package manager for Minecraft server plugins",
		Long: `Craftpkg installs, lists, upgrades, and removes server plugins from the
Modrinth registry, identifying installed plugins by content hash.

Examples:
   craftpkg search worldedit   # Find plugins in the registry
   craftpkg install essentialsx worldedit
   craftpkg list               # Show installed plugins and versions
   craftpkg upgrade            # Upgrade everything to the latest release
   craftpkg remove worldedit`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("craftpkg {{.Version}}\n")

	// Grouped help: package operations first, support commands after.
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		reg := ops.GetRegistry()
		cmd.Println(cmd.Long)
		cmd.Println()
		cmd.Println("Package Commands:")
		for _, c := range reg.ByGroup(ops.GroupPackage) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Support Commands:")
		for _, c := range reg.ByGroup(ops.GroupSupport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Flags:")
		cmd.Print(cmd.UsageString())
	})

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// usageError marks an argument-shape problem detected before any work ran.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// exitCodeFor maps an error chain to the process exit code.
func exitCodeFor(err error) int {
	var (
		usage     *usageError
		ambiguous *transfer.AmbiguousError
		notFound  *transfer.NotFoundError
		transferE *transfer.TransferError
		bulk      *engine.BulkLookupError
		status    *registry.StatusError
		ioErr     *inventory.IOError
	)
	switch {
	case errors.As(err, &usage):
		return exitcode.InputError
	case errors.As(err, &ambiguous):
		return exitcode.Ambiguous
	case errors.As(err, &notFound), errors.Is(err, registry.ErrNotFound):
		return exitcode.NotFound
	case errors.As(err, &transferE):
		return exitcode.TransferError
	case errors.As(err, &bulk), errors.As(err, &status):
		return exitcode.NetworkError
	case errors.As(err, &ioErr):
		return exitcode.IOError
	default:
		return exitcode.GeneralError
	}
}

// Execute runs the root command and exits the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", logger.Err(err))
		os.Exit(exitCodeFor(err))
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logger.Initialize(logger.Config{
		Level:    logger.ParseLevel(logLevelStr),
		UseColor: !noColor,
		JSON:     jsonLogs,
	})
}
