package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftpkg/craftpkg/internal/ops"
	"github.com/craftpkg/craftpkg/pkg/logger"
	"github.com/craftpkg/craftpkg/pkg/registry"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install <package>...",
	Short: "Install plugins from the registry",
	Long: `Resolve each package by ID or slug and install the latest release compatible
with the configured loaders. Packages that cannot be resolved are reported and
skipped; the rest still install.`,
	Args: cobra.ArbitraryArgs,
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
	if err := ops.Register("install", ops.GroupPackage, installCmd, "Install plugins from the registry"); err != nil {
		panic(fmt.Sprintf("failed to register install command: %v", err))
	}
}

func runInstall(cmd *cobra.Command, args []string) error {
	// Argument shape is checked before any collaborator is built so an empty
	// invocation never touches the network.
	if len(args) == 0 {
		return &usageError{msg: "no packages specified"}
	}

	app, err := newAppFn(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var toInstall []*registry.Project
	failed := 0
	for _, pkg := range args {
		project, err := app.client.GetProject(ctx, pkg)
		if err != nil {
			if errors.Is(err, registry.ErrNotFound) {
				cmd.Printf("E: Unable to locate package %s\n", pkg)
			} else {
				cmd.Printf("E: Failed to resolve %s: %v\n", pkg, err)
			}
			failed++
			continue
		}
		toInstall = append(toInstall, project)
	}

	if len(toInstall) > 0 {
		cmd.Println("The following NEW packages will be installed:")
		for _, project := range toInstall {
			cmd.Printf("  %s\n", project.Slug)
		}
		cmd.Printf("0 upgraded, %d newly installed, 0 to remove.\n", len(toInstall))
	}

	for _, project := range toInstall {
		if err := installLatest(cmd, app, project); err != nil {
			cmd.Printf("E: Failed to install %s: %v\n", project.Slug, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d packages failed", failed, len(args))
	}
	return nil
}

func installLatest(cmd *cobra.Command, app *app, project *registry.Project) error {
	versions, err := app.client.GetVersions(cmd.Context(), project.ID, app.cfg.Plugins.Loaders)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		return fmt.Errorf("no compatible versions")
	}

	// Most-recent-first ordering makes the head the release to install.
	latest := versions[0]
	file, ok := latest.PrimaryFile()
	if !ok {
		return fmt.Errorf("version %s has no files", latest.VersionNumber)
	}

	logger.Info("installing package",
		logger.String("package", project.Slug),
		logger.String("version", latest.VersionNumber))

	err = app.transfers.Install(cmd.Context(), app.cfg.Plugins.Dir, file)
	app.bar.Finish()
	return err
}
