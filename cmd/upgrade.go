package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/craftpkg/craftpkg/internal/engine"
	"github.com/craftpkg/craftpkg/internal/inventory"
	"github.com/craftpkg/craftpkg/internal/ops"
	"github.com/craftpkg/craftpkg/internal/render"
	"github.com/craftpkg/craftpkg/pkg/logger"
)

// upgradeCmd represents the upgrade command
var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade installed plugins to their latest versions",
	Long: `Match every installed artifact to its registry release by content hash, then
replace each one that has a newer compatible release. One plugin's failure
never blocks the others.`,
	Args: cobra.NoArgs,
	RunE: runUpgrade,
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
	if err := ops.Register("upgrade", ops.GroupPackage, upgradeCmd, "Upgrade installed plugins"); err != nil {
		panic(fmt.Sprintf("failed to register upgrade command: %v", err))
	}
	upgradeCmd.Flags().BoolP("yes", "y", false, "Apply upgrades without confirmation")
}

func runUpgrade(cmd *cobra.Command, _ []string) error {
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

	actions, err := app.planner.Plan(cmd.Context(), result.Artifacts)
	if err != nil {
		return err
	}

	var upgrades []engine.Action
	for _, action := range actions {
		switch action.Kind {
		case engine.KindUpgrade:
			upgrades = append(upgrades, action)
		case engine.KindUnresolved:
			if action.Err != nil {
				cmd.Printf("E: Cannot check %s: %v\n", action.Filename, action.Err)
			} else {
				cmd.Printf("Skipping %s (not known to the registry)\n", action.Filename)
			}
		}
	}

	if len(upgrades) == 0 {
		cmd.Println("All plugins are up to date.")
		return nil
	}

	rows := make([][]string, 0, len(upgrades))
	for _, u := range upgrades {
		rows = append(rows, []string{u.Filename, u.CurrentVersion, u.NewVersion})
	}
	cmd.Println("The following packages will be upgraded:")
	render.Table(cmd.OutOrStdout(), []string{"Artifact", "Installed", "Available"}, rows)

	assumeYes, _ := cmd.Flags().GetBool("yes")
	if !assumeYes && !confirm(cmd) {
		cmd.Println("Abort.")
		return nil
	}

	results := engine.Apply(cmd.Context(), app.cfg.Plugins.Dir, actions, app.transfers)
	app.bar.Finish()

	failed := 0
	for _, r := range results {
		if r.Action.Kind != engine.KindUpgrade {
			continue
		}
		if r.Err != nil {
			cmd.Printf("E: Failed to upgrade %s: %v\n", r.Action.Filename, r.Err)
			failed++
			continue
		}
		cmd.Printf("Upgraded %s (%s -> %s)\n", r.Action.Filename, r.Action.CurrentVersion, r.Action.NewVersion)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d upgrades failed", failed, len(upgrades))
	}
	return nil
}

func confirm(cmd *cobra.Command) bool {
	cmd.Print("Do you want to continue? [Y/n] ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes"
}
