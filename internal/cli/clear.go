package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mealwiz/internal/session"
	"github.com/danieljhkim/mealwiz/internal/wizard"
)

var (
	clearForce  bool
	clearDryRun bool
)

// clearCmd removes every slot of the session.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the current session",
	Long: `Remove every wizard slot of the current profile.

Keys that do not belong to the wizard are left alone. A session holding a
created plan is only discarded with --force; use 'mealwiz finish' to collect
the plan instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		result, err := eng.Abandon(cmd.Context(), &wizard.AbandonRequest{
			Force:  clearForce,
			DryRun: clearDryRun,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}

		w := cmd.OutOrStdout()
		names := make([]string, len(result.Cleared))
		for i, slot := range result.Cleared {
			names[i] = slot.String()
		}

		if clearDryRun {
			PrintSection(w, "Dry Run: Clear Session")
			PrintLabelValue(w, "Phase", string(result.PreviousPhase))
			if len(names) == 0 {
				PrintEmptyState(w, "No slots set")
			} else {
				PrintInfo(w, fmt.Sprintf("Would clear %s:", PrintCount(len(names), "slot", "slots")))
				PrintList(w, names, 1)
			}
			if result.PreviousPhase == session.PhaseCompleted {
				PrintWarning(w, "Session holds a created plan; --force is required")
			}
			_, _ = fmt.Fprintln(w)
			PrintWarning(w, "Run without --dry-run to clear")
			return nil
		}

		PrintSection(w, "Clear Session")
		PrintSuccess(w, fmt.Sprintf("Cleared %s", PrintCount(len(names), "slot", "slots")))
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "Discard the session even if it holds a created plan")
	clearCmd.Flags().BoolVar(&clearDryRun, "dry-run", false, "Show what would be cleared without clearing")
}
