package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/mealwiz/internal/wizard/prompt"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the wizard interactively",
	Long: `Walk through the wizard steps with interactive prompts.

Answers are saved after every step, so quitting part way keeps your progress
and the next run picks up at the same step.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		plan, err := prompt.Run(cmd.Context(), eng)
		w := cmd.OutOrStdout()
		switch {
		case errors.Is(err, huh.ErrUserAborted):
			PrintWarning(w, "Wizard interrupted; your progress is saved")
			return nil
		case errors.Is(err, prompt.ErrDeclined):
			PrintWarning(w, "Plan not created; run again to review your answers")
			return nil
		case err != nil:
			return err
		}

		if jsonOutput {
			return outputJSON(w, plan)
		}
		PrintSection(w, plan.Name)
		printPlan(cmd, plan)
		PrintInfo(w, "\nRun 'mealwiz finish' to hand over the plan and close the session.")
		return nil
	},
}
