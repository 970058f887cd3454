package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mealwiz/internal/session"
	"github.com/danieljhkim/mealwiz/internal/wizard"
)

var (
	finalizeName       string
	finalizeDays       int
	finalizeAllowEmpty bool
	finalizeForce      bool
)

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Create the plan from the current selections",
	Long: `Build the meal plan from the session's selections and store it.

The session stays in place until 'mealwiz finish' hands the plan over. An
existing plan is only replaced with --force.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		result, err := eng.Finalize(cmd.Context(), &wizard.FinalizeRequest{
			Name:       finalizeName,
			Days:       finalizeDays,
			AllowEmpty: finalizeAllowEmpty,
			Force:      finalizeForce,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}
		w := cmd.OutOrStdout()
		PrintSuccess(w, fmt.Sprintf("Created plan %q", result.Plan.Name))
		printPlan(cmd, result.Plan)
		PrintInfo(w, "\nRun 'mealwiz finish' to hand over the plan and close the session.")
		return nil
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Print the created plan and close the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		result, err := eng.Finish(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result.Plan)
		}
		PrintSection(cmd.OutOrStdout(), result.Plan.Name)
		printPlan(cmd, result.Plan)
		PrintSuccess(cmd.OutOrStdout(), "Session closed")
		return nil
	},
}

func printPlan(cmd *cobra.Command, plan *session.Plan) {
	w := cmd.OutOrStdout()
	PrintLabelValue(w, "ID", plan.ID)
	if plan.ClientID != "" {
		PrintLabelValue(w, "Client", plan.ClientID)
	}
	PrintLabelValue(w, "Created", plan.CreatedAt.Format("2006-01-02 15:04 MST"))
	PrintLabelValue(w, "Days", strconv.Itoa(plan.Days))
	PrintLabelValue(w, "Tags", formatList(plan.Tags))
	PrintLabelValue(w, "Allergens", formatList(plan.Allergens))
	PrintLabelValue(w, "Excluded", formatList(plan.ExcludedIngredients))
	if plan.Preferences != nil {
		if plan.Preferences.DietType != "" {
			PrintLabelValue(w, "Diet", plan.Preferences.DietType)
		}
		if plan.Preferences.Goal != "" {
			PrintLabelValue(w, "Goal", plan.Preferences.Goal)
		}
	}
	PrintLabelValue(w, "Recipes", PrintCount(len(plan.Recipes), "recipe", "recipes"))
	PrintList(w, plan.Recipes, 2)
}

func init() {
	finalizeCmd.Flags().StringVar(&finalizeName, "name", "", "Plan name (default \"Meal plan <date>\")")
	finalizeCmd.Flags().IntVar(&finalizeDays, "days", 0, "Number of days the plan covers (default 7)")
	finalizeCmd.Flags().BoolVar(&finalizeAllowEmpty, "allow-empty", false, "Create the plan even when no recipe is selected")
	finalizeCmd.Flags().BoolVarP(&finalizeForce, "force", "f", false, "Replace an existing plan")
}
