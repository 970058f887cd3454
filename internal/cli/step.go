package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mealwiz/internal/wizard"
)

var (
	stepLoadAllergens []string
	stepLoadExclude   []string
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Move through the wizard steps",
	Long: `Move through the wizard steps without the interactive prompts.

Steps:
  1  client       who the plan is for
  2  tags         dietary and preference tags
  3  allergens    allergens and excluded ingredients
  4  preferences  food preferences and favorite foods
  5  recipes      recipe selection
  6  review       review and create the plan`,
}

var stepStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Begin or resume the wizard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		result, err := eng.Start(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}
		info, _ := wizard.LookupStep(result.Step)
		if result.Resumed {
			PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Resumed at step %d: %s", info.Number, info.Title))
		} else {
			PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Started at step %d: %s", info.Number, info.Title))
		}
		return nil
	},
}

var stepCompleteCmd = &cobra.Command{
	Use:   "complete <step>",
	Short: "Mark a step finished and move to the next one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		step, err := parseStep(args[0])
		if err != nil {
			return err
		}

		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		result, err := eng.CompleteStep(cmd.Context(), &wizard.CompleteStepRequest{Step: step})
		if err != nil {
			return err
		}
		return printProgress(cmd, fmt.Sprintf("Completed step %d", step), result)
	},
}

var stepGotoCmd = &cobra.Command{
	Use:   "goto <step>",
	Short: "Jump to a step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		step, err := parseStep(args[0])
		if err != nil {
			return err
		}

		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		result, err := eng.GoTo(cmd.Context(), &wizard.GoToRequest{Step: step})
		if err != nil {
			return err
		}
		return printProgress(cmd, fmt.Sprintf("Moved to step %d", step), result)
	},
}

var stepLoadCmd = &cobra.Command{
	Use:   "load-allergens",
	Short: "Initialize step 3 data once per session",
	Long: `Seed the allergens step: default allergens are stored when none are set,
and excluded ingredients are derived from the allergens. Does nothing when the
step was already initialized in this session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		result, err := eng.LoadStep3(cmd.Context(), &wizard.LoadStep3Request{
			DefaultAllergens: stepLoadAllergens,
			ExtraExcluded:    stepLoadExclude,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}
		w := cmd.OutOrStdout()
		if !result.Loaded {
			PrintWarning(w, "Step 3 already initialized in this session")
			return nil
		}
		PrintSuccess(w, "Initialized step 3")
		PrintLabelValue(w, "Allergens", formatList(result.Allergens))
		PrintLabelValue(w, "Excluded", formatList(result.ExcludedIngredients))
		return nil
	},
}

func printProgress(cmd *cobra.Command, msg string, result *wizard.ProgressResult) error {
	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), result)
	}
	w := cmd.OutOrStdout()
	PrintSuccess(w, msg)
	info, _ := wizard.LookupStep(result.Step)
	PrintLabelValue(w, "Current step", fmt.Sprintf("%d (%s)", info.Number, info.Title))
	done := make([]string, 0, len(result.CompletedSteps))
	for _, n := range result.CompletedSteps {
		done = append(done, fmt.Sprintf("%d", n))
	}
	PrintLabelValue(w, "Completed", formatList(done))
	return nil
}

func init() {
	stepLoadCmd.Flags().StringSliceVar(&stepLoadAllergens, "allergen", nil, "Allergen to store when none are set (repeatable)")
	stepLoadCmd.Flags().StringSliceVar(&stepLoadExclude, "exclude", nil, "Extra ingredient to exclude (repeatable)")

	stepCmd.AddCommand(stepStartCmd)
	stepCmd.AddCommand(stepCompleteCmd)
	stepCmd.AddCommand(stepGotoCmd)
	stepCmd.AddCommand(stepLoadCmd)
}
