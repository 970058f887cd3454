// Package prompt runs the meal-plan wizard interactively in the terminal.
//
// Each wizard step is one charmbracelet/huh form group, pre-filled from the
// session and written back as soon as the group is submitted. Interrupting
// the run loses nothing already submitted: the next run resumes at the
// stored step.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/danieljhkim/mealwiz/internal/session"
	"github.com/danieljhkim/mealwiz/internal/wizard"
)

// ErrDeclined indicates the user chose not to create the plan on the review step.
var ErrDeclined = errors.New("plan creation declined")

// Run walks the user from the session's current step to the review step and
// returns the created plan.
func Run(ctx context.Context, eng *wizard.Engine) (*session.Plan, error) {
	store := eng.Store()

	if plan, ok := store.CreatedPlan(); ok {
		return plan, nil
	}

	start, err := eng.Start(ctx)
	if err != nil {
		return nil, err
	}

	step := start.Step
	for {
		info, err := wizard.LookupStep(step)
		if err != nil {
			return nil, err
		}

		if step == wizard.StepReview {
			return runReviewStep(ctx, eng)
		}

		if err := runStep(ctx, eng, step); err != nil {
			return nil, fmt.Errorf("%s: %w", info.Name, err)
		}

		progress, err := eng.CompleteStep(ctx, &wizard.CompleteStepRequest{Step: step})
		if err != nil {
			return nil, err
		}
		step = progress.Step
	}
}

func runStep(ctx context.Context, eng *wizard.Engine, step int) error {
	store := eng.Store()
	switch step {
	case wizard.StepClient:
		return runClientStep(ctx, store)
	case wizard.StepTags:
		return runTagsStep(ctx, store)
	case wizard.StepAllergens:
		if _, err := eng.LoadStep3(ctx, &wizard.LoadStep3Request{}); err != nil {
			return err
		}
		return runAllergensStep(ctx, store)
	case wizard.StepPreferences:
		return runPreferencesStep(ctx, store)
	case wizard.StepRecipes:
		return runRecipesStep(ctx, store)
	}
	return fmt.Errorf("%w: %d", wizard.ErrUnknownStep, step)
}

func runClientStep(ctx context.Context, store *session.Store) error {
	answers := loadClient(store)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Client ID (Optional)").
				Description("Who is this plan for? Leave empty for a personal plan.").
				Placeholder("client-42").
				Value(&answers.ClientID),
		).Title("Client"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}
	return answers.apply(store)
}

func runTagsStep(ctx context.Context, store *session.Store) error {
	answers := loadTags(store)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Dietary Tags").
				Description("Select all that apply").
				Options(TagOptions...).
				Value(&answers.Tags),
		).Title("Dietary tags"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}
	return answers.apply(store)
}

func runAllergensStep(ctx context.Context, store *session.Store) error {
	answers := loadAllergens(store)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Allergens").
				Description("Ingredients containing these are excluded automatically").
				Options(AllergenOptions...).
				Value(&answers.Allergens),
			huh.NewText().
				Title("Allergy Notes (Optional)").
				Value(&answers.Description),
			huh.NewInput().
				Title("Other Ingredients to Exclude").
				Description("Comma-separated").
				Placeholder("cilantro, okra").
				Value(&answers.Excluded),
		).Title("Allergens and exclusions"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}
	return answers.apply(store)
}

func runPreferencesStep(ctx context.Context, store *session.Store) error {
	answers := loadPreferences(store)

	validateInt := func(s string) error {
		_, err := parseOptionalInt(s)
		return err
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Diet").
				Options(DietTypeOptions...).
				Value(&answers.DietType),
			huh.NewSelect[string]().
				Title("Goal").
				Options(GoalOptions...).
				Value(&answers.Goal),
			huh.NewSelect[int]().
				Title("Meals per Day").
				Options(MealsPerDayOptions...).
				Value(&answers.MealsPerDay),
		).Title("Food preferences"),
		huh.NewGroup(
			huh.NewInput().
				Title("Daily Calories (Optional)").
				Description("Between 800 and 6000").
				Value(&answers.Calories).
				Validate(validateInt),
			huh.NewInput().
				Title("Max Cooking Time in Minutes (Optional)").
				Value(&answers.CookingTime).
				Validate(validateInt),
			huh.NewInput().
				Title("Favorite Cuisines").
				Description("Comma-separated").
				Value(&answers.Cuisines),
			huh.NewInput().
				Title("Dislikes").
				Description("Comma-separated").
				Value(&answers.Dislikes),
			huh.NewInput().
				Title("Favorite Foods").
				Description("Comma-separated").
				Value(&answers.Favorites),
			huh.NewText().
				Title("Notes (Optional)").
				Value(&answers.Notes),
		).Title("Tastes"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}
	return answers.apply(store)
}

func runRecipesStep(ctx context.Context, store *session.Store) error {
	answers := loadRecipes(store)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Recipes").
				Description("Comma-separated recipe IDs to include in the plan").
				Placeholder("recipe-12, recipe-40").
				Value(&answers.Recipes).
				Validate(func(s string) error {
					if len(parseList(s)) == 0 {
						return errNoRecipes
					}
					return nil
				}),
		).Title("Recipes"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}
	return answers.apply(store)
}

var errNoRecipes = errors.New("select at least one recipe")

func runReviewStep(ctx context.Context, eng *wizard.Engine) (*session.Plan, error) {
	var (
		name    string
		days    = 7
		confirm = true
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Your selections").
				Description(summarize(eng.Store().Snapshot())),
			huh.NewInput().
				Title("Plan Name (Optional)").
				Value(&name),
			huh.NewSelect[int]().
				Title("Plan Length").
				Options(PlanDaysOptions...).
				Value(&days),
			huh.NewConfirm().
				Title("Create this plan?").
				Affirmative("Create").
				Negative("Not yet").
				Value(&confirm),
		).Title("Review"),
	).RunWithContext(ctx)
	if err != nil {
		return nil, err
	}
	if !confirm {
		return nil, ErrDeclined
	}

	res, err := eng.Finalize(ctx, &wizard.FinalizeRequest{Name: name, Days: days})
	if err != nil {
		return nil, err
	}
	return res.Plan, nil
}
