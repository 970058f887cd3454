package wizard

import (
	"context"
	"fmt"

	"github.com/danieljhkim/mealwiz/internal/session"
)

const defaultPlanDays = 7

// Finalize builds a Plan from the current selections, stores it in
// createdPlan and marks the review step complete.
func (e *Engine) Finalize(ctx context.Context, req *FinalizeRequest) (*PlanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, ok := e.store.CreatedPlan(); ok && !req.Force {
		return nil, fmt.Errorf("%w: use force to replace the existing plan", ErrCompletedSession)
	}

	snap := e.store.Snapshot()
	if len(snap.SelectedRecipes) == 0 && !req.AllowEmpty {
		return nil, ErrNothingSelected
	}

	now := e.clock.Now()
	plan := &session.Plan{
		ID:                  e.newID(),
		Name:                req.Name,
		CreatedAt:           now,
		Days:                req.Days,
		Tags:                snap.SelectedTags,
		Allergens:           snap.Allergens,
		ExcludedIngredients: snap.AllExcludedIngredients,
		FavoriteFoods:       snap.FavoriteFoods,
		Recipes:             snap.SelectedRecipes,
		Preferences:         snap.FoodPreferences,
	}
	if plan.Name == "" {
		plan.Name = fmt.Sprintf("Meal plan %s", now.Format("2006-01-02"))
	}
	if plan.Days == 0 {
		plan.Days = defaultPlanDays
	}
	if snap.ClientID != nil {
		plan.ClientID = *snap.ClientID
	}

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", session.ErrInvalidValue, session.SlotCreatedPlan, err)
	}

	// createdPlan is written last: its presence marks the session completed.
	completed := snap.CompletedSteps.Add(StepReview)
	if err := e.store.SetCompletedSteps(completed); err != nil {
		return nil, fmt.Errorf("failed to record completed step: %w", err)
	}
	if err := e.store.SetStep(StepReview); err != nil {
		return nil, fmt.Errorf("failed to set step: %w", err)
	}
	if err := e.store.SetCreatedPlan(plan); err != nil {
		return nil, fmt.Errorf("failed to store plan: %w", err)
	}

	return &PlanResult{Plan: plan}, nil
}

// Finish returns the created plan and clears the session.
func (e *Engine) Finish(ctx context.Context) (*PlanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan, ok := e.store.CreatedPlan()
	if !ok {
		return nil, ErrNotCompleted
	}
	if err := e.store.ClearAll(); err != nil {
		return nil, fmt.Errorf("failed to clear session: %w", err)
	}
	return &PlanResult{Plan: plan}, nil
}

// Abandon clears the session. A completed session is only discarded with
// req.Force so a finished plan is not lost by accident.
func (e *Engine) Abandon(ctx context.Context, req *AbandonRequest) (*AbandonResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &AbandonResult{
		PreviousPhase: e.store.Phase(),
		Cleared:       e.store.SetSlots(),
		DryRun:        req.DryRun,
	}
	if req.DryRun {
		return result, nil
	}
	if result.PreviousPhase == session.PhaseCompleted && !req.Force {
		return result, fmt.Errorf("%w: use force to discard the created plan", ErrCompletedSession)
	}
	if err := e.store.ClearAll(); err != nil {
		return nil, fmt.Errorf("failed to clear session: %w", err)
	}
	return result, nil
}
