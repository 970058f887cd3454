package wizard

import (
	"context"
	"fmt"

	"github.com/danieljhkim/mealwiz/internal/session"
)

// Start puts a fresh session on step 1. A session already in progress keeps
// its step, or resumes at the first unfinished step when none is stored or
// the stored step is outside the wizard.
func (e *Engine) Start(ctx context.Context) (*StartResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if step, ok := e.store.Step(); ok {
		if _, err := LookupStep(step); err == nil {
			return &StartResult{Step: step, Resumed: true}, nil
		}
	}

	resumed := e.store.Phase() != session.PhaseUninitialized
	step := FirstStep
	if resumed {
		completed, _ := e.store.CompletedSteps()
		if next := nextIncomplete(completed); next != 0 {
			step = next
		} else {
			step = LastStep
		}
	}
	if err := e.store.SetStep(step); err != nil {
		return nil, fmt.Errorf("failed to set step: %w", err)
	}
	return &StartResult{Step: step, Resumed: resumed}, nil
}

// CompleteStep records req.Step as finished and moves to the following step.
func (e *Engine) CompleteStep(ctx context.Context, req *CompleteStepRequest) (*ProgressResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := LookupStep(req.Step); err != nil {
		return nil, err
	}

	completed, _ := e.store.CompletedSteps()
	completed = completed.Add(req.Step)
	if err := e.store.SetCompletedSteps(completed); err != nil {
		return nil, fmt.Errorf("failed to record completed step: %w", err)
	}

	next := min(req.Step+1, LastStep)
	if err := e.store.SetStep(next); err != nil {
		return nil, fmt.Errorf("failed to set step: %w", err)
	}
	return &ProgressResult{Step: next, CompletedSteps: completed}, nil
}

// GoTo sets the current step without touching the completed set.
func (e *Engine) GoTo(ctx context.Context, req *GoToRequest) (*ProgressResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := LookupStep(req.Step); err != nil {
		return nil, err
	}
	if err := e.store.SetStep(req.Step); err != nil {
		return nil, fmt.Errorf("failed to set step: %w", err)
	}
	completed, _ := e.store.CompletedSteps()
	return &ProgressResult{Step: req.Step, CompletedSteps: completed}, nil
}

// LoadStep3 initializes the allergens step once per session: stored
// allergens default to req.DefaultAllergens, and excluded ingredients are
// derived from the allergens when none are stored.
func (e *Engine) LoadStep3(ctx context.Context, req *LoadStep3Request) (*LoadStep3Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if loaded, ok := e.store.Step3Loaded(); ok && loaded {
		return &LoadStep3Result{Loaded: false}, nil
	}

	allergens, ok := e.store.Allergens()
	if !ok {
		allergens = append([]string{}, req.DefaultAllergens...)
		if err := e.store.SetAllergens(allergens); err != nil {
			return nil, fmt.Errorf("failed to seed allergens: %w", err)
		}
	}

	excluded, ok := e.store.AllExcludedIngredients()
	if !ok {
		excluded = ExcludedIngredientsFor(allergens, req.ExtraExcluded...)
		if err := e.store.SetAllExcludedIngredients(excluded); err != nil {
			return nil, fmt.Errorf("failed to seed excluded ingredients: %w", err)
		}
	}

	if err := e.store.SetStep3Loaded(true); err != nil {
		return nil, fmt.Errorf("failed to mark step 3 loaded: %w", err)
	}
	return &LoadStep3Result{
		Loaded:              true,
		Allergens:           allergens,
		ExcludedIngredients: excluded,
	}, nil
}

// nextIncomplete returns the first step not in completed, or 0.
func nextIncomplete(completed session.StepSet) int {
	for _, info := range steps {
		if !completed.Contains(info.Number) {
			return info.Number
		}
	}
	return 0
}
