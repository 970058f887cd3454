package integration

import (
	"context"
	"reflect"
	"testing"

	"github.com/danieljhkim/mealwiz/internal/session"
	"github.com/danieljhkim/mealwiz/internal/wizard"
)

func TestSession_StepAndTags(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			_, store := setupTestEngine(b.open(t))

			if err := store.SetStep(1); err != nil {
				t.Fatalf("SetStep() error = %v", err)
			}
			if err := store.SetSelectedTags([]string{"vegan", "low-carb"}); err != nil {
				t.Fatalf("SetSelectedTags() error = %v", err)
			}

			if step, ok := store.Step(); !ok || step != 1 {
				t.Errorf("Step() = %d, %v; want 1, true", step, ok)
			}
			tags, ok := store.SelectedTags()
			if !ok || !reflect.DeepEqual(tags, []string{"vegan", "low-carb"}) {
				t.Errorf("SelectedTags() = %v, %v", tags, ok)
			}

			if err := store.ClearAll(); err != nil {
				t.Fatalf("ClearAll() error = %v", err)
			}
			if _, ok := store.Step(); ok {
				t.Error("step should be absent after ClearAll")
			}
			if _, ok := store.SelectedTags(); ok {
				t.Error("selectedTags should be absent after ClearAll")
			}
		})
	}
}

func TestWizard_FullCycleAcrossRestart(t *testing.T) {
	ctx := context.Background()

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			eng, store := setupTestEngine(b.open(t))

			if _, err := eng.Start(ctx); err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			if err := store.SetClientID("client-42"); err != nil {
				t.Fatalf("SetClientID() error = %v", err)
			}
			complete(t, eng, wizard.StepClient)

			if err := store.SetSelectedTags([]string{"vegetarian"}); err != nil {
				t.Fatalf("SetSelectedTags() error = %v", err)
			}
			complete(t, eng, wizard.StepTags)

			if _, err := eng.LoadStep3(ctx, &wizard.LoadStep3Request{DefaultAllergens: []string{"peanuts"}}); err != nil {
				t.Fatalf("LoadStep3() error = %v", err)
			}

			// Restart before finishing step 3.
			eng, store = setupTestEngine(b.open(t))

			start, err := eng.Start(ctx)
			if err != nil {
				t.Fatalf("Start() after restart error = %v", err)
			}
			if !start.Resumed || start.Step != wizard.StepAllergens {
				t.Fatalf("Start() after restart = %+v, want resumed at step 3", start)
			}
			res, err := eng.LoadStep3(ctx, &wizard.LoadStep3Request{DefaultAllergens: []string{"milk"}})
			if err != nil {
				t.Fatalf("LoadStep3() error = %v", err)
			}
			if res.Loaded {
				t.Error("step 3 should not be initialized twice in one session")
			}
			complete(t, eng, wizard.StepAllergens)

			prefs := &session.FoodPreferences{
				DietType:    session.DietVegetarian,
				Goal:        session.GoalImproveHealth,
				MealsPerDay: 3,
			}
			if err := store.SetFoodPreferences(prefs); err != nil {
				t.Fatalf("SetFoodPreferences() error = %v", err)
			}
			complete(t, eng, wizard.StepPreferences)

			if err := store.SetSelectedRecipes([]string{"recipe-1", "recipe-2"}); err != nil {
				t.Fatalf("SetSelectedRecipes() error = %v", err)
			}
			complete(t, eng, wizard.StepRecipes)

			created, err := eng.Finalize(ctx, &wizard.FinalizeRequest{Name: "January", Days: 7})
			if err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}

			// A new process sees an equivalent plan.
			eng, store = setupTestEngine(b.open(t))
			if store.Phase() != session.PhaseCompleted {
				t.Errorf("Phase() = %s, want completed", store.Phase())
			}
			stored, ok := store.CreatedPlan()
			if !ok {
				t.Fatal("createdPlan should be set")
			}
			if !reflect.DeepEqual(stored, created.Plan) {
				t.Errorf("stored plan = %+v\nwant %+v", stored, created.Plan)
			}
			if stored.ClientID != "client-42" || !reflect.DeepEqual(stored.Allergens, []string{"peanuts"}) {
				t.Errorf("plan carries wrong selections: %+v", stored)
			}

			finished, err := eng.Finish(ctx)
			if err != nil {
				t.Fatalf("Finish() error = %v", err)
			}
			if finished.Plan.ID != testPlanID {
				t.Errorf("Finish() plan id = %s, want %s", finished.Plan.ID, testPlanID)
			}
			if store.Phase() != session.PhaseUninitialized {
				t.Errorf("Phase() after Finish = %s, want uninitialized", store.Phase())
			}
			if slots := store.SetSlots(); len(slots) != 0 {
				t.Errorf("slots left after Finish: %v", slots)
			}
		})
	}
}

func complete(t *testing.T, eng *wizard.Engine, step int) {
	t.Helper()
	if _, err := eng.CompleteStep(context.Background(), &wizard.CompleteStepRequest{Step: step}); err != nil {
		t.Fatalf("CompleteStep(%d) error = %v", step, err)
	}
}
