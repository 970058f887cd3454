package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/mealwiz/internal/clock"
	"github.com/danieljhkim/mealwiz/internal/kv"
	"github.com/danieljhkim/mealwiz/internal/session"
)

const testPlanID = "0b9a3c1e-5d2f-4e8a-9f61-7c3d2e1b0a99"

var testNow = time.Date(2024, 5, 6, 18, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *session.Store, *kv.MemoryStorage) {
	t.Helper()
	mem := kv.NewMemoryStorage(0)
	store := session.New(mem)
	eng := New(store,
		WithClock(clock.Fixed(testNow)),
		WithIDGenerator(func() string { return testPlanID }),
	)
	return eng, store, mem
}

func TestLookupStep(t *testing.T) {
	info, err := LookupStep(StepAllergens)
	require.NoError(t, err)
	assert.Equal(t, "allergens", info.Name)
	assert.Contains(t, info.Slots, session.SlotStep3Loaded)

	_, err = LookupStep(0)
	assert.ErrorIs(t, err, ErrUnknownStep)
	_, err = LookupStep(LastStep + 1)
	assert.ErrorIs(t, err, ErrUnknownStep)

	assert.Len(t, Steps(), LastStep)
}

func TestStart(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh session starts at step 1", func(t *testing.T) {
		eng, store, _ := newTestEngine(t)

		res, err := eng.Start(ctx)
		require.NoError(t, err)
		assert.Equal(t, &StartResult{Step: 1, Resumed: false}, res)
		assert.Equal(t, session.PhaseInProgress, store.Phase())
	})

	t.Run("stored step is kept", func(t *testing.T) {
		eng, store, _ := newTestEngine(t)
		require.NoError(t, store.SetStep(4))

		res, err := eng.Start(ctx)
		require.NoError(t, err)
		assert.Equal(t, &StartResult{Step: 4, Resumed: true}, res)
	})

	t.Run("out of range stored step resumes at first unfinished step", func(t *testing.T) {
		for _, stored := range []int{0, LastStep + 3} {
			eng, store, _ := newTestEngine(t)
			require.NoError(t, store.SetCompletedSteps(session.NewStepSet(1, 2)))
			require.NoError(t, store.SetStep(stored))

			res, err := eng.Start(ctx)
			require.NoError(t, err)
			assert.Equal(t, &StartResult{Step: 3, Resumed: true}, res)
			step, _ := store.Step()
			assert.Equal(t, 3, step)
		}
	})

	t.Run("resumes at first unfinished step", func(t *testing.T) {
		eng, store, _ := newTestEngine(t)
		require.NoError(t, store.SetCompletedSteps(session.NewStepSet(1, 2)))

		res, err := eng.Start(ctx)
		require.NoError(t, err)
		assert.Equal(t, &StartResult{Step: 3, Resumed: true}, res)
		step, _ := store.Step()
		assert.Equal(t, 3, step)
	})
}

func TestCompleteStep(t *testing.T) {
	ctx := context.Background()
	eng, store, _ := newTestEngine(t)

	res, err := eng.CompleteStep(ctx, &CompleteStepRequest{Step: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Step)
	assert.Equal(t, session.NewStepSet(1), res.CompletedSteps)

	// Steps may be finished out of order and more than once.
	_, err = eng.CompleteStep(ctx, &CompleteStepRequest{Step: 3})
	require.NoError(t, err)
	res, err = eng.CompleteStep(ctx, &CompleteStepRequest{Step: 1})
	require.NoError(t, err)
	assert.Equal(t, session.NewStepSet(1, 3), res.CompletedSteps)

	res, err = eng.CompleteStep(ctx, &CompleteStepRequest{Step: LastStep})
	require.NoError(t, err)
	assert.Equal(t, LastStep, res.Step, "step is capped at the last step")

	completed, ok := store.CompletedSteps()
	require.True(t, ok)
	assert.Equal(t, session.NewStepSet(1, 3, 6), completed)

	_, err = eng.CompleteStep(ctx, &CompleteStepRequest{Step: 9})
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestGoTo(t *testing.T) {
	ctx := context.Background()
	eng, store, _ := newTestEngine(t)
	require.NoError(t, store.SetCompletedSteps(session.NewStepSet(1)))

	res, err := eng.GoTo(ctx, &GoToRequest{Step: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Step)
	assert.Equal(t, session.NewStepSet(1), res.CompletedSteps)

	_, err = eng.GoTo(ctx, &GoToRequest{Step: -1})
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestLoadStep3(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds once", func(t *testing.T) {
		eng, store, _ := newTestEngine(t)

		res, err := eng.LoadStep3(ctx, &LoadStep3Request{
			DefaultAllergens: []string{"sesame"},
			ExtraExcluded:    []string{"cilantro"},
		})
		require.NoError(t, err)
		assert.True(t, res.Loaded)
		assert.Equal(t, []string{"sesame"}, res.Allergens)
		assert.Equal(t, []string{"sesame-seed", "tahini", "sesame-oil", "cilantro"}, res.ExcludedIngredients)

		loaded, ok := store.Step3Loaded()
		require.True(t, ok)
		assert.True(t, loaded)

		// User edits survive a second load.
		require.NoError(t, store.SetAllergens([]string{"eggs"}))
		res, err = eng.LoadStep3(ctx, &LoadStep3Request{DefaultAllergens: []string{"sesame"}})
		require.NoError(t, err)
		assert.False(t, res.Loaded)
		allergens, _ := store.Allergens()
		assert.Equal(t, []string{"eggs"}, allergens)
	})

	t.Run("keeps stored selections", func(t *testing.T) {
		eng, store, _ := newTestEngine(t)
		require.NoError(t, store.SetAllergens([]string{"milk"}))
		require.NoError(t, store.SetAllExcludedIngredients([]string{"ghee"}))
		require.NoError(t, store.SetStep3Loaded(false))

		res, err := eng.LoadStep3(ctx, &LoadStep3Request{DefaultAllergens: []string{"soy"}})
		require.NoError(t, err)
		assert.True(t, res.Loaded)
		assert.Equal(t, []string{"milk"}, res.Allergens)
		assert.Equal(t, []string{"ghee"}, res.ExcludedIngredients)
	})
}

func TestExcludedIngredientsFor(t *testing.T) {
	got := ExcludedIngredientsFor([]string{"eggs", "unknown", "eggs"}, "egg", "okra")
	assert.Equal(t, []string{"egg", "mayonnaise", "okra"}, got)

	assert.Empty(t, ExcludedIngredientsFor(nil))
}

func TestFinalize(t *testing.T) {
	ctx := context.Background()

	t.Run("builds plan from selections", func(t *testing.T) {
		eng, store, _ := newTestEngine(t)
		require.NoError(t, store.SetClientID("client-3"))
		require.NoError(t, store.SetSelectedTags([]string{"vegan", "low-carb"}))
		require.NoError(t, store.SetAllergens([]string{"soy"}))
		require.NoError(t, store.SetFavoriteFoods([]string{"lentils"}))
		require.NoError(t, store.SetSelectedRecipes([]string{"recipe-1", "recipe-2"}))
		require.NoError(t, store.SetFoodPreferences(&session.FoodPreferences{DietType: session.DietVegan, MealsPerDay: 3}))
		require.NoError(t, store.SetCompletedSteps(session.NewStepSet(1, 2, 3, 4, 5)))

		res, err := eng.Finalize(ctx, &FinalizeRequest{})
		require.NoError(t, err)

		want := &session.Plan{
			ID:            testPlanID,
			Name:          "Meal plan 2024-05-06",
			ClientID:      "client-3",
			CreatedAt:     testNow,
			Days:          7,
			Tags:          []string{"vegan", "low-carb"},
			Allergens:     []string{"soy"},
			FavoriteFoods: []string{"lentils"},
			Recipes:       []string{"recipe-1", "recipe-2"},
			Preferences:   &session.FoodPreferences{DietType: session.DietVegan, MealsPerDay: 3},
		}
		assert.Equal(t, want, res.Plan)

		stored, ok := store.CreatedPlan()
		require.True(t, ok)
		assert.Equal(t, want, stored)
		assert.Equal(t, session.PhaseCompleted, store.Phase())

		completed, _ := store.CompletedSteps()
		assert.True(t, completed.Contains(StepReview))
		step, _ := store.Step()
		assert.Equal(t, StepReview, step)
	})

	t.Run("requires recipes", func(t *testing.T) {
		eng, _, _ := newTestEngine(t)

		_, err := eng.Finalize(ctx, &FinalizeRequest{})
		assert.ErrorIs(t, err, ErrNothingSelected)

		res, err := eng.Finalize(ctx, &FinalizeRequest{Name: "Empty week", Days: 5, AllowEmpty: true})
		require.NoError(t, err)
		assert.Equal(t, "Empty week", res.Plan.Name)
		assert.Equal(t, 5, res.Plan.Days)
	})

	t.Run("does not replace a plan without force", func(t *testing.T) {
		eng, _, _ := newTestEngine(t)
		_, err := eng.Finalize(ctx, &FinalizeRequest{AllowEmpty: true})
		require.NoError(t, err)

		_, err = eng.Finalize(ctx, &FinalizeRequest{AllowEmpty: true})
		assert.ErrorIs(t, err, ErrCompletedSession)

		res, err := eng.Finalize(ctx, &FinalizeRequest{Name: "Redo", AllowEmpty: true, Force: true})
		require.NoError(t, err)
		assert.Equal(t, "Redo", res.Plan.Name)
	})

	t.Run("invalid days are rejected before writing", func(t *testing.T) {
		eng, store, _ := newTestEngine(t)
		_, err := eng.Finalize(ctx, &FinalizeRequest{Days: 90, AllowEmpty: true})
		assert.ErrorIs(t, err, session.ErrInvalidValue)
		assert.Equal(t, session.PhaseUninitialized, store.Phase())
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		eng, _, mem := newTestEngine(t)
		mem.Disable()
		_, err := eng.Finalize(ctx, &FinalizeRequest{AllowEmpty: true})
		assert.ErrorIs(t, err, session.ErrStorageUnavailable)
	})

	t.Run("failed plan write leaves session in progress", func(t *testing.T) {
		mem := kv.NewMemoryStorage(0)
		store := session.New(&failingStorage{MemoryStorage: mem, key: session.SlotCreatedPlan.Key()})
		eng := New(store,
			WithClock(clock.Fixed(testNow)),
			WithIDGenerator(func() string { return testPlanID }),
		)
		require.NoError(t, store.SetCompletedSteps(session.NewStepSet(1, 2, 3, 4, 5)))

		_, err := eng.Finalize(ctx, &FinalizeRequest{AllowEmpty: true})
		assert.ErrorIs(t, err, session.ErrStorageUnavailable)

		_, ok := store.CreatedPlan()
		assert.False(t, ok)
		assert.Equal(t, session.PhaseInProgress, store.Phase())
	})
}

// failingStorage rejects writes to a single key.
type failingStorage struct {
	*kv.MemoryStorage
	key string
}

func (s *failingStorage) SetItem(key, value string) error {
	if key == s.key {
		return kv.ErrDisabled
	}
	return s.MemoryStorage.SetItem(key, value)
}

func TestFinish(t *testing.T) {
	ctx := context.Background()
	eng, store, _ := newTestEngine(t)

	_, err := eng.Finish(ctx)
	assert.ErrorIs(t, err, ErrNotCompleted)

	require.NoError(t, store.SetSelectedRecipes([]string{"recipe-5"}))
	created, err := eng.Finalize(ctx, &FinalizeRequest{Name: "Week 1"})
	require.NoError(t, err)

	res, err := eng.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.Plan, res.Plan)
	assert.Equal(t, session.PhaseUninitialized, store.Phase())
	assert.Empty(t, store.SetSlots())
}

func TestAbandon(t *testing.T) {
	ctx := context.Background()

	t.Run("dry run keeps data", func(t *testing.T) {
		eng, store, _ := newTestEngine(t)
		require.NoError(t, store.SetStep(2))
		require.NoError(t, store.SetSelectedTags([]string{"vegan"}))

		res, err := eng.Abandon(ctx, &AbandonRequest{DryRun: true})
		require.NoError(t, err)
		assert.True(t, res.DryRun)
		assert.Equal(t, session.PhaseInProgress, res.PreviousPhase)
		assert.Equal(t, []session.Slot{session.SlotSelectedTags, session.SlotStep}, res.Cleared)
		assert.Equal(t, session.PhaseInProgress, store.Phase())
	})

	t.Run("clears in-progress session", func(t *testing.T) {
		eng, store, _ := newTestEngine(t)
		require.NoError(t, store.SetStep(2))

		_, err := eng.Abandon(ctx, &AbandonRequest{})
		require.NoError(t, err)
		assert.Equal(t, session.PhaseUninitialized, store.Phase())
	})

	t.Run("completed session needs force", func(t *testing.T) {
		eng, store, _ := newTestEngine(t)
		_, err := eng.Finalize(ctx, &FinalizeRequest{AllowEmpty: true})
		require.NoError(t, err)

		_, err = eng.Abandon(ctx, &AbandonRequest{})
		assert.ErrorIs(t, err, ErrCompletedSession)
		assert.Equal(t, session.PhaseCompleted, store.Phase())

		res, err := eng.Abandon(ctx, &AbandonRequest{Force: true})
		require.NoError(t, err)
		assert.Equal(t, session.PhaseCompleted, res.PreviousPhase)
		assert.Equal(t, session.PhaseUninitialized, store.Phase())
	})
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	res, err := eng.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseUninitialized, res.Phase)
	assert.Equal(t, 0, res.Step)
	assert.Equal(t, FirstStep, res.NextStep)
	assert.Len(t, res.Steps, LastStep)

	_, err = eng.CompleteStep(ctx, &CompleteStepRequest{Step: 1})
	require.NoError(t, err)

	res, err = eng.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseInProgress, res.Phase)
	assert.Equal(t, 2, res.Step)
	assert.Equal(t, 2, res.NextStep)
	assert.True(t, res.Steps[0].Completed)
	assert.True(t, res.Steps[1].Current)
	assert.Equal(t, []session.Slot{session.SlotCompletedSteps, session.SlotStep}, res.SetSlots)
}

func TestCanceledContext(t *testing.T) {
	eng, store, _ := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = eng.Abandon(ctx, &AbandonRequest{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, session.PhaseUninitialized, store.Phase())
}
