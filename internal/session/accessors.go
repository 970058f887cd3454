package session

// load returns slot's decoded value as T.
func load[T any](s *Store, slot Slot) (T, bool) {
	var zero T
	v, ok := s.Value(slot)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// CompletedSteps returns the steps the user has finished.
func (s *Store) CompletedSteps() (StepSet, bool) {
	return load[StepSet](s, SlotCompletedSteps)
}

// SetCompletedSteps replaces the completed step set.
func (s *Store) SetCompletedSteps(steps StepSet) error {
	return s.Set(SlotCompletedSteps, NewStepSet(steps...))
}

func (s *Store) SelectedTags() ([]string, bool) {
	return load[[]string](s, SlotSelectedTags)
}

func (s *Store) SetSelectedTags(tags []string) error {
	return s.Set(SlotSelectedTags, nonNil(tags))
}

func (s *Store) Allergens() ([]string, bool) {
	return load[[]string](s, SlotAllergens)
}

func (s *Store) SetAllergens(allergens []string) error {
	return s.Set(SlotAllergens, nonNil(allergens))
}

func (s *Store) AllergensDescription() (string, bool) {
	return load[string](s, SlotAllergensDescription)
}

func (s *Store) SetAllergensDescription(text string) error {
	return s.Set(SlotAllergensDescription, text)
}

func (s *Store) AllExcludedIngredients() ([]string, bool) {
	return load[[]string](s, SlotAllExcludedIngredients)
}

func (s *Store) SetAllExcludedIngredients(ingredients []string) error {
	return s.Set(SlotAllExcludedIngredients, nonNil(ingredients))
}

// ClientID returns the client the plan is being built for, if any.
func (s *Store) ClientID() (string, bool) {
	return load[string](s, SlotClientID)
}

func (s *Store) SetClientID(id string) error {
	return s.Set(SlotClientID, id)
}

// ClearClientID records that the plan is for no particular client. The slot
// reads as absent afterwards.
func (s *Store) ClearClientID() error {
	return s.Set(SlotClientID, nil)
}

// FoodPreferences returns a copy of the stored preferences record.
func (s *Store) FoodPreferences() (*FoodPreferences, bool) {
	v, ok := load[FoodPreferences](s, SlotFoodPreferences)
	if !ok {
		return nil, false
	}
	return &v, true
}

func (s *Store) SetFoodPreferences(prefs *FoodPreferences) error {
	if prefs == nil {
		return s.Set(SlotFoodPreferences, nil)
	}
	return s.Set(SlotFoodPreferences, prefs)
}

func (s *Store) FavoriteFoods() ([]string, bool) {
	return load[[]string](s, SlotFavoriteFoods)
}

func (s *Store) SetFavoriteFoods(foods []string) error {
	return s.Set(SlotFavoriteFoods, nonNil(foods))
}

func (s *Store) SelectedRecipes() ([]string, bool) {
	return load[[]string](s, SlotSelectedRecipes)
}

func (s *Store) SetSelectedRecipes(recipes []string) error {
	return s.Set(SlotSelectedRecipes, nonNil(recipes))
}

// CreatedPlan returns a copy of the finalized plan.
func (s *Store) CreatedPlan() (*Plan, bool) {
	v, ok := load[Plan](s, SlotCreatedPlan)
	if !ok {
		return nil, false
	}
	return &v, true
}

func (s *Store) SetCreatedPlan(plan *Plan) error {
	if plan == nil {
		return s.Set(SlotCreatedPlan, nil)
	}
	return s.Set(SlotCreatedPlan, plan)
}

// Step returns the current step index.
func (s *Store) Step() (int, bool) {
	return load[int](s, SlotStep)
}

func (s *Store) SetStep(step int) error {
	return s.Set(SlotStep, step)
}

func (s *Store) Step3Loaded() (bool, bool) {
	return load[bool](s, SlotStep3Loaded)
}

func (s *Store) SetStep3Loaded(loaded bool) error {
	return s.Set(SlotStep3Loaded, loaded)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
