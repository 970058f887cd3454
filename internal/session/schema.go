package session

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StepSet is a set of wizard step numbers, kept sorted and without duplicates.
type StepSet []int

// NewStepSet builds a normalized StepSet from steps.
func NewStepSet(steps ...int) StepSet {
	set := StepSet{}
	for _, s := range steps {
		set = set.Add(s)
	}
	return set
}

// Add returns the set with step included.
func (s StepSet) Add(step int) StepSet {
	i, found := slices.BinarySearch(s, step)
	if found {
		return s
	}
	return slices.Insert(slices.Clone(s), i, step)
}

// Contains reports whether step is in the set.
func (s StepSet) Contains(step int) bool {
	_, found := slices.BinarySearch(s, step)
	return found
}

// UnmarshalJSON accepts any array of integers and normalizes it.
func (s *StepSet) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewStepSet(raw...)
	return nil
}

func (s StepSet) validate() error {
	for _, step := range s {
		if step < 1 {
			return fmt.Errorf("step %d: steps start at 1", step)
		}
	}
	return nil
}

// Diet types accepted in FoodPreferences.DietType.
const (
	DietOmnivore    = "omnivore"
	DietVegetarian  = "vegetarian"
	DietVegan       = "vegan"
	DietPescatarian = "pescatarian"
	DietKeto        = "keto"
	DietPaleo       = "paleo"
)

// Goals accepted in FoodPreferences.Goal.
const (
	GoalLoseWeight    = "lose_weight"
	GoalMaintain      = "maintain"
	GoalGainWeight    = "gain_weight"
	GoalImproveHealth = "improve_health"
)

var (
	dietTypes = []string{DietOmnivore, DietVegetarian, DietVegan, DietPescatarian, DietKeto, DietPaleo}
	goals     = []string{GoalLoseWeight, GoalMaintain, GoalGainWeight, GoalImproveHealth}
)

// FoodPreferences holds the answers of the preferences step.
type FoodPreferences struct {
	DietType           string   `json:"dietType,omitempty" yaml:"dietType,omitempty"`
	Goal               string   `json:"goal,omitempty" yaml:"goal,omitempty"`
	MealsPerDay        int      `json:"mealsPerDay,omitempty" yaml:"mealsPerDay,omitempty"`
	DailyCalories      int      `json:"dailyCalories,omitempty" yaml:"dailyCalories,omitempty"`
	CookingTimeMinutes int      `json:"cookingTimeMinutes,omitempty" yaml:"cookingTimeMinutes,omitempty"`
	Cuisines           []string `json:"cuisines,omitempty" yaml:"cuisines,omitempty"`
	Dislikes           []string `json:"dislikes,omitempty" yaml:"dislikes,omitempty"`
	Notes              string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Validate checks every field against its allowed range.
func (p *FoodPreferences) Validate() error {
	if p.DietType != "" && !slices.Contains(dietTypes, p.DietType) {
		return fmt.Errorf("dietType %q: must be one of %s", p.DietType, strings.Join(dietTypes, ", "))
	}
	if p.Goal != "" && !slices.Contains(goals, p.Goal) {
		return fmt.Errorf("goal %q: must be one of %s", p.Goal, strings.Join(goals, ", "))
	}
	if p.MealsPerDay != 0 && (p.MealsPerDay < 1 || p.MealsPerDay > 8) {
		return fmt.Errorf("mealsPerDay %d: must be between 1 and 8", p.MealsPerDay)
	}
	if p.DailyCalories != 0 && (p.DailyCalories < 800 || p.DailyCalories > 6000) {
		return fmt.Errorf("dailyCalories %d: must be between 800 and 6000", p.DailyCalories)
	}
	if p.CookingTimeMinutes < 0 {
		return fmt.Errorf("cookingTimeMinutes %d: must not be negative", p.CookingTimeMinutes)
	}
	if err := validateIDs("cuisines", p.Cuisines); err != nil {
		return err
	}
	return validateIDs("dislikes", p.Dislikes)
}

// Plan is the finalized meal plan produced by the last wizard step.
type Plan struct {
	ID                  string           `json:"id" yaml:"id"`
	Name                string           `json:"name" yaml:"name"`
	ClientID            string           `json:"clientId,omitempty" yaml:"clientId,omitempty"`
	CreatedAt           time.Time        `json:"createdAt" yaml:"createdAt"`
	Days                int              `json:"days" yaml:"days"`
	Tags                []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Allergens           []string         `json:"allergens,omitempty" yaml:"allergens,omitempty"`
	ExcludedIngredients []string         `json:"excludedIngredients,omitempty" yaml:"excludedIngredients,omitempty"`
	FavoriteFoods       []string         `json:"favoriteFoods,omitempty" yaml:"favoriteFoods,omitempty"`
	Recipes             []string         `json:"recipes,omitempty" yaml:"recipes,omitempty"`
	Preferences         *FoodPreferences `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// Validate checks required fields and nested records.
func (p *Plan) Validate() error {
	if _, err := uuid.Parse(p.ID); err != nil {
		return fmt.Errorf("id %q: %w", p.ID, err)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.ClientID != "" {
		if err := validateID("clientId", p.ClientID); err != nil {
			return err
		}
	}
	if p.CreatedAt.IsZero() {
		return fmt.Errorf("createdAt is required")
	}
	if p.Days < 1 || p.Days > 31 {
		return fmt.Errorf("days %d: must be between 1 and 31", p.Days)
	}
	for field, ids := range map[string][]string{
		"tags":                p.Tags,
		"allergens":           p.Allergens,
		"excludedIngredients": p.ExcludedIngredients,
		"favoriteFoods":       p.FavoriteFoods,
		"recipes":             p.Recipes,
	} {
		if err := validateIDs(field, ids); err != nil {
			return err
		}
	}
	if p.Preferences != nil {
		if err := p.Preferences.Validate(); err != nil {
			return fmt.Errorf("preferences: %w", err)
		}
	}
	return nil
}

func validateID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s: identifier must not be blank", field)
	}
	if strings.TrimSpace(id) != id {
		return fmt.Errorf("%s: identifier %q has surrounding whitespace", field, id)
	}
	return nil
}

func validateIDs(field string, ids []string) error {
	for i, id := range ids {
		if err := validateID(fmt.Sprintf("%s[%d]", field, i), id); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot holds every slot of a session; nil fields are absent.
type Snapshot struct {
	CompletedSteps         StepSet          `json:"completedSteps,omitempty" yaml:"completedSteps,omitempty"`
	SelectedTags           []string         `json:"selectedTags,omitempty" yaml:"selectedTags,omitempty"`
	Allergens              []string         `json:"allergens,omitempty" yaml:"allergens,omitempty"`
	AllergensDescription   *string          `json:"allergensDescription,omitempty" yaml:"allergensDescription,omitempty"`
	AllExcludedIngredients []string         `json:"allExcludedIngredients,omitempty" yaml:"allExcludedIngredients,omitempty"`
	ClientID               *string          `json:"clientId,omitempty" yaml:"clientId,omitempty"`
	FoodPreferences        *FoodPreferences `json:"foodPreferences,omitempty" yaml:"foodPreferences,omitempty"`
	FavoriteFoods          []string         `json:"favoriteFoods,omitempty" yaml:"favoriteFoods,omitempty"`
	SelectedRecipes        []string         `json:"selectedRecipes,omitempty" yaml:"selectedRecipes,omitempty"`
	CreatedPlan            *Plan            `json:"createdPlan,omitempty" yaml:"createdPlan,omitempty"`
	Step                   *int             `json:"step,omitempty" yaml:"step,omitempty"`
	Step3Loaded            *bool            `json:"step3_loaded,omitempty" yaml:"step3_loaded,omitempty"`
}
