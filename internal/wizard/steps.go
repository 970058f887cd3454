package wizard

import (
	"fmt"
	"slices"

	"github.com/danieljhkim/mealwiz/internal/session"
)

// Step numbers of the wizard.
const (
	StepClient      = 1
	StepTags        = 2
	StepAllergens   = 3
	StepPreferences = 4
	StepRecipes     = 5
	StepReview      = 6
)

// StepInfo describes one wizard step.
type StepInfo struct {
	Number int            `json:"number"`
	Name   string         `json:"name"`
	Title  string         `json:"title"`
	Slots  []session.Slot `json:"slots"`
}

var steps = []StepInfo{
	{StepClient, "client", "Client", []session.Slot{session.SlotClientID}},
	{StepTags, "tags", "Dietary tags", []session.Slot{session.SlotSelectedTags}},
	{StepAllergens, "allergens", "Allergens and exclusions", []session.Slot{
		session.SlotAllergens, session.SlotAllergensDescription, session.SlotAllExcludedIngredients, session.SlotStep3Loaded,
	}},
	{StepPreferences, "preferences", "Food preferences", []session.Slot{session.SlotFoodPreferences, session.SlotFavoriteFoods}},
	{StepRecipes, "recipes", "Recipes", []session.Slot{session.SlotSelectedRecipes}},
	{StepReview, "review", "Review and create plan", []session.Slot{session.SlotCreatedPlan}},
}

// Steps returns the step catalogue in order.
func Steps() []StepInfo {
	return slices.Clone(steps)
}

// FirstStep and LastStep bound the step numbers.
const (
	FirstStep = StepClient
	LastStep  = StepReview
)

// LookupStep returns the catalogue entry for number.
func LookupStep(number int) (StepInfo, error) {
	if number < FirstStep || number > LastStep {
		return StepInfo{}, fmt.Errorf("%w: %d (steps run from %d to %d)", ErrUnknownStep, number, FirstStep, LastStep)
	}
	return steps[number-FirstStep], nil
}

// allergenIngredients maps an allergen to the ingredients excluded because of it.
var allergenIngredients = map[string][]string{
	"peanuts":   {"peanut", "peanut-butter", "peanut-oil"},
	"tree-nuts": {"almond", "cashew", "walnut", "hazelnut", "pecan", "pistachio"},
	"milk":      {"milk", "butter", "cheese", "cream", "yogurt", "whey"},
	"eggs":      {"egg", "mayonnaise"},
	"gluten":    {"wheat-flour", "barley", "rye", "bread", "pasta", "couscous"},
	"soy":       {"soy-sauce", "tofu", "tempeh", "edamame", "miso"},
	"fish":      {"salmon", "tuna", "cod", "anchovy", "fish-sauce"},
	"shellfish": {"shrimp", "crab", "lobster", "mussel", "oyster"},
	"sesame":    {"sesame-seed", "tahini", "sesame-oil"},
}

// ExcludedIngredientsFor returns the ingredients implied by allergens plus
// extra, deduplicated in first-seen order. Unknown allergens imply nothing.
func ExcludedIngredientsFor(allergens []string, extra ...string) []string {
	out := []string{}
	seen := map[string]bool{}
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, a := range allergens {
		for _, ing := range allergenIngredients[a] {
			add(ing)
		}
	}
	for _, ing := range extra {
		add(ing)
	}
	return out
}
