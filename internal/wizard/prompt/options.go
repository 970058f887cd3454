package prompt

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/danieljhkim/mealwiz/internal/session"
)

// TagOptions are the dietary and preference tags offered in step 2.
var TagOptions = []huh.Option[string]{
	huh.NewOption("Vegan", "vegan"),
	huh.NewOption("Vegetarian", "vegetarian"),
	huh.NewOption("Low carb", "low-carb"),
	huh.NewOption("High protein", "high-protein"),
	huh.NewOption("Gluten free", "gluten-free"),
	huh.NewOption("Dairy free", "dairy-free"),
	huh.NewOption("Mediterranean", "mediterranean"),
	huh.NewOption("Budget friendly", "budget"),
	huh.NewOption("Quick meals", "quick"),
}

// AllergenOptions are the allergens offered in step 3.
var AllergenOptions = []huh.Option[string]{
	huh.NewOption("Peanuts", "peanuts"),
	huh.NewOption("Tree nuts", "tree-nuts"),
	huh.NewOption("Milk", "milk"),
	huh.NewOption("Eggs", "eggs"),
	huh.NewOption("Gluten", "gluten"),
	huh.NewOption("Soy", "soy"),
	huh.NewOption("Fish", "fish"),
	huh.NewOption("Shellfish", "shellfish"),
	huh.NewOption("Sesame", "sesame"),
}

// DietTypeOptions lists the accepted diet types; the empty value means no preference.
var DietTypeOptions = []huh.Option[string]{
	huh.NewOption("No preference", ""),
	huh.NewOption("Omnivore", session.DietOmnivore),
	huh.NewOption("Vegetarian", session.DietVegetarian),
	huh.NewOption("Vegan", session.DietVegan),
	huh.NewOption("Pescatarian", session.DietPescatarian),
	huh.NewOption("Keto", session.DietKeto),
	huh.NewOption("Paleo", session.DietPaleo),
}

// GoalOptions lists the accepted goals.
var GoalOptions = []huh.Option[string]{
	huh.NewOption("No specific goal", ""),
	huh.NewOption("Lose weight", session.GoalLoseWeight),
	huh.NewOption("Maintain weight", session.GoalMaintain),
	huh.NewOption("Gain weight", session.GoalGainWeight),
	huh.NewOption("Improve health", session.GoalImproveHealth),
}

// MealsPerDayOptions lists meal counts; 0 leaves the field unset.
var MealsPerDayOptions = []huh.Option[int]{
	huh.NewOption("No preference", 0),
	huh.NewOption("2", 2),
	huh.NewOption("3 (Recommended)", 3),
	huh.NewOption("4", 4),
	huh.NewOption("5", 5),
	huh.NewOption("6", 6),
}

// PlanDaysOptions lists plan lengths.
var PlanDaysOptions = []huh.Option[int]{
	huh.NewOption("3 days", 3),
	huh.NewOption("5 days", 5),
	huh.NewOption("7 days (Recommended)", 7),
	huh.NewOption("14 days", 14),
	huh.NewOption("28 days", 28),
}

// parseList splits comma separated input into trimmed, non-empty identifiers.
func parseList(input string) []string {
	out := []string{}
	for _, part := range strings.Split(input, ",") {
		if id := strings.TrimSpace(part); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// formatList is the inverse of parseList for pre-filling inputs.
func formatList(ids []string) string {
	return strings.Join(ids, ", ")
}

// parseOptionalInt parses input as an integer; blank means 0.
func parseOptionalInt(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}
	return strconv.Atoi(input)
}

func formatOptionalInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
