package prompt

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/mealwiz/internal/session"
	"github.com/danieljhkim/mealwiz/internal/wizard"
)

type clientAnswers struct {
	ClientID string
}

func loadClient(store *session.Store) clientAnswers {
	id, _ := store.ClientID()
	return clientAnswers{ClientID: id}
}

func (a clientAnswers) apply(store *session.Store) error {
	id := strings.TrimSpace(a.ClientID)
	if id == "" {
		return store.ClearClientID()
	}
	return store.SetClientID(id)
}

type tagAnswers struct {
	Tags []string
}

func loadTags(store *session.Store) tagAnswers {
	tags, _ := store.SelectedTags()
	return tagAnswers{Tags: tags}
}

func (a tagAnswers) apply(store *session.Store) error {
	return store.SetSelectedTags(a.Tags)
}

type allergenAnswers struct {
	Allergens   []string
	Description string
	// Excluded is the comma separated ingredient list as typed
	Excluded string
}

func loadAllergens(store *session.Store) allergenAnswers {
	allergens, _ := store.Allergens()
	desc, _ := store.AllergensDescription()
	excluded, _ := store.AllExcludedIngredients()
	return allergenAnswers{
		Allergens:   allergens,
		Description: desc,
		Excluded:    formatList(excluded),
	}
}

// apply stores the answers; ingredients implied by newly chosen allergens
// are added to whatever the user typed.
func (a allergenAnswers) apply(store *session.Store) error {
	if err := store.SetAllergens(a.Allergens); err != nil {
		return err
	}
	if err := store.SetAllergensDescription(strings.TrimSpace(a.Description)); err != nil {
		return err
	}
	excluded := wizard.ExcludedIngredientsFor(a.Allergens, parseList(a.Excluded)...)
	if err := store.SetAllExcludedIngredients(excluded); err != nil {
		return err
	}
	return store.SetStep3Loaded(true)
}

type preferenceAnswers struct {
	DietType    string
	Goal        string
	MealsPerDay int
	Calories    string
	CookingTime string
	Cuisines    string
	Dislikes    string
	Favorites   string
	Notes       string
}

func loadPreferences(store *session.Store) preferenceAnswers {
	var a preferenceAnswers
	if p, ok := store.FoodPreferences(); ok {
		a.DietType = p.DietType
		a.Goal = p.Goal
		a.MealsPerDay = p.MealsPerDay
		a.Calories = formatOptionalInt(p.DailyCalories)
		a.CookingTime = formatOptionalInt(p.CookingTimeMinutes)
		a.Cuisines = formatList(p.Cuisines)
		a.Dislikes = formatList(p.Dislikes)
		a.Notes = p.Notes
	}
	favorites, _ := store.FavoriteFoods()
	a.Favorites = formatList(favorites)
	return a
}

func (a preferenceAnswers) preferences() (*session.FoodPreferences, error) {
	calories, err := parseOptionalInt(a.Calories)
	if err != nil {
		return nil, fmt.Errorf("daily calories: %w", err)
	}
	cooking, err := parseOptionalInt(a.CookingTime)
	if err != nil {
		return nil, fmt.Errorf("cooking time: %w", err)
	}
	prefs := &session.FoodPreferences{
		DietType:           a.DietType,
		Goal:               a.Goal,
		MealsPerDay:        a.MealsPerDay,
		DailyCalories:      calories,
		CookingTimeMinutes: cooking,
		Notes:              strings.TrimSpace(a.Notes),
	}
	if c := parseList(a.Cuisines); len(c) > 0 {
		prefs.Cuisines = c
	}
	if d := parseList(a.Dislikes); len(d) > 0 {
		prefs.Dislikes = d
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (a preferenceAnswers) apply(store *session.Store) error {
	prefs, err := a.preferences()
	if err != nil {
		return err
	}
	if err := store.SetFoodPreferences(prefs); err != nil {
		return err
	}
	return store.SetFavoriteFoods(parseList(a.Favorites))
}

type recipeAnswers struct {
	Recipes string
}

func loadRecipes(store *session.Store) recipeAnswers {
	recipes, _ := store.SelectedRecipes()
	return recipeAnswers{Recipes: formatList(recipes)}
}

func (a recipeAnswers) apply(store *session.Store) error {
	return store.SetSelectedRecipes(parseList(a.Recipes))
}

// summarize renders the selections shown on the review step.
func summarize(snap session.Snapshot) string {
	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "%-12s %s\n", label+":", value)
	}

	client := ""
	if snap.ClientID != nil {
		client = *snap.ClientID
	}
	line("Client", client)
	line("Tags", formatList(snap.SelectedTags))
	line("Allergens", formatList(snap.Allergens))
	line("Excluded", formatList(snap.AllExcludedIngredients))
	if snap.FoodPreferences != nil {
		line("Diet", snap.FoodPreferences.DietType)
		line("Goal", snap.FoodPreferences.Goal)
	}
	line("Favorites", formatList(snap.FavoriteFoods))
	line("Recipes", fmt.Sprintf("%d selected", len(snap.SelectedRecipes)))
	return strings.TrimRight(b.String(), "\n")
}
