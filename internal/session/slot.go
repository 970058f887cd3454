package session

import (
	"fmt"
	"strings"
)

// KeyPrefix is prepended to every slot name to form its storage key.
const KeyPrefix = "wizard_"

// Slot names one value of the wizard session.
type Slot string

const (
	SlotCompletedSteps         Slot = "completedSteps"
	SlotSelectedTags           Slot = "selectedTags"
	SlotAllergens              Slot = "allergens"
	SlotAllergensDescription   Slot = "allergensDescription"
	SlotAllExcludedIngredients Slot = "allExcludedIngredients"
	SlotClientID               Slot = "clientId"
	SlotFoodPreferences        Slot = "foodPreferences"
	SlotFavoriteFoods          Slot = "favoriteFoods"
	SlotSelectedRecipes        Slot = "selectedRecipes"
	SlotCreatedPlan            Slot = "createdPlan"
	SlotStep                   Slot = "step"
	SlotStep3Loaded            Slot = "step3_loaded"
)

// SlotInfo describes a slot for listings.
type SlotInfo struct {
	Slot        Slot   `json:"slot"`
	Key         string `json:"key"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

var slotInfos = []SlotInfo{
	{SlotCompletedSteps, "", "set of step numbers", "wizard steps the user has finished"},
	{SlotSelectedTags, "", "list of tag ids", "dietary and preference tags chosen"},
	{SlotAllergens, "", "list of allergen ids", "declared allergens"},
	{SlotAllergensDescription, "", "text", "free-form allergen notes"},
	{SlotAllExcludedIngredients, "", "list of ingredient ids", "ingredients to exclude"},
	{SlotClientID, "", "optional id", "client the plan is being built for"},
	{SlotFoodPreferences, "", "preferences record", "preference answers"},
	{SlotFavoriteFoods, "", "list of food ids", "favorite foods"},
	{SlotSelectedRecipes, "", "list of recipe ids", "recipes chosen for the plan"},
	{SlotCreatedPlan, "", "plan record", "the finalized plan, once generated"},
	{SlotStep, "", "integer", "current step index"},
	{SlotStep3Loaded, "", "boolean", "whether step 3's data has been initialized"},
}

// Slots returns every slot in display order.
func Slots() []Slot {
	out := make([]Slot, len(slotInfos))
	for i, info := range slotInfos {
		out[i] = info.Slot
	}
	return out
}

// Describe returns the listing entry for every slot.
func Describe() []SlotInfo {
	out := make([]SlotInfo, len(slotInfos))
	for i, info := range slotInfos {
		info.Key = info.Slot.Key()
		out[i] = info
	}
	return out
}

// Key returns the storage key for the slot.
func (s Slot) Key() string {
	return KeyPrefix + string(s)
}

// Valid reports whether s is one of the known slots.
func (s Slot) Valid() bool {
	for _, info := range slotInfos {
		if info.Slot == s {
			return true
		}
	}
	return false
}

func (s Slot) String() string {
	return string(s)
}

// ParseSlot accepts a slot name or its storage key ("step" or "wizard_step").
func ParseSlot(name string) (Slot, error) {
	slot := Slot(strings.TrimPrefix(strings.TrimSpace(name), KeyPrefix))
	if !slot.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSlot, name)
	}
	return slot, nil
}
