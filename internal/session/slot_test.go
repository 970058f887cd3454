package session

import (
	"testing"
)

func TestSlots_FixedSet(t *testing.T) {
	want := []string{
		"wizard_completedSteps",
		"wizard_selectedTags",
		"wizard_allergens",
		"wizard_allergensDescription",
		"wizard_allExcludedIngredients",
		"wizard_clientId",
		"wizard_foodPreferences",
		"wizard_favoriteFoods",
		"wizard_selectedRecipes",
		"wizard_createdPlan",
		"wizard_step",
		"wizard_step3_loaded",
	}

	slots := Slots()
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, slot := range slots {
		if slot.Key() != want[i] {
			t.Errorf("slot %d key = %q, want %q", i, slot.Key(), want[i])
		}
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		input     string
		want      Slot
		wantError bool
	}{
		{input: "step", want: SlotStep},
		{input: "wizard_step3_loaded", want: SlotStep3Loaded},
		{input: " clientId ", want: SlotClientID},
		{input: "ClientId", wantError: true},
		{input: "", wantError: true},
		{input: "wizard_", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSlot(tt.input)
			if (err != nil) != tt.wantError {
				t.Fatalf("ParseSlot(%q) error = %v, wantError %v", tt.input, err, tt.wantError)
			}
			if got != tt.want {
				t.Errorf("ParseSlot(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	infos := Describe()
	if len(infos) != len(Slots()) {
		t.Fatalf("expected %d entries, got %d", len(Slots()), len(infos))
	}
	for _, info := range infos {
		if info.Key != info.Slot.Key() {
			t.Errorf("%s: Key = %q, want %q", info.Slot, info.Key, info.Slot.Key())
		}
		if info.Type == "" || info.Description == "" {
			t.Errorf("%s: missing type or description", info.Slot)
		}
	}
}

func TestStepSet(t *testing.T) {
	set := NewStepSet(4, 2, 4)
	if len(set) != 2 || set[0] != 2 || set[1] != 4 {
		t.Fatalf("NewStepSet(4, 2, 4) = %v, want [2 4]", set)
	}

	grown := set.Add(3)
	if !grown.Contains(3) {
		t.Error("Add(3) should contain 3")
	}
	if set.Contains(3) {
		t.Error("Add must not modify the receiver")
	}
	if got := grown.Add(3); len(got) != 3 {
		t.Errorf("adding an existing step changed the length: %v", got)
	}
}
