package wizard

import "github.com/danieljhkim/mealwiz/internal/session"

// StepStatus is one line of the step overview.
type StepStatus struct {
	StepInfo
	Completed bool `json:"completed"`
	Current   bool `json:"current"`
}

// StatusResult represents the current session status.
type StatusResult struct {
	// Phase is the coarse progress of the session
	Phase session.Phase `json:"phase"`

	// Step is the current step index, 0 when unset
	Step int `json:"step"`

	// CompletedSteps lists finished steps
	CompletedSteps session.StepSet `json:"completedSteps"`

	// NextStep is the first unfinished step, 0 when all are done
	NextStep int `json:"nextStep"`

	// SetSlots lists slots currently holding a value
	SetSlots []session.Slot `json:"setSlots"`

	// Steps is the per-step overview
	Steps []StepStatus `json:"steps"`
}

// StartResult reports where the wizard begins or resumes.
type StartResult struct {
	Step    int  `json:"step"`
	Resumed bool `json:"resumed"`
}

// ProgressResult reports the step state after a move.
type ProgressResult struct {
	Step           int             `json:"step"`
	CompletedSteps session.StepSet `json:"completedSteps"`
}

// LoadStep3Result reports what step 3 initialization wrote.
type LoadStep3Result struct {
	// Loaded is false when step 3 had already been initialized
	Loaded bool `json:"loaded"`

	Allergens           []string `json:"allergens,omitempty"`
	ExcludedIngredients []string `json:"excludedIngredients,omitempty"`
}

// PlanResult carries a created or finished plan.
type PlanResult struct {
	Plan *session.Plan `json:"plan"`
}

// AbandonResult reports a session teardown.
type AbandonResult struct {
	// PreviousPhase is the phase before clearing
	PreviousPhase session.Phase `json:"previousPhase"`

	// Cleared lists the slots that held values
	Cleared []session.Slot `json:"cleared"`

	DryRun bool `json:"dryRun"`
}
