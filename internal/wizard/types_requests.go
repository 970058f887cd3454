package wizard

// CompleteStepRequest marks a step as finished.
type CompleteStepRequest struct {
	// Step is the step number that was finished
	Step int
}

// GoToRequest moves the current step.
type GoToRequest struct {
	// Step is the step number to show
	Step int
}

// LoadStep3Request seeds the allergens step.
type LoadStep3Request struct {
	// DefaultAllergens is written when no allergens are stored yet
	DefaultAllergens []string

	// ExtraExcluded is merged into the ingredients implied by the allergens
	ExtraExcluded []string
}

// FinalizeRequest builds the plan from the current selections.
type FinalizeRequest struct {
	// Name of the plan; a dated default is used when empty
	Name string

	// Days the plan covers; 7 when zero
	Days int

	// AllowEmpty permits a plan without selected recipes
	AllowEmpty bool

	// Force replaces an existing plan
	Force bool
}

// AbandonRequest discards the session.
type AbandonRequest struct {
	// Force allows discarding a completed session
	Force bool

	// DryRun reports what would be cleared without clearing
	DryRun bool
}
