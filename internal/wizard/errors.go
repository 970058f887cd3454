package wizard

import "errors"

var (
	// ErrUnknownStep indicates a step number outside the catalogue.
	ErrUnknownStep = errors.New("unknown step")

	// ErrNothingSelected indicates a plan was requested with no recipes selected.
	ErrNothingSelected = errors.New("no recipes selected")

	// ErrNotCompleted indicates the session has no created plan yet.
	ErrNotCompleted = errors.New("session not completed")

	// ErrCompletedSession indicates an operation would discard or replace a finished plan.
	ErrCompletedSession = errors.New("session already completed")
)
