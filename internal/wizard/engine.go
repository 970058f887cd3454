// Package wizard drives the multi-step meal-plan wizard on top of a
// session.Store.
//
// The Engine is what the wizard's pages call: it moves the current step,
// records finished steps, seeds step 3's data once, builds the final plan and
// tears the session down. Any slot may still be written directly through the
// store in any order; the Engine never rejects a transition based on which
// slots are set.
package wizard

import (
	"github.com/google/uuid"

	"github.com/danieljhkim/mealwiz/internal/clock"
	"github.com/danieljhkim/mealwiz/internal/session"
)

// Engine orchestrates wizard operations against one client's session.
type Engine struct {
	store *session.Store
	clock clock.Clock
	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for plan timestamps.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithIDGenerator sets the function producing plan ids.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// New creates an Engine for store.
func New(store *session.Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		clock: clock.System,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the session the engine operates on.
func (e *Engine) Store() *session.Store {
	return e.store
}
