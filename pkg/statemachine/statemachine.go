package statemachine

import "context"

// State and Event are compared by name only, so any type with a stable
// Name can be used. StringState and StringEvent cover the common case.
type (
	State interface{ Name() string }
	Event interface{ Name() string }
)

type (
	StringState string
	StringEvent string
)

func (s StringState) Name() string { return string(s) }
func (e StringEvent) Name() string { return string(e) }

// Guard decides whether a transition applies to data. Guards must not have side effects.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Action runs while a selected transition is applied. The first error aborts
// the remaining actions and Fire reports ErrActionFailed.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Transition moves From to To on Event when every guard passes.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard
	Actions []Action
}

// String renders the transition as "from -event-> to".
func (t Transition) String() string {
	return nameOf(t.From) + " -" + nameOf(t.Event) + "-> " + nameOf(t.To)
}

// Machine evaluates events against a state the caller owns and persists.
// A Machine holds no per-entity state, so a single one serves every entity.
type Machine interface {
	Fire(ctx context.Context, current State, event Event, data any) (State, error)
	CanFire(ctx context.Context, current State, event Event, data any) bool
	Transitions(from State) []Transition
}
