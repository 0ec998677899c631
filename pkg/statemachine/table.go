package statemachine

import (
	"context"
	"errors"
)

var _ Machine = (*Table)(nil)

// Table is an immutable transition table keyed as [fromState][event][]Transition.
// It is safe for concurrent use once built.
type Table struct {
	transitions map[string]map[string][]Transition
}

func newTable() *Table {
	return &Table{transitions: make(map[string]map[string][]Transition)}
}

func (t *Table) add(from, to State, event Event, guards []Guard, actions []Action) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	byEvent, ok := t.transitions[from.Name()]
	if !ok {
		byEvent = make(map[string][]Transition)
		t.transitions[from.Name()] = byEvent
	}

	// Multiple transitions allowed for same from/event to support guard-based branching
	byEvent[event.Name()] = append(byEvent[event.Name()], Transition{
		From:    from,
		To:      to,
		Event:   event,
		Guards:  guards,
		Actions: actions,
	})
	return nil
}

// Fire selects the first transition from current on event whose guards all pass,
// runs its actions in order and returns the target state.
// On error the returned state is current.
func (t *Table) Fire(ctx context.Context, current State, event Event, data any) (State, error) {
	if current == nil {
		return current, ErrInvalidState
	}
	if event == nil {
		return current, ErrInvalidEvent
	}

	transitions := t.transitions[current.Name()][event.Name()]
	if len(transitions) == 0 {
		return current, transitionError(ErrNoTransition, current, event)
	}

	selected := selectTransition(ctx, transitions, current, event, data)
	if selected == nil {
		return current, transitionError(ErrRejected, current, event)
	}

	for _, action := range selected.Actions {
		if err := action(ctx, current, selected.To, event, data); err != nil {
			return current, errors.Join(ErrActionFailed, err)
		}
	}

	return selected.To, nil
}

// CanFire reports whether Fire would find a transition whose guards pass. Actions are not run.
func (t *Table) CanFire(ctx context.Context, current State, event Event, data any) bool {
	if current == nil || event == nil {
		return false
	}
	return selectTransition(ctx, t.transitions[current.Name()][event.Name()], current, event, data) != nil
}

// Transitions lists every transition leaving from, in registration order per event.
func (t *Table) Transitions(from State) []Transition {
	if from == nil {
		return nil
	}
	var out []Transition
	for _, ts := range t.transitions[from.Name()] {
		out = append(out, ts...)
	}
	return out
}

// First transition with passing guards wins (enables priority ordering).
func selectTransition(ctx context.Context, transitions []Transition, current State, event Event, data any) *Transition {
	for i, tr := range transitions {
		passed := true
		for _, guard := range tr.Guards {
			if !guard(ctx, current, event, data) {
				passed = false
				break
			}
		}
		if passed {
			return &transitions[i]
		}
	}
	return nil
}
