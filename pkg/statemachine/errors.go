package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: transition needs from, to and event")
	ErrInvalidEvent      = errors.New("statemachine: nil event")
	ErrInvalidState      = errors.New("statemachine: nil state")
	ErrActionFailed      = errors.New("statemachine: transition action failed")

	// ErrNoTransition means nothing is registered for the state and event.
	ErrNoTransition = errors.New("statemachine: no transition available")
	// ErrRejected means transitions exist but every one of them was blocked by a guard.
	ErrRejected = errors.New("statemachine: transition rejected by guards")
)

// TransitionError names the state and event that failed to produce a
// transition. It unwraps to ErrNoTransition or ErrRejected.
type TransitionError struct {
	State string
	Event string
	Err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: state %q, event %q", e.Err, e.State, e.Event)
}

func (e *TransitionError) Unwrap() error { return e.Err }

func transitionError(kind error, s State, ev Event) *TransitionError {
	return &TransitionError{State: s.Name(), Event: ev.Name(), Err: kind}
}

func IsNoTransitionAvailableError(err error) bool { return errors.Is(err, ErrNoTransition) }

func IsTransitionRejectedError(err error) bool { return errors.Is(err, ErrRejected) }
