// Package statemachine provides a stateless finite-state-machine transition table.
//
// A Table maps (state, event) pairs to one or more Transitions. The table itself
// never stores a current state: callers load the state of an entity, call Fire
// with it and persist the state that comes back. This lets a single Table drive
// any number of entities whose state lives elsewhere (a database record, a cache
// entry) while serialization per entity stays the caller's responsibility.
//
// # Usage
//
//	const (
//	    Draft    = statemachine.StringState("draft")
//	    InReview = statemachine.StringState("in_review")
//	    Submit   = statemachine.StringEvent("submit")
//	)
//
//	table := statemachine.MustNew(
//	    statemachine.WithTransition(Draft, InReview, Submit),
//	)
//
//	next, err := table.Fire(ctx, doc.State, Submit, nil)
//
// # Guards and Actions
//
// Several transitions may share the same source state and event. Fire picks the
// first one, in registration order, whose guards all pass. Its actions then run
// in order; the first action error aborts the transition and Fire returns the
// unchanged state together with an error wrapping ErrActionFailed.
//
// # Error Handling
//
//	if statemachine.IsNoTransitionAvailableError(err) { /* event not defined for state */ }
//	if statemachine.IsTransitionRejectedError(err)   { /* every guard vetoed */ }
//
// # Concurrency
//
// A Table is read-only after New returns and can be shared between goroutines.
package statemachine
