// Package auth implements TOTP based two-factor authentication as a per-identity
// state machine, plus the event protocol clients use to drive it.
//
// # States
//
// An identity is unregistered (no directory record), pending_setup (record with
// verified=false) or verified. The state is derived from the record on every
// event; the transition table in state.go decides what an event does:
//
//	register    any state        -> pending_setup  fresh secret, verified reset
//	login-init  pending_setup    -> pending_setup  fresh secret, client must enrol
//	login-init  verified         -> verified       client must submit a code
//	verify      pending_setup    -> verified       valid code in setup flow, session issued
//	verify      pending_setup    -> pending_setup  valid code outside setup flow, session issued
//	verify      verified         -> verified       valid code, session issued
//
// login-init and verify on an unregistered identity yield ErrUserNotFound, a
// rejected code yields ErrVerificationFailed, and everything else is wrapped in
// ErrInternal and logged.
//
// # Concurrency
//
// Service holds a per-identity lock for the load, transition and persist steps.
// Rendering the provisioning artifact happens after the lock is released and is
// awaited with the caller's context.
//
// # Protocol
//
// Dispatcher decodes inbound Messages (register, login-init, verify-2fa,
// disconnect), validates their payloads and emits exactly one outbound event per
// request through an Emitter. Panics in a handler are recovered and reported as
// a generic error event.
//
//	svc := auth.NewService(store, registry, engine, renderer, auth.WithLogger(log))
//	d := auth.NewDispatcher(svc, auth.WithDispatcherLogger(log))
//	err := d.Dispatch(ctx, msg, conn)
package auth
