package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/totpgate/pkg/directory"
	"github.com/dmitrymomot/totpgate/pkg/session"
	"github.com/dmitrymomot/totpgate/pkg/statemachine"
	"github.com/dmitrymomot/totpgate/pkg/totp"
)

// Per-identity states. The state is derived from the directory record, never stored on its own.
const (
	StateUnregistered = statemachine.StringState("unregistered")
	StatePendingSetup = statemachine.StringState("pending_setup")
	StateVerified     = statemachine.StringState("verified")
)

const (
	triggerRegister  = statemachine.StringEvent("register")
	triggerLoginInit = statemachine.StringEvent("login-init")
	triggerVerify    = statemachine.StringEvent("verify")
)

// StateOf derives the state of an identity from its directory record.
func StateOf(rec directory.Record, found bool) statemachine.State {
	switch {
	case !found:
		return StateUnregistered
	case rec.Verified:
		return StateVerified
	default:
		return StatePendingSetup
	}
}

// attempt carries one event through the transition table.
// Actions mutate record and fill the outputs.
type attempt struct {
	identity string
	record   directory.Record
	now      time.Time

	code        string
	isSetupFlow bool

	bundle  totp.SecretBundle
	session *session.Session
}

func attemptOf(data any) *attempt {
	a, _ := data.(*attempt)
	return a
}

func (s *Service) newTransitionTable() *statemachine.Table {
	anyState := []statemachine.State{StateUnregistered, StatePendingSetup, StateVerified}

	return statemachine.MustNew(
		statemachine.WithTransitionFromAny(anyState, StatePendingSetup, triggerRegister,
			statemachine.WithActions(s.issueSecret(true), s.persist),
		),
		statemachine.WithTransition(StatePendingSetup, StatePendingSetup, triggerLoginInit,
			statemachine.WithActions(s.issueSecret(false), s.persist),
		),
		statemachine.WithTransition(StateVerified, StateVerified, triggerLoginInit),
		statemachine.WithTransition(StatePendingSetup, StateVerified, triggerVerify,
			statemachine.WithGuards(isSetupFlow, s.codeMatches),
			statemachine.WithActions(s.markVerified, s.persist, s.issueSession),
		),
		statemachine.WithTransition(StatePendingSetup, StatePendingSetup, triggerVerify,
			statemachine.WithGuards(notSetupFlow, s.codeMatches),
			statemachine.WithAction(s.issueSession),
		),
		statemachine.WithTransition(StateVerified, StateVerified, triggerVerify,
			statemachine.WithGuard(s.codeMatches),
			statemachine.WithAction(s.issueSession),
		),
	)
}

func isSetupFlow(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
	a := attemptOf(data)
	return a != nil && a.isSetupFlow
}

func notSetupFlow(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
	a := attemptOf(data)
	return a != nil && !a.isSetupFlow
}

func (s *Service) codeMatches(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
	a := attemptOf(data)
	return a != nil && s.engine.VerifyCode(a.record.Secret, a.code, a.now)
}

// issueSecret replaces the stored secret and resets verification.
// reset also restarts CreatedAt, so re-registration looks like a fresh record.
func (s *Service) issueSecret(reset bool) statemachine.Action {
	return func(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
		a := attemptOf(data)
		if a == nil {
			return errMissingAttempt
		}

		bundle, err := s.engine.GenerateSecret(a.identity, "")
		if err != nil {
			return err
		}

		a.bundle = bundle
		a.record.Identity = a.identity
		a.record.Secret = bundle.Base32
		a.record.Verified = false
		if reset || a.record.CreatedAt.IsZero() {
			a.record.CreatedAt = a.now
		}
		return nil
	}
}

func (s *Service) markVerified(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	a := attemptOf(data)
	if a == nil {
		return errMissingAttempt
	}
	a.record.Verified = true
	return nil
}

func (s *Service) persist(ctx context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	a := attemptOf(data)
	if a == nil {
		return errMissingAttempt
	}
	a.record.UpdatedAt = a.now
	return s.store.Put(ctx, a.record)
}

func (s *Service) issueSession(ctx context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	a := attemptOf(data)
	if a == nil {
		return errMissingAttempt
	}
	sess, err := s.sessions.Create(ctx, a.identity)
	if err != nil {
		return err
	}
	a.session = sess
	return nil
}

var errMissingAttempt = errors.New("auth: transition fired without attempt data")
