package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/totpgate/pkg/async"
	"github.com/dmitrymomot/totpgate/pkg/directory"
	"github.com/dmitrymomot/totpgate/pkg/logger"
	"github.com/dmitrymomot/totpgate/pkg/qrcode"
	"github.com/dmitrymomot/totpgate/pkg/session"
	"github.com/dmitrymomot/totpgate/pkg/statemachine"
	"github.com/dmitrymomot/totpgate/pkg/totp"
)

// CodeEngine generates TOTP secrets and checks submitted codes.
type CodeEngine interface {
	GenerateSecret(identity, issuer string) (totp.SecretBundle, error)
	VerifyCode(secret, code string, t time.Time) bool
}

// SessionIssuer creates and resolves sessions.
type SessionIssuer interface {
	Create(ctx context.Context, identity string) (*session.Session, error)
	Lookup(ctx context.Context, token string) (string, error)
}

// Provisioning is handed to the client to enrol an authenticator app.
type Provisioning struct {
	Identity string
	URI      string // otpauth:// descriptor
	Artifact string // rendered URI, a PNG data URI by default
}

// LoginResult reports what the client must do next after LoginInit.
// Provisioning is set only when NeedsSetup is true.
type LoginResult struct {
	Identity     string
	NeedsSetup   bool
	Provisioning Provisioning
}

// VerifyInput is a submitted verification code.
type VerifyInput struct {
	Identity    string
	Code        string
	IsSetupFlow bool
}

// Service drives the per-identity authentication state machine.
// Operations on the same identity are serialized; different identities proceed in parallel.
type Service struct {
	store    directory.Store
	locker   *directory.Locker
	sessions SessionIssuer
	engine   CodeEngine
	renderer qrcode.Renderer
	machine  statemachine.Machine
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for code verification.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocker shares a per-identity locker with other writers of the same directory.
func WithLocker(l *directory.Locker) Option {
	return func(s *Service) {
		if l != nil {
			s.locker = l
		}
	}
}

// NewService creates the authentication service.
func NewService(store directory.Store, sessions SessionIssuer, engine CodeEngine, renderer qrcode.Renderer, opts ...Option) *Service {
	s := &Service{
		store:    store,
		locker:   directory.NewLocker(),
		sessions: sessions,
		engine:   engine,
		renderer: renderer,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.machine = s.newTransitionTable()
	return s
}

// Register issues a fresh secret for identity, overwriting any existing record
// and resetting verification.
func (s *Service) Register(ctx context.Context, identity string) (Provisioning, error) {
	a, _, err := s.fire(ctx, identity, triggerRegister, nil)
	if err != nil {
		return Provisioning{}, s.fault(ctx, "register", identity, err)
	}

	s.logger.InfoContext(ctx, "identity registered", logger.Identity(identity))
	return s.provision(ctx, "register", a)
}

// LoginInit starts a login. Unverified identities receive a regenerated secret,
// verified identities are asked for a code.
func (s *Service) LoginInit(ctx context.Context, identity string) (LoginResult, error) {
	a, next, err := s.fire(ctx, identity, triggerLoginInit, nil)
	if err != nil {
		if statemachine.IsNoTransitionAvailableError(err) {
			return LoginResult{}, ErrUserNotFound
		}
		return LoginResult{}, s.fault(ctx, "login-init", identity, err)
	}

	if next == StateVerified {
		return LoginResult{Identity: identity}, nil
	}

	p, err := s.provision(ctx, "login-init", a)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Identity: identity, NeedsSetup: true, Provisioning: p}, nil
}

// Verify checks a code and issues a session on success. With IsSetupFlow an
// unverified identity becomes verified.
func (s *Service) Verify(ctx context.Context, in VerifyInput) (*session.Session, error) {
	a, next, err := s.fire(ctx, in.Identity, triggerVerify, func(a *attempt) {
		a.code = in.Code
		a.isSetupFlow = in.IsSetupFlow
	})
	switch {
	case statemachine.IsNoTransitionAvailableError(err):
		return nil, ErrUserNotFound
	case statemachine.IsTransitionRejectedError(err):
		s.logger.WarnContext(ctx, "verification code rejected", logger.Identity(in.Identity))
		return nil, ErrVerificationFailed
	case err != nil:
		return nil, s.fault(ctx, "verify", in.Identity, err)
	}

	s.logger.InfoContext(ctx, "identity authenticated",
		logger.Identity(in.Identity),
		logger.State(next.Name()),
	)
	return a.session, nil
}

// Lookup resolves a session token to its identity.
func (s *Service) Lookup(ctx context.Context, token string) (string, error) {
	return s.sessions.Lookup(ctx, token)
}

// fire runs one event for identity under its lock: load, transition, persist.
func (s *Service) fire(ctx context.Context, identity string, event statemachine.Event, prepare func(*attempt)) (*attempt, statemachine.State, error) {
	unlock := s.locker.Lock(identity)
	defer unlock()

	rec, err := s.store.Get(ctx, identity)
	found := err == nil
	if err != nil && !errors.Is(err, directory.ErrNotFound) {
		return nil, nil, err
	}

	a := &attempt{identity: identity, record: rec, now: s.now()}
	if prepare != nil {
		prepare(a)
	}

	next, err := s.machine.Fire(ctx, StateOf(rec, found), event, a)
	if err != nil {
		return nil, next, err
	}
	return a, next, nil
}

// provision renders the descriptor outside the identity lock.
func (s *Service) provision(ctx context.Context, op string, a *attempt) (Provisioning, error) {
	artifact, err := async.Async(ctx, a.bundle.URI, s.renderer.Render).AwaitContext(ctx)
	if err != nil {
		return Provisioning{}, s.fault(ctx, op, a.identity, err)
	}
	return Provisioning{Identity: a.identity, URI: a.bundle.URI, Artifact: artifact}, nil
}

func (s *Service) fault(ctx context.Context, op, identity string, err error) error {
	s.logger.ErrorContext(ctx, "authentication fault",
		logger.Event(op),
		logger.Identity(identity),
		logger.Error(err),
	)
	return errors.Join(ErrInternal, err)
}
