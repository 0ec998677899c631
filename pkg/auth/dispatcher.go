package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/totpgate/pkg/logger"
	"github.com/dmitrymomot/totpgate/pkg/session"
	"github.com/dmitrymomot/totpgate/pkg/validator"
)

// Authenticator is the service surface the dispatcher drives.
type Authenticator interface {
	Register(ctx context.Context, identity string) (Provisioning, error)
	LoginInit(ctx context.Context, identity string) (LoginResult, error)
	Verify(ctx context.Context, in VerifyInput) (*session.Session, error)
}

// Dispatcher maps inbound protocol events to service calls and their outcomes to outbound events.
type Dispatcher struct {
	auth      Authenticator
	validator validator.Validator
	logger    *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets a custom logger for the dispatcher.
func WithDispatcherLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithValidator overrides payload validation.
func WithValidator(v validator.Validator) DispatcherOption {
	return func(d *Dispatcher) {
		if v != nil {
			d.validator = v
		}
	}
}

// NewDispatcher creates a Dispatcher over auth.
func NewDispatcher(auth Authenticator, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		auth:   auth,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.validator == nil {
		d.validator = validator.MustNew()
	}
	return d
}

// Dispatch handles one inbound message. Every failure of the event itself is
// reported to the client through emit; the returned error is only the emit error,
// meaning the channel is no longer usable.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message, emit Emitter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "panic while handling event",
				logger.Event(msg.Event),
				logger.Error(fmt.Errorf("%v", r)),
			)
			err = emit.Emit(ctx, EventError, internalMessage(msg.Event))
		}
	}()

	switch msg.Event {
	case EventRegister:
		return d.register(ctx, msg.Data, emit)
	case EventLoginInit:
		return d.loginInit(ctx, msg.Data, emit)
	case EventVerify2FA:
		return d.verify(ctx, msg.Data, emit)
	case EventDisconnect:
		d.logger.DebugContext(ctx, "client disconnected")
		return nil
	default:
		d.logger.WarnContext(ctx, "unknown event", logger.Event(msg.Event))
		return emit.Emit(ctx, EventError, MsgUnknownEvent)
	}
}

func (d *Dispatcher) register(ctx context.Context, data json.RawMessage, emit Emitter) error {
	identity, err := d.decodeIdentity(data)
	if err != nil {
		return d.invalid(ctx, EventRegister, err, emit)
	}

	p, err := d.auth.Register(ctx, identity)
	if err != nil {
		return emit.Emit(ctx, EventError, MsgRegisterFailed)
	}

	return emit.Emit(ctx, EventRegistrationSuccess, ProvisioningPayload{
		Identity:             p.Identity,
		ProvisioningArtifact: p.Artifact,
	})
}

func (d *Dispatcher) loginInit(ctx context.Context, data json.RawMessage, emit Emitter) error {
	identity, err := d.decodeIdentity(data)
	if err != nil {
		return d.invalid(ctx, EventLoginInit, err, emit)
	}

	res, err := d.auth.LoginInit(ctx, identity)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return emit.Emit(ctx, EventError, MsgLoginUserNotFound)
	case err != nil:
		return emit.Emit(ctx, EventError, MsgLoginFailed)
	case res.NeedsSetup:
		return emit.Emit(ctx, EventNeeds2FASetup, ProvisioningPayload{
			Identity:             res.Identity,
			ProvisioningArtifact: res.Provisioning.Artifact,
		})
	default:
		return emit.Emit(ctx, EventNeeds2FAVerification, VerificationPayload{Identity: res.Identity})
	}
}

func (d *Dispatcher) verify(ctx context.Context, data json.RawMessage, emit Emitter) error {
	var req verifyRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return d.invalid(ctx, EventVerify2FA, err, emit)
	}
	if err := d.validator.Validate(req); err != nil {
		return d.invalid(ctx, EventVerify2FA, err, emit)
	}

	sess, err := d.auth.Verify(ctx, VerifyInput{
		Identity:    req.Identity,
		Code:        req.Code,
		IsSetupFlow: req.IsSetupFlow,
	})
	switch {
	case errors.Is(err, ErrUserNotFound):
		return emit.Emit(ctx, EventError, MsgVerifyUserNotFound)
	case errors.Is(err, ErrVerificationFailed):
		return emit.Emit(ctx, EventAuthFailure, MsgInvalidCode)
	case err != nil:
		return emit.Emit(ctx, EventError, MsgVerifyFailed)
	}

	return emit.Emit(ctx, EventAuthSuccess, AuthSuccessPayload{SessionToken: sess.Token})
}

// decodeIdentity accepts a bare JSON string or an {"identity": ...} object.
func (d *Dispatcher) decodeIdentity(data json.RawMessage) (string, error) {
	var req identityRequest

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &req.Identity); err != nil {
			return "", err
		}
	} else if err := json.Unmarshal(trimmed, &req); err != nil {
		return "", err
	}

	if err := d.validator.Validate(req); err != nil {
		return "", err
	}
	return req.Identity, nil
}

func (d *Dispatcher) invalid(ctx context.Context, event string, err error, emit Emitter) error {
	d.logger.DebugContext(ctx, "invalid payload", logger.Event(event), logger.Error(err))
	return emit.Emit(ctx, EventError, MsgInvalidRequest)
}

func internalMessage(event string) string {
	switch event {
	case EventRegister:
		return MsgRegisterFailed
	case EventLoginInit:
		return MsgLoginFailed
	case EventVerify2FA:
		return MsgVerifyFailed
	default:
		return MsgUnknownEvent
	}
}
