package auth

import (
	"context"
	"encoding/json"
)

// Inbound event names.
const (
	EventRegister   = "register"
	EventLoginInit  = "login-init"
	EventVerify2FA  = "verify-2fa"
	EventDisconnect = "disconnect"
)

// Outbound event names.
const (
	EventRegistrationSuccess  = "registration-success"
	EventNeeds2FASetup        = "needs-2fa-setup"
	EventNeeds2FAVerification = "needs-2fa-verification"
	EventAuthSuccess          = "auth-success"
	EventAuthFailure          = "auth-failure"
	EventError                = "error"
)

// Client-facing messages. Internal details never reach the client.
const (
	MsgLoginUserNotFound  = "User not found. Please register first."
	MsgVerifyUserNotFound = "User not found"
	MsgInvalidCode        = "Invalid verification code"
	MsgRegisterFailed     = "Registration failed"
	MsgLoginFailed        = "Login failed"
	MsgVerifyFailed       = "Verification failed"
	MsgInvalidRequest     = "Invalid request"
	MsgUnknownEvent       = "Unknown event"
)

// Message is one event on the channel in either direction.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Emitter sends an outbound event to the client the inbound message came from.
type Emitter interface {
	Emit(ctx context.Context, event string, payload any) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, event string, payload any) error

func (f EmitterFunc) Emit(ctx context.Context, event string, payload any) error {
	return f(ctx, event, payload)
}

// ProvisioningPayload is sent with registration-success and needs-2fa-setup.
type ProvisioningPayload struct {
	Identity             string `json:"identity"`
	ProvisioningArtifact string `json:"provisioningArtifact"`
}

// VerificationPayload is sent with needs-2fa-verification.
type VerificationPayload struct {
	Identity string `json:"identity"`
}

// AuthSuccessPayload is sent with auth-success.
type AuthSuccessPayload struct {
	SessionToken string `json:"sessionToken"`
}

type identityRequest struct {
	Identity string `json:"identity" validate:"required,max=256"`
}

type verifyRequest struct {
	Identity    string `json:"identity" validate:"required,max=256"`
	Code        string `json:"code" validate:"max=32"`
	IsSetupFlow bool   `json:"isSetupFlow"`
}
