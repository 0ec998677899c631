package auth

import "errors"

var (
	// ErrUserNotFound indicates the identity has no directory record.
	ErrUserNotFound = errors.New("auth.user_not_found")

	// ErrVerificationFailed indicates the submitted code did not match within tolerance.
	ErrVerificationFailed = errors.New("auth.verification_failed")

	// ErrInternal wraps storage, randomness and rendering faults. Never shown to clients verbatim.
	ErrInternal = errors.New("auth.internal")

	// ErrInvalidRequest indicates an inbound payload that could not be decoded or validated.
	ErrInvalidRequest = errors.New("auth.invalid_request")
)
