package totp

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"time"
)

// SecretBundle holds a freshly generated secret in every supported encoding
// together with the provisioning URI for authenticator apps.
type SecretBundle struct {
	Raw    []byte
	Hex    string
	Base32 string // canonical stored and transmitted form
	URI    string
}

// Engine generates and verifies time-based one-time passwords.
// It holds no per-user state and is safe for concurrent use.
type Engine struct {
	issuer string
	digits int
	period int
	skew   int
	random io.Reader
}

// Option configures an Engine.
type Option func(*Engine)

// WithIssuer sets the issuer label used when GenerateSecret receives none.
func WithIssuer(issuer string) Option {
	return func(e *Engine) {
		if issuer != "" {
			e.issuer = issuer
		}
	}
}

// WithSkew sets how many adjacent time steps are accepted on each side of the current one.
func WithSkew(skew int) Option {
	return func(e *Engine) {
		if skew >= 0 {
			e.skew = skew
		}
	}
}

// WithRandom replaces the secret entropy source. Intended for tests.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) {
		if r != nil {
			e.random = r
		}
	}
}

// NewEngine creates an engine with RFC 6238 defaults: SHA1, 6 digits, 30s period, ±1 step.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		issuer: "MyApp",
		digits: DefaultDigits,
		period: DefaultPeriod,
		skew:   DefaultSkew,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineFromConfig creates an engine from the env-loaded Config.
func NewEngineFromConfig(cfg Config, opts ...Option) *Engine {
	return NewEngine(append([]Option{WithIssuer(cfg.Issuer), WithSkew(cfg.Skew)}, opts...)...)
}

// Issuer returns the default issuer label.
func (e *Engine) Issuer() string {
	return e.issuer
}

// GenerateSecret creates a new 160-bit secret for identity and derives its provisioning URI.
// An empty issuer falls back to the engine issuer; an empty identity is accepted.
func (e *Engine) GenerateSecret(identity, issuer string) (SecretBundle, error) {
	if issuer == "" {
		issuer = e.issuer
	}

	raw := make([]byte, SecretSize)
	if _, err := io.ReadFull(e.random, raw); err != nil {
		return SecretBundle{}, errors.Join(ErrFailedToGenerateSecretKey, err)
	}

	secret := EncodeSecret(raw)
	uri, err := GetTOTPURI(TOTPParams{
		Secret:      secret,
		AccountName: identity,
		Issuer:      issuer,
		Digits:      e.digits,
		Period:      e.period,
	})
	if err != nil {
		return SecretBundle{}, errors.Join(ErrFailedToGenerateSecretKey, err)
	}

	return SecretBundle{
		Raw:    raw,
		Hex:    hex.EncodeToString(raw),
		Base32: secret,
		URI:    uri,
	}, nil
}

// ComputeCode returns the code for the time step containing t.
func (e *Engine) ComputeCode(secret string, t time.Time) (string, error) {
	key, err := DecodeSecret(secret)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateTOTP, err)
	}
	return FormatCode(GenerateHOTP(key, Counter(t, e.period), e.digits), e.digits), nil
}

// VerifyCode reports whether code matches the secret at t or within the
// configured number of adjacent time steps. Every candidate is compared in
// constant time. A malformed secret or code yields false.
func (e *Engine) VerifyCode(secret, code string, t time.Time) bool {
	key, err := DecodeSecret(secret)
	if err != nil {
		return false
	}

	code = strings.TrimSpace(code)
	if !isNumeric(code, e.digits) {
		return false
	}

	counter := Counter(t, e.period)
	match := 0
	for i := -e.skew; i <= e.skew; i++ {
		candidate := FormatCode(GenerateHOTP(key, counter+int64(i), e.digits), e.digits)
		match |= subtle.ConstantTimeCompare([]byte(candidate), []byte(code))
	}

	return match == 1
}

func isNumeric(code string, digits int) bool {
	if len(code) != digits {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
