// Package totp implements RFC 6238 time-based one-time passwords for
// two-factor enrollment and login.
//
// The Engine type is the entry point. It is stateless: every operation is a
// function of a secret and a point in time, so a single Engine can be shared
// by all connections.
//
//	engine := totp.NewEngine(totp.WithIssuer("Acme"))
//
//	bundle, err := engine.GenerateSecret("alice", "")
//	if err != nil {
//		// handle error
//	}
//	// bundle.Base32 is persisted, bundle.URI is rendered as a QR code
//
//	ok := engine.VerifyCode(bundle.Base32, "123456", time.Now())
//
// VerifyCode accepts the current time step and one step on each side (see
// WithSkew) and compares every candidate in constant time. It never returns an
// error: malformed secrets and codes simply do not verify.
//
// Lower level helpers are exported as well: GenerateHOTP (RFC 4226),
// GetTOTPURI (Key Uri Format) and the AES-256-GCM helpers EncryptSecret,
// DecryptSecret and SecretCipher for protecting secrets at rest.
//
// Configuration is read from TOTP_ISSUER, TOTP_SKEW and TOTP_ENCRYPTION_KEY
// (see Config).
package totp
