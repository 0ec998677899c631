package totp

import "errors"

// Secret and code generation.
var (
	ErrFailedToGenerateSecretKey = errors.New("totp: secret generation failed")
	ErrFailedToGenerateTOTP      = errors.New("totp: code generation failed")
	ErrMissingSecret             = errors.New("totp: secret is empty")
	ErrInvalidSecret             = errors.New("totp: secret is not valid base32")
	ErrMissingIssuer             = errors.New("totp: issuer is empty")
)

// At-rest encryption of secrets.
var (
	ErrEncryptionKeyNotSet           = errors.New("totp: TOTP_ENCRYPTION_KEY is not set")
	ErrFailedToLoadEncryptionKey     = errors.New("totp: encryption key unavailable")
	ErrInvalidEncryptionKeyLength    = errors.New("totp: encryption key must be 32 bytes")
	ErrFailedToGenerateEncryptionKey = errors.New("totp: encryption key generation failed")
	ErrFailedToEncryptSecret         = errors.New("totp: secret encryption failed")
	ErrFailedToDecryptSecret         = errors.New("totp: secret decryption failed")
	ErrInvalidCipherTooShort         = errors.New("totp: ciphertext shorter than nonce")
)
