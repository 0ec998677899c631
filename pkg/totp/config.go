package totp

// Config holds the engine settings loaded from the environment.
type Config struct {
	Issuer        string `env:"TOTP_ISSUER" envDefault:"MyApp"` // Issuer label shown in authenticator apps
	Skew          int    `env:"TOTP_SKEW" envDefault:"1"`       // Adjacent time steps accepted on each side
	EncryptionKey string `env:"TOTP_ENCRYPTION_KEY"`            // Base64 32-byte key; enables at-rest encryption of secrets
}
