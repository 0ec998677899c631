// Package config loads typed configuration from environment variables.
//
// Configuration structs declare their variables with `env` tags understood by
// github.com/caarlos0/env. Optional .env files are read with
// github.com/joho/godotenv before parsing.
//
//	type Config struct {
//		Addr string        `env:"REDIS_URL"`
//		TTL  time.Duration `env:"SESSION_TTL" envDefault:"0s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Every configuration type is parsed once and cached for the lifetime of the
// process. Reload forces a fresh parse of a single type and ResetCache clears
// everything, which is mostly useful in tests.
//
// LoadEnv reads explicit .env files. Values already present in the process
// environment are never overwritten, so deployment settings take precedence
// over files.
//
// Errors can be matched with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer.
package config
