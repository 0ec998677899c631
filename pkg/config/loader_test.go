package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpgate/pkg/config"
)

type sessionSettings struct {
	TTL    time.Duration `env:"CFGTEST_SESSION_TTL" envDefault:"0s"`
	Rotate bool          `env:"CFGTEST_SESSION_ROTATE" envDefault:"false"`
	Driver string        `env:"CFGTEST_SESSION_DRIVER" envDefault:"memory"`
}

type requiredSettings struct {
	Key string `env:"CFGTEST_REQUIRED_KEY,required"`
}

type cachedSettings struct {
	Name string `env:"CFGTEST_CACHED_NAME"`
}

type fileSettings struct {
	Name       string   `env:"CFGTEST_FILE_NAME"`
	Origins    []string `env:"CFGTEST_FILE_ORIGINS" envSeparator:","`
	Quoted     string   `env:"CFGTEST_FILE_QUOTED"`
	OnlySecond string   `env:"CFGTEST_FILE_ONLY_SECOND"`
}

func TestLoad(t *testing.T) {
	t.Run("values from environment", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CFGTEST_SESSION_TTL", "15m")
		t.Setenv("CFGTEST_SESSION_ROTATE", "true")
		t.Setenv("CFGTEST_SESSION_DRIVER", "redis")

		var cfg sessionSettings
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 15*time.Minute, cfg.TTL)
		assert.True(t, cfg.Rotate)
		assert.Equal(t, "redis", cfg.Driver)
	})

	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()

		var cfg sessionSettings
		require.NoError(t, config.Load(&cfg))
		assert.Zero(t, cfg.TTL)
		assert.False(t, cfg.Rotate)
		assert.Equal(t, "memory", cfg.Driver)
	})

	t.Run("missing required value", func(t *testing.T) {
		config.ResetCache()

		var cfg requiredSettings
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid value", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CFGTEST_SESSION_TTL", "forever")

		var cfg sessionSettings
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *sessionSettings
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
		assert.ErrorIs(t, config.Reload(cfg), config.ErrNilPointer)
	})
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("CFGTEST_CACHED_NAME", "first")

	var first cachedSettings
	require.NoError(t, config.Load(&first))

	t.Setenv("CFGTEST_CACHED_NAME", "second")

	var second cachedSettings
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Name)

	var reloaded cachedSettings
	require.NoError(t, config.Reload(&reloaded))
	assert.Equal(t, "second", reloaded.Name)
}

func TestMustLoad(t *testing.T) {
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredSettings
		config.MustLoad(&cfg)
	})

	t.Setenv("CFGTEST_REQUIRED_KEY", "present")
	assert.NotPanics(t, func() {
		var cfg requiredSettings
		config.MustLoad(&cfg)
		assert.Equal(t, "present", cfg.Key)
	})
}

func TestLoadEnv(t *testing.T) {
	unset := func(t *testing.T) {
		t.Helper()
		for _, key := range []string{
			"CFGTEST_FILE_NAME",
			"CFGTEST_FILE_ORIGINS",
			"CFGTEST_FILE_QUOTED",
			"CFGTEST_FILE_ONLY_SECOND",
		} {
			// Register restoration before clearing the variable.
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
		config.ResetCache()
	}

	t.Run("first file wins", func(t *testing.T) {
		unset(t)
		require.NoError(t, config.LoadEnv("testdata/.env.first", "testdata/.env.second"))

		var cfg fileSettings
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "first", cfg.Name)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
		assert.Equal(t, "quoted value", cfg.Quoted)
		assert.Equal(t, "yes", cfg.OnlySecond)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		unset(t)
		t.Setenv("CFGTEST_FILE_NAME", "from-env")
		require.NoError(t, config.LoadEnv("testdata/.env.first"))

		var cfg fileSettings
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from-env", cfg.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnv("testdata/.env.missing")
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
		assert.Panics(t, func() { config.MustLoadEnv("testdata/.env.missing") })
	})
}
