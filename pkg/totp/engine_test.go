package totp_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pquerna/otp"
	pqtotp "github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpgate/pkg/totp"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestEngine_GenerateSecret(t *testing.T) {
	t.Parallel()

	t.Run("bundle encodings agree", func(t *testing.T) {
		t.Parallel()
		engine := totp.NewEngine()

		bundle, err := engine.GenerateSecret("alice", "MyApp")
		require.NoError(t, err)

		assert.Len(t, bundle.Raw, totp.SecretSize)
		assert.Len(t, bundle.Hex, totp.SecretSize*2)
		assert.Regexp(t, totp.ValidateSecretKeyRegex, bundle.Base32)

		raw, err := totp.DecodeSecret(bundle.Base32)
		require.NoError(t, err)
		assert.Equal(t, bundle.Raw, raw)
	})

	t.Run("provisioning uri", func(t *testing.T) {
		t.Parallel()
		engine := totp.NewEngine()

		bundle, err := engine.GenerateSecret("alice", "MyApp")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(bundle.URI, "otpauth://totp/MyApp:alice?"))
		assert.Contains(t, bundle.URI, "secret="+bundle.Base32)
		assert.Contains(t, bundle.URI, "issuer=MyApp")

		key, err := otp.NewKeyFromURL(bundle.URI)
		require.NoError(t, err)
		assert.Equal(t, "MyApp", key.Issuer())
		assert.Equal(t, "alice", key.AccountName())
		assert.Equal(t, bundle.Base32, key.Secret())
	})

	t.Run("falls back to engine issuer", func(t *testing.T) {
		t.Parallel()
		engine := totp.NewEngine(totp.WithIssuer("Acme"))

		bundle, err := engine.GenerateSecret("bob", "")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(bundle.URI, "otpauth://totp/Acme:bob?"))
	})

	t.Run("empty identity is accepted", func(t *testing.T) {
		t.Parallel()
		bundle, err := totp.NewEngine().GenerateSecret("", "MyApp")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(bundle.URI, "otpauth://totp/MyApp:?"))
	})

	t.Run("secrets are unique", func(t *testing.T) {
		t.Parallel()
		engine := totp.NewEngine()
		first, err := engine.GenerateSecret("alice", "")
		require.NoError(t, err)
		second, err := engine.GenerateSecret("alice", "")
		require.NoError(t, err)
		assert.NotEqual(t, first.Base32, second.Base32)
	})

	t.Run("random source failure", func(t *testing.T) {
		t.Parallel()
		engine := totp.NewEngine(totp.WithRandom(failingReader{}))
		_, err := engine.GenerateSecret("alice", "")
		assert.ErrorIs(t, err, totp.ErrFailedToGenerateSecretKey)
	})

	t.Run("deterministic random source", func(t *testing.T) {
		t.Parallel()
		engine := totp.NewEngine(totp.WithRandom(bytes.NewReader([]byte("12345678901234567890"))))
		bundle, err := engine.GenerateSecret("alice", "")
		require.NoError(t, err)
		assert.Equal(t, rfcSecret, bundle.Base32)
		assert.Equal(t, "3132333435363738393031323334353637383930", bundle.Hex)
	})
}

func TestEngine_ComputeCode(t *testing.T) {
	t.Parallel()
	engine := totp.NewEngine()

	// RFC 6238 Appendix B (SHA1), truncated to six digits.
	vectors := []struct {
		unix int64
		code string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
		{20000000000, "353130"},
	}

	for _, v := range vectors {
		code, err := engine.ComputeCode(rfcSecret, time.Unix(v.unix, 0))
		require.NoError(t, err)
		assert.Equal(t, v.code, code, "t=%d", v.unix)
	}

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		at := time.Unix(1700000000, 0)
		a, err := engine.ComputeCode(rfcSecret, at)
		require.NoError(t, err)
		b, err := engine.ComputeCode(rfcSecret, at)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("matches reference implementation", func(t *testing.T) {
		t.Parallel()
		bundle, err := engine.GenerateSecret("alice", "")
		require.NoError(t, err)

		for _, at := range []time.Time{time.Unix(0, 0), time.Unix(1700000000, 0), time.Now()} {
			ours, err := engine.ComputeCode(bundle.Base32, at)
			require.NoError(t, err)
			theirs, err := pqtotp.GenerateCodeCustom(bundle.Base32, at, pqtotp.ValidateOpts{
				Period:    30,
				Digits:    otp.DigitsSix,
				Algorithm: otp.AlgorithmSHA1,
			})
			require.NoError(t, err)
			assert.Equal(t, theirs, ours)
		}
	})

	t.Run("invalid secret", func(t *testing.T) {
		t.Parallel()
		_, err := engine.ComputeCode("not base32!", time.Now())
		assert.ErrorIs(t, err, totp.ErrFailedToGenerateTOTP)
		assert.ErrorIs(t, err, totp.ErrInvalidSecret)
	})
}

func TestEngine_VerifyCode(t *testing.T) {
	t.Parallel()
	engine := totp.NewEngine()
	issued := time.Unix(1111111109, 0)
	code, err := engine.ComputeCode(rfcSecret, issued)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		code   string
		at     time.Time
		want   bool
	}{
		{name: "same instant", secret: rfcSecret, code: code, at: issued, want: true},
		{name: "15s later", secret: rfcSecret, code: code, at: issued.Add(15 * time.Second), want: true},
		{name: "15s earlier", secret: rfcSecret, code: code, at: issued.Add(-15 * time.Second), want: true},
		{name: "one step later", secret: rfcSecret, code: code, at: issued.Add(30 * time.Second), want: true},
		{name: "one step earlier", secret: rfcSecret, code: code, at: issued.Add(-30 * time.Second), want: true},
		{name: "three steps later", secret: rfcSecret, code: code, at: issued.Add(90 * time.Second), want: false},
		{name: "three steps earlier", secret: rfcSecret, code: code, at: issued.Add(-90 * time.Second), want: false},
		{name: "surrounding whitespace", secret: rfcSecret, code: " " + code + " ", at: issued, want: true},
		{name: "lower-case secret", secret: strings.ToLower(rfcSecret), code: code, at: issued, want: true},
		{name: "wrong code", secret: rfcSecret, code: "000000", at: issued, want: false},
		{name: "short code", secret: rfcSecret, code: code[:5], at: issued, want: false},
		{name: "non numeric code", secret: rfcSecret, code: "12345a", at: issued, want: false},
		{name: "empty code", secret: rfcSecret, code: "", at: issued, want: false},
		{name: "empty secret", secret: "", code: code, at: issued, want: false},
		{name: "malformed secret", secret: "invalid-base32!@#$", code: code, at: issued, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, engine.VerifyCode(tt.secret, tt.code, tt.at))
		})
	}
}

func TestEngine_VerifyCode_ZeroSkew(t *testing.T) {
	t.Parallel()
	engine := totp.NewEngine(totp.WithSkew(0))
	issued := time.Unix(1111111109, 0)
	code, err := engine.ComputeCode(rfcSecret, issued)
	require.NoError(t, err)

	assert.True(t, engine.VerifyCode(rfcSecret, code, issued))
	assert.False(t, engine.VerifyCode(rfcSecret, code, issued.Add(30*time.Second)))
}

func TestEngine_Concurrent(t *testing.T) {
	t.Parallel()
	engine := totp.NewEngine()

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bundle, err := engine.GenerateSecret("user", "")
			if !assert.NoError(t, err) {
				return
			}
			now := time.Now()
			code, err := engine.ComputeCode(bundle.Base32, now)
			if assert.NoError(t, err) {
				assert.True(t, engine.VerifyCode(bundle.Base32, code, now))
			}
		}()
	}
	wg.Wait()
}
