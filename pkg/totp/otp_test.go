package totp_test

import (
	"testing"
	"time"

	"github.com/dmitrymomot/totpgate/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rfcSecret is the ASCII seed "12345678901234567890" from RFC 6238 Appendix B.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestGetTOTPURI(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		params  totp.TOTPParams
		want    string
		wantErr error
	}{
		{
			name: "Basic URI",
			params: totp.TOTPParams{
				Secret:      "ABCDEFGHIJKLMNOP",
				AccountName: "alice",
				Issuer:      "MyApp",
			},
			want: "otpauth://totp/MyApp:alice?algorithm=SHA1&digits=6&issuer=MyApp&period=30&secret=ABCDEFGHIJKLMNOP",
		},
		{
			name: "URI with special characters",
			params: totp.TOTPParams{
				Secret:      "ABCDEFGHIJKLMNOP",
				AccountName: "test+user@example.com",
				Issuer:      "Test & App",
			},
			want: "otpauth://totp/Test%20&%20App:test+user@example.com?algorithm=SHA1&digits=6&issuer=Test+%26+App&period=30&secret=ABCDEFGHIJKLMNOP",
		},
		{
			name: "Empty account name",
			params: totp.TOTPParams{
				Secret: "ABCDEFGHIJKLMNOP",
				Issuer: "MyApp",
			},
			want: "otpauth://totp/MyApp:?algorithm=SHA1&digits=6&issuer=MyApp&period=30&secret=ABCDEFGHIJKLMNOP",
		},
		{
			name:    "Missing secret",
			params:  totp.TOTPParams{Issuer: "MyApp", AccountName: "alice"},
			wantErr: totp.ErrMissingSecret,
		},
		{
			name:    "Lower-case secret",
			params:  totp.TOTPParams{Secret: "abcdef", Issuer: "MyApp"},
			wantErr: totp.ErrInvalidSecret,
		},
		{
			name:    "Missing issuer",
			params:  totp.TOTPParams{Secret: "ABCDEFGHIJKLMNOP", AccountName: "alice"},
			wantErr: totp.ErrMissingIssuer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := totp.GetTOTPURI(tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateHOTP(t *testing.T) {
	t.Parallel()
	// RFC 4226 Appendix D
	want := []int{755224, 287082, 359152, 969429, 338314, 254676, 287922, 162583, 399871, 520489}
	key := []byte("12345678901234567890")

	for counter, code := range want {
		assert.Equal(t, code, totp.GenerateHOTP(key, int64(counter), 6), "counter %d", counter)
	}
}

func TestDecodeSecret(t *testing.T) {
	t.Parallel()

	t.Run("canonical", func(t *testing.T) {
		t.Parallel()
		key, err := totp.DecodeSecret(rfcSecret)
		require.NoError(t, err)
		assert.Equal(t, []byte("12345678901234567890"), key)
	})

	t.Run("lower case with padding and whitespace", func(t *testing.T) {
		t.Parallel()
		key, err := totp.DecodeSecret("  mfrgg===  ")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), key)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := totp.DecodeSecret("   ")
		assert.ErrorIs(t, err, totp.ErrMissingSecret)
	})

	t.Run("invalid alphabet", func(t *testing.T) {
		t.Parallel()
		_, err := totp.DecodeSecret("invalid-base32!@#$")
		assert.ErrorIs(t, err, totp.ErrInvalidSecret)
	})
}

func TestCounter(t *testing.T) {
	t.Parallel()
	assert.Equal(t, int64(1), totp.Counter(time.Unix(59, 0), 30))
	assert.Equal(t, int64(2), totp.Counter(time.Unix(60, 0), 30))
	assert.Equal(t, int64(2), totp.Counter(time.Unix(60, 0), 0))
}

func TestFormatCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "000042", totp.FormatCode(42, 6))
	assert.Equal(t, "123456", totp.FormatCode(123456, 6))
}
