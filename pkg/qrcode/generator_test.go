package qrcode_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/dmitrymomot/totpgate/pkg/qrcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const provisioningURI = "otpauth://totp/MyApp:alice?algorithm=SHA1&digits=6&issuer=MyApp&period=30&secret=GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func decodeDataURI(t *testing.T, uri string) []byte {
	t.Helper()
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"), "data URI prefix")
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	return raw
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		size     int
		wantSize int
		wantErr  error
	}{
		{name: "empty content", content: "", size: 256, wantErr: qrcode.ErrEmptyContent},
		{name: "whitespace content", content: "   \t\n", size: 256, wantErr: qrcode.ErrEmptyContent},
		{name: "requested size", content: provisioningURI, size: 256, wantSize: 256},
		{name: "custom size", content: provisioningURI, size: 400, wantSize: 400},
		{name: "zero size uses default", content: provisioningURI, size: 0, wantSize: 256},
		{name: "negative size uses default", content: provisioningURI, size: -10, wantSize: 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := qrcode.Generate(tt.content, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(result))
			require.NoError(t, err, "result should be a valid PNG image")
			assert.Equal(t, tt.wantSize, img.Bounds().Dx())
			assert.Equal(t, tt.wantSize, img.Bounds().Dy())
		})
	}
}

func TestGenerateBase64Image(t *testing.T) {
	t.Parallel()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.GenerateBase64Image("", 256)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
		assert.Empty(t, result)
	})

	t.Run("decodes to png", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.GenerateBase64Image(provisioningURI, 128)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(decodeDataURI(t, result)))
		require.NoError(t, err)
		assert.Equal(t, 128, img.Bounds().Dx())
	})
}

func TestDataURIRenderer(t *testing.T) {
	t.Parallel()

	t.Run("renders data uri", func(t *testing.T) {
		t.Parallel()
		var r qrcode.Renderer = qrcode.NewDataURIRenderer(200)
		artifact, err := r.Render(context.Background(), provisioningURI)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(decodeDataURI(t, artifact)))
		require.NoError(t, err)
		assert.Equal(t, 200, img.Bounds().Dx())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := qrcode.NewDataURIRenderer(200).Render(ctx, provisioningURI)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.NewDataURIRenderer(200).Render(context.Background(), " ")
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})
}

func TestNewRendererFromConfig(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"", "low", "medium", "HIGH", "highest"} {
		r, err := qrcode.NewRendererFromConfig(qrcode.Config{Size: 128, RecoveryLevel: level})
		require.NoError(t, err, level)
		_, err = r.Render(context.Background(), provisioningURI)
		require.NoError(t, err, level)
	}

	_, err := qrcode.NewRendererFromConfig(qrcode.Config{Size: 128, RecoveryLevel: "extreme"})
	assert.ErrorIs(t, err, qrcode.ErrUnknownRecoveryLevel)
}
