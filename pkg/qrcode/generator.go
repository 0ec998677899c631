package qrcode

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
	// ErrUnknownRecoveryLevel is returned for an unsupported error correction level name.
	ErrUnknownRecoveryLevel = errors.New("unknown QR recovery level")
)

const (
	defaultSize   = 256
	dataURIPrefix = "data:image/png;base64,"
)

// Config holds renderer settings loaded from the environment.
type Config struct {
	Size          int    `env:"QR_SIZE" envDefault:"256"`              // Image width and height in pixels
	RecoveryLevel string `env:"QR_RECOVERY_LEVEL" envDefault:"medium"` // low, medium, high or highest
}

// Renderer turns a provisioning URI into an artifact the client can display.
type Renderer interface {
	Render(ctx context.Context, content string) (string, error)
}

// Generate creates a QR code image in PNG format with the given content.
func Generate(content string, size int) ([]byte, error) {
	return generate(content, size, skipqrcode.Medium)
}

// GenerateBase64Image creates a PNG data URI suitable for an <img src> attribute.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}

func generate(content string, size int, level skipqrcode.RecoveryLevel) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, level, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// DataURIRenderer renders content as a base64 PNG data URI.
type DataURIRenderer struct {
	size  int
	level skipqrcode.RecoveryLevel
}

// NewDataURIRenderer creates a renderer producing size×size images.
func NewDataURIRenderer(size int) *DataURIRenderer {
	return &DataURIRenderer{size: size, level: skipqrcode.Medium}
}

// NewRendererFromConfig creates a renderer from the env-loaded Config.
func NewRendererFromConfig(cfg Config) (*DataURIRenderer, error) {
	level, err := parseRecoveryLevel(cfg.RecoveryLevel)
	if err != nil {
		return nil, err
	}
	return &DataURIRenderer{size: cfg.Size, level: level}, nil
}

// Render encodes content unless ctx is already done.
func (r *DataURIRenderer) Render(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	png, err := generate(content, r.size, r.level)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}

func parseRecoveryLevel(name string) (skipqrcode.RecoveryLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return skipqrcode.Low, nil
	case "", "medium":
		return skipqrcode.Medium, nil
	case "high":
		return skipqrcode.High, nil
	case "highest":
		return skipqrcode.Highest, nil
	default:
		return 0, errors.Join(ErrUnknownRecoveryLevel, errors.New(name))
	}
}
