// Package qrcode renders provisioning URIs as QR code images.
//
// It is a thin wrapper around github.com/skip2/go-qrcode. Generate returns
// raw PNG bytes and GenerateBase64Image a data URI that can be dropped into an
// <img> tag. The Renderer interface, implemented by DataURIRenderer, is what
// the authentication service depends on, so tests can substitute a fake.
//
//	r := qrcode.NewDataURIRenderer(256)
//	artifact, err := r.Render(ctx, "otpauth://totp/MyApp:alice?secret=...")
//
// Errors are package level sentinels (ErrEmptyContent,
// ErrFailedToGenerateQRCode) and should be compared with errors.Is.
package qrcode
