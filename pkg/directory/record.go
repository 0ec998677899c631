package directory

import "time"

// Record is the two-factor enrollment state of one identity.
type Record struct {
	Identity  string    `json:"identity"`
	Secret    string    `json:"secret"` // Base32 TOTP secret
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
