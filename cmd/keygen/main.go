// Command keygen prints a fresh master key for TOTP_ENCRYPTION_KEY.
package main

import (
	"fmt"
	"os"

	"github.com/dmitrymomot/totpgate/pkg/totp"
)

func main() {
	key, err := totp.GenerateEncodedEncryptionKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keygen: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("TOTP_ENCRYPTION_KEY=%s\n", key)
}
