package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Generate returns a crypto-secure random string of length n
// The string only contains characters from the URL-safe base64 alphabet:
// ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("token length must be > 0, got %d", n)
	}

	// every 3 bytes encode to 4 characters
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
