package random

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
)

// TokenHex returns n random bytes from crypto/rand, hex encoded.
func TokenHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// TokenURLSafe returns n random bytes from crypto/rand, base64url encoded
// without padding.
func TokenURLSafe(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
