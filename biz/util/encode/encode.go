package encode

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	Iterations = 100_000
	KeyLength  = 32
)

// EncodePassword returns hex(PBKDF2-HMAC-SHA256(password, salt)). The salt is
// used as text, matching digests stored by earlier deployments.
func EncodePassword(salt, password string) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(password), []byte(salt), Iterations, KeyLength, sha256.New))
}

// VerifyPassword compares in constant time.
func VerifyPassword(salt, password, hash string) bool {
	computed := EncodePassword(salt, password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
