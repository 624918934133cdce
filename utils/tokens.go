package utils

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 12

const poolCodePrefix = "wc26-"

// GeneratePoolCode returns a shareable pool code like "wc26-xk92m4pq".
// 32 bits of entropy: unguessable enough for view access, collisions are
// handled by retrying on the unique index.
func GeneratePoolCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate pool code: %w", err)
	}
	return poolCodePrefix + hex.EncodeToString(buf), nil
}

// GenerateToken returns an opaque credential for pool mutations. Returned to
// the caller exactly once; only the bcrypt hash is stored.
func GenerateToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), BcryptCost)
	return string(hash), err
}

func CheckTokenHash(token, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
