package auth

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashToken is the stored form of a refresh token.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(hash[:])
}
