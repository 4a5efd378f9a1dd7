package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// keyBytes yields 40 hex characters per key.
const keyBytes = 20

// GenerateKey returns a new random token key.
func GenerateKey() (string, error) {
	b := make([]byte, keyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token key: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ParseAuthorization extracts the token key from an Authorization header.
// Both the "Token <key>" and "Bearer <key>" schemes are accepted. ok is false
// when the header carries no recognised token.
func ParseAuthorization(header string) (key string, ok bool) {
	scheme, rest, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	key = strings.TrimSpace(rest)
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", false
	}
	return key, true
}
