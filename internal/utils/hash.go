package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashString computes an HMAC-SHA256 signature over data with hashKey and
// returns it hex-encoded. Reset tokens are stored only in this form.
//
// Example usage:
//
//	digest := utils.HashString(rawToken, "my-secret-key")
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

// EqualHashes compares two hex digests in constant time.
func EqualHashes(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

// GenerateRandomToken returns nBytes of crypto/rand entropy, hex-encoded.
func GenerateRandomToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		return "", fmt.Errorf("random token size must be positive, got %d", nBytes)
	}
	buf := make([]byte, nBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
