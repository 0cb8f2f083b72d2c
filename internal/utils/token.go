package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns a random opaque session token. A failing
// system randomness source is not recoverable.
func GenerateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
