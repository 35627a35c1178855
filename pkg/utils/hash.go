package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashDocument computes the SHA-256 hex digest of a document string.
// Used as the integrity seal over a consent snapshot concatenated with
// its signature (or the empty string when unsigned).
func HashDocument(document string) string {
	sum := sha256.Sum256([]byte(document))
	return hex.EncodeToString(sum[:])
}
