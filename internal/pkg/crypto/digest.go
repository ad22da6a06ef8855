package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the hex-encoded SHA-256 digest of data. The config store
// uses it to detect whether the on-disk/in-memory configuration changed
// between a read and a subsequent compare-and-set write (spec §4.1).
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
