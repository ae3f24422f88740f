package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText returns a stable fingerprint for a piece of text. Telemetry uses it
// to correlate prompts and resume bodies across log lines without logging the
// content itself.
func HashText(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
