package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Reference codes are shared with customers over the phone, so the alphabet
// stays uppercase-alphanumeric.
const refCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const refCodeLength = 6

// NewReferenceCode generates a booking reference of the form UNI-YYYY-XXXXXX.
// Codes are random, not guaranteed unique; the booking service checks the
// database and retries on collision.
func NewReferenceCode(now time.Time) (string, error) {
	buf := make([]byte, refCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reference code: %w", err)
	}
	for i, b := range buf {
		buf[i] = refCodeAlphabet[int(b)%len(refCodeAlphabet)]
	}
	return fmt.Sprintf("UNI-%d-%s", now.Year(), string(buf)), nil
}
