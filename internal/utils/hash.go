package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
)

func GenerateRandomToken(size int) (string, error) {
	buffer := make([]byte, size)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// GenerateVerificationCode draws a uniform 6-digit decimal code in
// [100000, 999999] using rejection sampling, so no digit pattern is favored.
func GenerateVerificationCode() (string, error) {
	const span = 900000
	// Largest multiple of span below 2^32, for unbiased modular reduction.
	const limit = (1 << 32) / span * span

	var buffer [4]byte
	for {
		if _, err := rand.Read(buffer[:]); err != nil {
			return "", err
		}
		value := binary.BigEndian.Uint32(buffer[:])
		if value < limit {
			return fmt.Sprintf("%06d", 100000+value%span), nil
		}
	}
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
