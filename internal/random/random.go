// Package random generates throwaway test data: random strings, digit
// strings and UUIDs. It is not suitable for secrets.
package random

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// DefaultLength is the length used when callers have no preference.
const DefaultLength = 10

const (
	letters      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	alphanumeric = letters + digits
)

// String returns n random ASCII letters and digits.
func String(n int) (string, error) {
	return pick(alphanumeric, n)
}

// Digits returns n random decimal digits. Leading zeros are allowed.
func Digits(n int) (string, error) {
	return pick(digits, n)
}

// UUID returns a random (version 4) UUID in canonical form.
func UUID() string {
	return uuid.NewString()
}

func pick(alphabet string, n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("length must not be negative, got %d", n)
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b), nil
}
