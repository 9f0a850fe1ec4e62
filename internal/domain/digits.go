package domain

import (
	"fmt"
	"sort"
	"strings"
)

// MaxInputLen is the longest accepted input, in bytes.
const MaxInputLen = 64

// Marker replaces every even digit during Transform.
const Marker = "KV"

// Validate reports whether s is a non-empty string of at most MaxInputLen
// ASCII decimal digits.
func Validate(s string) bool {
	if len(s) == 0 || len(s) > MaxInputLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// ParseInput returns s unchanged if it passes Validate, or an error wrapping
// ErrInvalidInput.
func ParseInput(s string) (string, error) {
	if !Validate(s) {
		return "", fmt.Errorf("%w (len=%d)", ErrInvalidInput, len(s))
	}
	return s, nil
}

// Transform sorts the bytes of s in descending order and replaces each even
// digit with Marker. Callers validate s first.
func Transform(s string) string {
	sorted := []byte(s)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	var b strings.Builder
	b.Grow(len(sorted) * len(Marker))
	for _, c := range sorted {
		if (c-'0')%2 == 0 {
			b.WriteString(Marker)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Digest returns the sum of the decimal digit values in s. Any other byte,
// including the letters of Marker, contributes nothing.
func Digest(s string) int {
	sum := 0
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			sum += int(s[i] - '0')
		}
	}
	return sum
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
