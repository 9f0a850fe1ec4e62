//go:build property
// +build property

package domain

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestDigitProperties checks the input rules over generated strings.
func TestDigitProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	digits := gen.RegexMatch(`^[0-9]{1,64}$`)

	// Property: every 1..64 digit string is accepted
	properties.Property("digit strings validate", prop.ForAll(
		func(s string) bool {
			return Validate(s)
		},
		digits,
	))

	// Property: any non-digit byte makes the input invalid
	properties.Property("non-digit rejected", prop.ForAll(
		func(prefix string, bad string) bool {
			return !Validate(prefix + bad)
		},
		gen.RegexMatch(`^[0-9]{0,10}$`),
		gen.RegexMatch(`^[a-zA-Z ,.\-]{1,5}$`),
	))

	// Property: anything longer than MaxInputLen is rejected
	properties.Property("overlong rejected", prop.ForAll(
		func(extra int) bool {
			return !Validate(strings.Repeat("1", MaxInputLen+extra))
		},
		gen.IntRange(1, 100),
	))

	// Property: Transform is deterministic
	properties.Property("transform deterministic", prop.ForAll(
		func(s string) bool {
			return Transform(s) == Transform(s)
		},
		digits,
	))

	// Property: the digest only counts odd digits of the input
	properties.Property("digest counts odd digits", prop.ForAll(
		func(s string) bool {
			want := 0
			for _, c := range s {
				if d := int(c - '0'); d%2 == 1 {
					want += d
				}
			}
			return Digest(Transform(s)) == want
		},
		digits,
	))

	// Property: all-even inputs digest to zero
	properties.Property("even digits digest to zero", prop.ForAll(
		func(s string) bool {
			return Digest(Transform(s)) == 0
		},
		gen.RegexMatch(`^[02468]{1,64}$`),
	))

	properties.TestingRun(t)
}
