package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"single digit", "7", true},
		{"all digits", "0123456789", true},
		{"max length", strings.Repeat("9", MaxInputLen), true},
		{"empty", "", false},
		{"too long", strings.Repeat("1", MaxInputLen+1), false},
		{"letters", "abc", false},
		{"mixed", "12a4", false},
		{"space", "12 34", false},
		{"sign", "-12", false},
		{"newline", "12\n", false},
		{"non-ascii digit", "١٢٣", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.input))
		})
	}
}

func TestParseInput(t *testing.T) {
	got, err := ParseInput("42")
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	_, err = ParseInput("abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestTransform(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1234", "KV3KV1"},
		{"13579", "97531"},
		{"2468", "KVKVKVKV"},
		{"0", "KV"},
		{"9081", "9KVKV1"},
		{"5", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Transform(tt.input))
		})
	}
}

func TestDigest(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"KV3KV1", 4},
		{"97531", 25},
		{"KVKVKVKV", 0},
		{"", 0},
		{"a1b2c3", 6},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Digest(tt.input))
		})
	}
}

func TestTransformThenDigest(t *testing.T) {
	assert.Equal(t, 4, Digest(Transform("1234")))
	assert.Equal(t, 25, Digest(Transform("13579")))
	assert.Equal(t, 0, Digest(Transform("86420")))
}

func TestSumReply(t *testing.T) {
	assert.Equal(t, "SUM:4\n", SumReply(4))
	assert.Equal(t, "SUM:0\n", SumReply(0))
	assert.True(t, strings.HasSuffix(ErrorReply, "\n"))
}
