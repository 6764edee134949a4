package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReservationCode_Defaults(t *testing.T) {
	code, err := GenerateReservationCode(CodeOptions{})
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.Contains(t, codeAlphabet, string(r))
	}
}

func TestGenerateReservationCode_LengthClamped(t *testing.T) {
	code, err := GenerateReservationCode(CodeOptions{Length: 3})
	require.NoError(t, err)
	assert.Len(t, code, 6)

	code, err = GenerateReservationCode(CodeOptions{Length: 99})
	require.NoError(t, err)
	assert.Len(t, code, 24)
}

func TestGenerateReservationCode_Prefix(t *testing.T) {
	code, err := GenerateReservationCode(CodeOptions{Prefix: "car"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "CAR-"), "prefix must be uppercased and joined with a hyphen: %s", code)

	// Illegal characters are stripped, long prefixes truncated.
	code, err = GenerateReservationCode(CodeOptions{Prefix: "ren!tal@corp#2026"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "RENTALCO-"), "got %s", code)
}

func TestGenerateReservationCode_Checksum(t *testing.T) {
	code, err := GenerateReservationCode(CodeOptions{WithChecksum: true})
	require.NoError(t, err)
	require.Len(t, code, 9)

	body, digit := code[:8], code[8]
	assert.GreaterOrEqual(t, digit, byte('0'))
	assert.LessOrEqual(t, digit, byte('9'))

	// The checksum is deterministic for a given (prefix, body) pair.
	assert.Equal(t, string(digit), ChecksumDigit("", body))
	assert.Equal(t, ChecksumDigit("CAR", body), ChecksumDigit("CAR", body))
}

func TestGenerateReservationCode_NoAmbiguousSymbols(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateReservationCode(CodeOptions{Length: 24})
		require.NoError(t, err)
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "I")
		assert.NotContains(t, code, "1")
	}
}

func TestGenerateReservationCode_Distinct(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		code, err := GenerateReservationCode(CodeOptions{WithChecksum: true})
		require.NoError(t, err)
		_, dup := seen[code]
		require.False(t, dup, "duplicate code after %d generations: %s", i, code)
		seen[code] = struct{}{}
	}
}
