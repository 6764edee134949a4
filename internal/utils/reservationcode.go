package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"strings"
)

// codeAlphabet is 32 symbols with the visually ambiguous O/0/I/1 removed.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	codeMinLength     = 6
	codeMaxLength     = 24
	codeDefaultLength = 8
	codeMaxPrefixLen  = 8
)

// CodeOptions controls reservation code generation.
type CodeOptions struct {
	// Length of the random body, clamped to [6,24]. Zero means 8.
	Length int
	// Prefix is uppercased, stripped to A-Z, 0-9 and hyphens, and truncated
	// to 8 characters.
	Prefix string
	// WithChecksum appends one decimal digit derived from a hash of
	// prefix+body. Typo detection, not a security control.
	WithChecksum bool
}

// GenerateReservationCode produces a short human-communicable code of the
// form PREFIX-BODY[D] (or BODY[D] without a prefix). Uniqueness is not
// guaranteed here; callers detect collisions at commit time and retry.
func GenerateReservationCode(opts CodeOptions) (string, error) {
	length := opts.Length
	if length == 0 {
		length = codeDefaultLength
	}
	if length < codeMinLength {
		length = codeMinLength
	}
	if length > codeMaxLength {
		length = codeMaxLength
	}

	prefix := sanitizePrefix(opts.Prefix)

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to draw random bytes: %w", err)
	}

	var body strings.Builder
	for _, b := range buf {
		body.WriteByte(codeAlphabet[int(b)%len(codeAlphabet)])
	}
	code := body.String()

	if opts.WithChecksum {
		code += ChecksumDigit(prefix, code)
	}

	if prefix != "" {
		return prefix + "-" + code, nil
	}
	return code, nil
}

// ChecksumDigit returns the single decimal digit for a (prefix, body) pair.
// The same pair always yields the same digit.
func ChecksumDigit(prefix, body string) string {
	h := sha256.Sum256([]byte(prefix + body))
	return string(rune('0' + h[0]%10))
}

func sanitizePrefix(prefix string) string {
	upper := strings.ToUpper(prefix)
	var out strings.Builder
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			out.WriteRune(r)
		}
	}
	s := out.String()
	if len(s) > codeMaxPrefixLen {
		s = s[:codeMaxPrefixLen]
	}
	return s
}
