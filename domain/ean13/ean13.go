// Package ean13 implements EAN-13 (ISO/IEC 15420) check digit computation,
// validation and input normalization. It is deliberately free of logging,
// I/O and any transport concern so it can be reused from any layer.
package ean13

import (
	"fmt"
	"strings"
)

const (
	// PayloadLength is the number of data digits preceding the check digit.
	PayloadLength = 12
	// FullLength is the length of a complete EAN-13 code.
	FullLength = 13
)

// LengthError reports an input whose digit count is neither 12 nor 13.
type LengthError struct {
	Found int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("ean13: found %d digits, need %d or %d", e.Found, PayloadLength, FullLength)
}

// ChecksumError reports a 13-digit input whose trailing digit does not match
// the check digit computed from the first 12.
type ChecksumError struct {
	Expected int
	Provided int
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("ean13: checksum mismatch, expected %d, provided %d", e.Expected, e.Provided)
}

// ComputeCheckDigit computes the check digit for exactly 12 decimal digits.
// Digits at even positions (0-based) are weighted x1, odd positions x3;
// the check digit is (10 - sum mod 10) mod 10.
func ComputeCheckDigit(digits string) (int, error) {
	if len(digits) != PayloadLength || !allDigits(digits) {
		return 0, &LengthError{Found: countDigits(digits)}
	}

	sum := 0
	for i := 0; i < PayloadLength; i++ {
		d := int(digits[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}

	return (10 - sum%10) % 10, nil
}

// Validate checks that the last digit of a 13-digit sequence equals the
// check digit recomputed from the first 12.
func Validate(digits string) error {
	if len(digits) != FullLength || !allDigits(digits) {
		return &LengthError{Found: countDigits(digits)}
	}

	expected, err := ComputeCheckDigit(digits[:PayloadLength])
	if err != nil {
		return err
	}

	provided := int(digits[FullLength-1] - '0')
	if provided != expected {
		return &ChecksumError{Expected: expected, Provided: provided}
	}

	return nil
}

// Normalize strips all non-digit characters from raw input and returns a
// complete 13-digit code. A 12-digit input gets its check digit appended;
// a 13-digit input is validated as-is. Any other digit count fails with a
// LengthError.
func Normalize(raw string) (string, error) {
	digits := stripNonDigits(raw)

	switch len(digits) {
	case PayloadLength:
		check, err := ComputeCheckDigit(digits)
		if err != nil {
			return "", err
		}
		return digits + string(rune('0'+check)), nil
	case FullLength:
		if err := Validate(digits); err != nil {
			return "", err
		}
		return digits, nil
	default:
		return "", &LengthError{Found: len(digits)}
	}
}

func stripNonDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func countDigits(s string) int {
	return len(stripNonDigits(s))
}
