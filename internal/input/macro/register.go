package macro

import "unicode"

// Register validation constants.
const (
	// MinLetterRegister is the first valid letter register.
	MinLetterRegister = 'a'
	// MaxLetterRegister is the last valid letter register.
	MaxLetterRegister = 'z'
	// MinDigitRegister is the first valid digit register.
	MinDigitRegister = '0'
	// MaxDigitRegister is the last valid digit register.
	MaxDigitRegister = '9'
)

// IsValidRegister returns true if r is a valid register name.
// Valid registers are lowercase letters (a-z) and digits (0-9).
func IsValidRegister(r rune) bool {
	return (r >= MinLetterRegister && r <= MaxLetterRegister) ||
		(r >= MinDigitRegister && r <= MaxDigitRegister)
}

// NormalizeRegister converts a register to its canonical form. Uppercase
// letters fold to lowercase; invalid registers return 0.
func NormalizeRegister(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return unicode.ToLower(r)
	}
	if IsValidRegister(r) {
		return r
	}
	return 0
}
