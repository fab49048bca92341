package buffer

import "unicode/utf8"

// Replacement is substituted for invalid input bytes and out-of-range codes.
const Replacement = utf8.RuneError

// decode splits s into characters without altering valid text. Every byte
// that is not part of a well-formed UTF-8 sequence becomes one Replacement.
func decode(s string) []rune {
	runes := make([]rune, 0, len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		runes = append(runes, r)
		s = s[size:]
	}
	return runes
}

// CharToCode returns the character code of r, or the code of Replacement when
// r is not a Unicode scalar value.
func CharToCode(r rune) int {
	if !utf8.ValidRune(r) {
		return int(Replacement)
	}
	return int(r)
}

// CodeToChar is the inverse of CharToCode. Negative codes, surrogates and
// anything above U+10FFFF map to Replacement.
func CodeToChar(code int) rune {
	if code < 0 || code > utf8.MaxRune {
		return Replacement
	}
	r := rune(code)
	if !utf8.ValidRune(r) {
		return Replacement
	}
	return r
}
