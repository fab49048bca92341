package buffer

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Length is the fixed number of characters held by a Buffer.
	Length = 100
	// Fill pads short input and is the initial content.
	Fill = ' '
)

// Buffer is a fixed-length sequence of character codes.
type Buffer [Length]rune

// Blank returns a buffer of Length spaces.
func Blank() Buffer {
	var b Buffer
	for i := range b {
		b[i] = Fill
	}
	return b
}

// FromText builds a buffer from submitted text: the first Length characters are
// kept and the rest is padded with Fill. truncated reports whether input was cut.
func FromText(text string) (b Buffer, truncated bool) {
	b = Blank()
	for i, r := range decode(text) {
		if i == Length {
			return b, true
		}
		b[i] = CodeToChar(CharToCode(r))
	}
	return b, false
}

// FromCodes builds a buffer from exactly Length integer codes. Codes that are
// not valid characters are stored as Replacement. Store.Check uses it to
// verify that a snapshot survives the code round trip.
func FromCodes(codes []int) (Buffer, error) {
	if len(codes) != Length {
		return Buffer{}, fmt.Errorf("expected %d codes, got %d", Length, len(codes))
	}
	var b Buffer
	for i, code := range codes {
		b[i] = CodeToChar(code)
	}
	return b, nil
}

// Text renders the buffer as a string, one character per code.
func (b Buffer) Text() string {
	var sb strings.Builder
	sb.Grow(Length)
	for _, r := range b {
		sb.WriteRune(CodeToChar(int(r)))
	}
	return sb.String()
}

// Codes returns the integer character codes in order.
func (b Buffer) Codes() []int {
	codes := make([]int, Length)
	for i, r := range b {
		codes[i] = CharToCode(r)
	}
	return codes
}

// CodeList formats the codes as a comma-separated list, e.g. "72, 105, 32".
func (b Buffer) CodeList() string {
	parts := make([]string, Length)
	for i, code := range b.Codes() {
		parts[i] = strconv.Itoa(code)
	}
	return strings.Join(parts, ", ")
}

// Diff counts the positions where b and other hold different codes.
func (b Buffer) Diff(other Buffer) int {
	n := 0
	for i := range b {
		if b[i] != other[i] {
			n++
		}
	}
	return n
}
