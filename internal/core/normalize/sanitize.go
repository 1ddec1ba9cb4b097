package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops what only survives from broken extraction or legacy encodings:
// NUL and other C0 controls except \n \r \t (page form feeds included), DEL,
// C1 controls and invalid UTF-8 bytes. Clean input is returned as is
func Sanitize(s string) string {
	i := firstDirty(s)
	if i < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if keepRune(r, size) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// firstDirty returns the byte offset of the first rune Sanitize would drop, or -1
func firstDirty(s string) int {
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c < 0x7F {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if !keepRune(r, size) {
			return i
		}
		i += size
	}
	return -1
}

func keepRune(r rune, size int) bool {
	switch {
	case r == utf8.RuneError && size == 1:
		return false
	case r == '\n' || r == '\r' || r == '\t':
		return true
	case r < 0x20 || r == 0x7F:
		return false
	case r >= 0x80 && r <= 0x9F:
		return false
	default:
		return true
	}
}
