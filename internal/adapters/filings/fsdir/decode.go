package fsdir

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names reported by Decode
const (
	EncUTF8        = "utf-8"
	EncWindows1252 = "windows-1252"
	EncLatin1      = "iso-8859-1"
	EncRaw         = "raw"
)

var legacy = []struct {
	name string
	cm   *charmap.Charmap
}{
	{EncWindows1252, charmap.Windows1252},
	{EncLatin1, charmap.ISO8859_1},
}

// Decode turns filing bytes into text. UTF-8 wins when the bytes are valid UTF-8 or carry
// a UTF-16 BOM (any BOM is stripped); otherwise the legacy code pages are tried in order
func Decode(b []byte) (string, string) {
	if len(b) == 0 {
		return "", EncUTF8
	}
	if hasUTF16BOM(b) || utf8.Valid(b) {
		// decoders carry state, one per call
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), b)
		if err == nil {
			return string(out), EncUTF8
		}
	}
	for _, l := range legacy {
		out, err := l.cm.NewDecoder().Bytes(b)
		if err == nil && !bytes.ContainsRune(out, utf8.RuneError) {
			return string(out), l.name
		}
	}
	// invalid sequences are dropped by normalize.Sanitize downstream
	return string(b), EncRaw
}

func hasUTF16BOM(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0xFE, 0xFF}) || bytes.HasPrefix(b, []byte{0xFF, 0xFE})
}
