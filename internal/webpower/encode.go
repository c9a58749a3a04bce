package webpower

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// toLatin1 re-encodes a UTF-8 string to ISO-8859-1, replacing characters
// the target charset cannot hold. The provider only accepts single-byte
// text in mailing content.
func toLatin1(s string) string {
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	out, err := enc.String(s)
	if err != nil {
		// ReplaceUnsupported never fails on valid UTF-8; keep the original
		// on the off chance it does.
		return s
	}
	return out
}
