package midi

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText converts a meta event payload to a string: as is when it is valid
// UTF-8, as Latin-1 otherwise.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
