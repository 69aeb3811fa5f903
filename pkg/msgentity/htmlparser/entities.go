package htmlparser

import (
	"strconv"
	"strings"

	"github.com/jholhewres/msgentity/pkg/msgentity/parseerr"
)

const maxEntityLen = 10

var namedEntities = map[string]rune{
	"lt":   '<',
	"gt":   '>',
	"amp":  '&',
	"quot": '"',
}

// decodeEntities implements spec.md §4.5's limited entity decoding: the four
// named entities, numeric decimal/hex references, and rejection of
// out-of-range or overlong references. baseOffset is the byte offset of raw
// within the original input, for error reporting.
func decodeEntities(raw []byte, baseOffset int) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(raw) {
		if raw[i] != '&' {
			out.WriteByte(raw[i])
			i++
			continue
		}
		end := -1
		for j := i + 1; j < len(raw) && j-i <= maxEntityLen; j++ {
			if raw[j] == ';' {
				end = j
				break
			}
		}
		if end < 0 || end-i+1 > maxEntityLen {
			return "", &parseerr.InvalidHTML{Reason: "malformed or overlong character reference", ByteOffset: baseOffset + i}
		}
		body := string(raw[i+1 : end])

		var r rune
		switch {
		case len(body) > 0 && body[0] == '#':
			v, err := parseNumericRef(body[1:])
			if err != nil {
				return "", &parseerr.InvalidHTML{Reason: "invalid character reference", ByteOffset: baseOffset + i}
			}
			if v == 0 || v >= 0x10FFFF {
				return "", &parseerr.InvalidHTML{Reason: "character reference out of range", ByteOffset: baseOffset + i}
			}
			if v >= 0xD800 && v <= 0xDFFF {
				return "", parseerr.ErrInvalidUTF8After
			}
			r = rune(v)
		default:
			cp, ok := namedEntities[body]
			if !ok {
				return "", &parseerr.InvalidHTML{Reason: "unknown entity: &" + body + ";", ByteOffset: baseOffset + i}
			}
			r = cp
		}
		out.WriteRune(r)
		i = end + 1
	}
	return out.String(), nil
}

func parseNumericRef(s string) (int64, error) {
	if len(s) > 1 && (s[0] == 'x' || s[0] == 'X') {
		return strconv.ParseInt(s[1:], 16, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}
