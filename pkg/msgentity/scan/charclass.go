// Package scan implements the six lexical entity recognizers (spec.md §4.2):
// small hand-rolled finite state machines over a byte slice already known to
// be valid UTF-8, each with explicit lookbehind/lookahead via uchar's
// prev/next code point readers. None of them use regexp — the recall/
// precision target these scanners are tuned to is a matter of exact
// character-class and boundary rules, not general pattern matching.
package scan

import "github.com/jholhewres/msgentity/pkg/msgentity/uchar"

func isASCIIWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

func isASCIIUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isUserDataChar implements spec.md §4.2's "user data" character class: any
// code point except whitespace/separators and the punctuation
// [ ] { } ( ) ' ` < > " « »; ZWJ/ZWNJ are explicitly allowed back in.
func isUserDataChar(r rune) bool {
	if r == uchar.ZWNJ || r == 0x200D {
		return true
	}
	if r == 0 {
		return false
	}
	switch r {
	case '[', ']', '{', '}', '(', ')', '\'', '`', '<', '>', '"', '«', '»':
		return false
	}
	return uchar.CategoryOf(r) != uchar.Separator
}

// isDomainChar implements spec.md §4.2's "domain" character class: dot,
// alphanumerics, underscore, hyphen, tilde, plus other non-separator code
// points (ZWJ/ZWNJ included) for internationalized labels. The URL-structural
// delimiters (: / ? # @ and the bracket/quote punctuation excluded from user
// data) are carved back out so a host scan stops at a scheme or path
// boundary instead of swallowing it.
func isDomainChar(r rune) bool {
	if r == '.' || r == '_' || r == '-' || r == '~' {
		return true
	}
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
		return true
	}
	if r == uchar.ZWNJ || r == 0x200D {
		return true
	}
	if r == 0 {
		return false
	}
	switch r {
	case ':', '/', '?', '#', '@', ' ',
		'[', ']', '{', '}', '(', ')', '\'', '`', '<', '>', '"', '«', '»':
		return false
	}
	return uchar.CategoryOf(r) != uchar.Separator
}

// isPathChar implements spec.md §4.2's "path" character class: everything
// except whitespace/separators and < > " « ».
func isPathChar(r rune) bool {
	if r == 0 {
		return false
	}
	if uchar.CategoryOf(r) == uchar.Separator {
		return false
	}
	switch r {
	case '<', '>', '"', '«', '»':
		return false
	}
	return true
}

const urlTrailingStripSet = ".:;,('?!`"

func isURLTrailingStrip(b byte) bool {
	for i := 0; i < len(urlTrailingStripSet); i++ {
		if urlTrailingStripSet[i] == b {
			return true
		}
	}
	return false
}

// scanLeftWhile returns the leftmost byte index j <= i such that every code
// point in [j, i) satisfies pred, reading backward with uchar.PrevCodePoint.
func scanLeftWhile(data []byte, i int, pred func(rune) bool) int {
	for i > 0 {
		r, j := uchar.PrevCodePoint(data, i)
		if !pred(r) {
			break
		}
		i = j
	}
	return i
}

// scanRightWhile returns the rightmost byte index j >= i such that every
// code point in [i, j) satisfies pred, reading forward with
// uchar.NextCodePoint.
func scanRightWhile(data []byte, i int, pred func(rune) bool) int {
	for i < len(data) {
		r, j := uchar.NextCodePoint(data, i)
		if !pred(r) {
			break
		}
		i = j
	}
	return i
}
