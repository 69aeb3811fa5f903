// Package parseerr holds the typed error values the markup parsers and the
// sanitizer can fail with (spec.md §7). Every error carries the byte offset
// where the problem was found so a caller can surface a precise diagnostic;
// none of these are swallowed by the engine itself.
package parseerr

import "fmt"

// InvalidMarkup reports an unclosed delimiter or other structural markup
// failure in the markdown parsers. Kind is empty for markdown-v1, which
// doesn't distinguish delimiter kinds in its error.
type InvalidMarkup struct {
	ByteOffset int
	Kind       string
}

func (e *InvalidMarkup) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("invalid markup: unclosed %s at byte %d", e.Kind, e.ByteOffset)
	}
	return fmt.Sprintf("invalid markup at byte %d", e.ByteOffset)
}

// ReservedChar reports an unescaped markdown-v2 reserved character.
type ReservedChar struct {
	Char       rune
	ByteOffset int
}

func (e *ReservedChar) Error() string {
	return fmt.Sprintf("reserved character %q must be escaped at byte %d", e.Char, e.ByteOffset)
}

// InvalidHTML reports a restricted-HTML structural failure: unknown tag,
// unmatched close, unclosed tag, or bad attribute syntax.
type InvalidHTML struct {
	Reason     string
	ByteOffset int
}

func (e *InvalidHTML) Error() string {
	return fmt.Sprintf("invalid html at byte %d: %s", e.ByteOffset, e.Reason)
}

// SpanInsideSurrogate reports that the sanitizer's cursor landed in the
// middle of a UTF-16 surrogate pair while crossing a span boundary.
type SpanInsideSurrogate struct {
	Offset  int
	BytePos int
}

func (e *SpanInsideSurrogate) Error() string {
	return fmt.Sprintf("span boundary at utf16 offset %d (byte %d) falls inside a surrogate pair", e.Offset, e.BytePos)
}

// SpanPastEnd reports a span whose offset exceeds the sanitized text's
// UTF-16 length.
type SpanPastEnd struct {
	Offset int
}

func (e *SpanPastEnd) Error() string {
	return fmt.Sprintf("span offset %d is past the end of the text", e.Offset)
}

// ErrInvalidUTF8 is returned when input text fails UTF-8 validation.
var ErrInvalidUTF8 = simple("invalid utf-8")

// ErrInvalidUTF8After is returned when restricted-HTML entity decoding
// produces invalid UTF-8 (an unpaired surrogate from a numeric reference).
var ErrInvalidUTF8After = simple("invalid utf-8 after entity decoding")

// ErrEmpty is returned by fix_formatted_text when allow_empty is false and
// the sanitized text has no visible content.
var ErrEmpty = simple("text is empty")

type simpleError string

func (e simpleError) Error() string { return string(e) }

func simple(msg string) error { return simpleError(msg) }
