// Package sanitize implements fix_formatted_text (spec.md §4.7): the final
// pass every FormattedText goes through before it is sent or stored. It
// strips control characters and a handful of bidi/combining marks while
// simultaneously remapping span offsets, then trims, bounds, and re-scans
// the result.
package sanitize

import (
	"strings"
	"unicode/utf8"

	"github.com/jholhewres/msgentity/pkg/msgentity/parseerr"
	"github.com/jholhewres/msgentity/pkg/msgentity/scan"
	"github.com/jholhewres/msgentity/pkg/msgentity/span"
	"github.com/jholhewres/msgentity/pkg/msgentity/uchar"
)

// MaxTextBytes is the output byte-length cap from spec.md §4.7 step 8.
const MaxTextBytes = 35000

// Options carries the fix_formatted_text flags from spec.md §4.7.
type Options struct {
	AllowEmpty      bool
	SkipNewEntities bool
	SkipBotCommands bool
	ForDraft        bool
}

// Fix sanitizes text and spans per spec.md §4.7's nine-step pipeline.
func Fix(text string, spans []span.Span, opts Options) (string, []span.Span, error) {
	data := []byte(text)
	if !utf8.Valid(data) {
		return "", nil, parseerr.ErrInvalidUTF8
	}

	normalized := span.NormalizeNested(spans)
	outText, outSpans, err := sanitizeAndRemap(data, normalized)
	if err != nil {
		return "", nil, err
	}

	outSpans = dropWhitespaceOnlySpans(outText, outSpans)

	outLen := uchar.UTF16Len(outText)
	for _, s := range outSpans {
		if s.Offset > outLen {
			return "", nil, &parseerr.SpanPastEnd{Offset: s.Offset}
		}
	}

	span.Sort(outSpans)
	if !opts.ForDraft {
		outText, outSpans = trimTrailingWhitespace(outText, outSpans)
		outText, outSpans = trimLeadingWhitespace(outText, outSpans)
	}

	if !opts.AllowEmpty && strings.TrimSpace(outText) == "" {
		return "", nil, parseerr.ErrEmpty
	}

	outText, outSpans = truncateToByteLimit(outText, outSpans)

	if !opts.SkipNewEntities {
		autoMatches := scan.FindAll([]byte(outText), scan.Options{SkipBotCommands: opts.SkipBotCommands})
		if len(autoMatches) > 0 {
			table := uchar.UTF16OffsetTable([]byte(outText))
			auto := make([]span.Span, len(autoMatches))
			for i, m := range autoMatches {
				auto[i] = span.Span{Kind: m.Kind, Offset: table[m.Start], Length: table[m.End] - table[m.Start], Argument: m.Argument}
			}
			outSpans = span.MergeUserDetected(outSpans, auto)
		}
	}

	return outText, outSpans, nil
}
