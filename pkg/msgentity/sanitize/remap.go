package sanitize

import (
	"sort"
	"strings"

	"github.com/jholhewres/msgentity/pkg/msgentity/parseerr"
	"github.com/jholhewres/msgentity/pkg/msgentity/span"
	"github.com/jholhewres/msgentity/pkg/msgentity/uchar"
)

// deleted reports whether r is one of the bidi-mark/combining-mark code
// points spec.md §4.7 step 3 drops outright.
func deleted(r rune) bool {
	switch r {
	case 0x200E, 0x200F, // LRM, RLM
		0x202A, 0x202B, 0x202C, 0x202D, 0x202E, // LRE..PDF
		0x2066, 0x2067, 0x2068, 0x2069, // LRI..PDI
		0x0333, 0x033F, 0x030A:
		return true
	case '\r':
		return true
	}
	if r >= 0x2028 && r <= 0x202E {
		return true
	}
	return false
}

// replacedWithSpace reports whether r is one of the control code points
// spec.md §4.7 step 3 replaces with a single space, rather than copying or
// dropping.
func replacedWithSpace(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return (r >= 0x00 && r <= 0x08) || r == 0x0B || r == 0x0C || (r >= 0x0E && r <= 0x20)
}

// sanitizeAndRemap runs spec.md §4.7 step 3: a single left-to-right pass
// over data that simultaneously strips/replaces characters and remaps span
// boundaries to the resulting output's coordinate system.
func sanitizeAndRemap(data []byte, spans []span.Span) (string, []span.Span, error) {
	// opens/closes carry the original slice index rather than a copy of the
	// span value, so each open/close event resolves its slot in O(1) instead
	// of re-deriving it with a linear identity scan over spans.
	opens := make([]int, len(spans))
	for i := range opens {
		opens[i] = i
	}
	sort.SliceStable(opens, func(i, j int) bool { return spans[opens[i]].Offset < spans[opens[j]].Offset })
	closes := make([]int, len(spans))
	for i := range closes {
		closes[i] = i
	}
	sort.SliceStable(closes, func(i, j int) bool { return spans[closes[i]].End() < spans[closes[j]].End() })

	adjOffset := make([]int, len(spans))
	adjEnd := make([]int, len(spans))
	openUsed := make([]bool, len(spans))
	closeUsed := make([]bool, len(spans))

	var out []byte
	var outU2B []int // outU2B[u] = byte offset in out where utf16 unit u begins

	origCursor := 0
	skipped := 0
	openIdx, closeIdx := 0, 0
	bytePos := 0

	for bytePos < len(data) {
		r, next := uchar.NextCodePoint(data, bytePos)
		units := uchar.UTF16Units(r)

		for closeIdx < len(closes) && spans[closes[closeIdx]].End() == origCursor {
			slot := closes[closeIdx]
			closeUsed[slot] = true
			adjEnd[slot] = origCursor - skipped
			closeIdx++
		}
		for openIdx < len(opens) && spans[opens[openIdx]].Offset == origCursor {
			slot := opens[openIdx]
			openUsed[slot] = true
			adjOffset[slot] = origCursor - skipped
			openIdx++
		}

		if units == 2 {
			mid := origCursor + 1
			if (closeIdx < len(closes) && spans[closes[closeIdx]].End() == mid) ||
				(openIdx < len(opens) && spans[opens[openIdx]].Offset == mid) {
				return "", nil, &parseerr.SpanInsideSurrogate{Offset: mid, BytePos: bytePos}
			}
		}

		switch {
		case deleted(r):
			skipped += units
		case replacedWithSpace(r):
			outU2B = append(outU2B, len(out))
			out = uchar.AppendUTF8(out, ' ')
		default:
			for k := 0; k < units; k++ {
				outU2B = append(outU2B, len(out))
			}
			out = uchar.AppendUTF8(out, r)
		}

		origCursor += units
		bytePos = next
	}
	outU2B = append(outU2B, len(out))

	for closeIdx < len(closes) && spans[closes[closeIdx]].End() <= origCursor {
		slot := closes[closeIdx]
		closeUsed[slot] = true
		adjEnd[slot] = origCursor - skipped
		closeIdx++
	}

	outSpans := make([]span.Span, 0, len(spans))
	for i, s := range spans {
		if !openUsed[i] || !closeUsed[i] {
			continue
		}
		length := adjEnd[i] - adjOffset[i]
		if length <= 0 {
			continue
		}
		s.Offset = adjOffset[i]
		s.Length = length
		outSpans = append(outSpans, s)
	}
	return string(out), outSpans, nil
}

// dropWhitespaceOnlySpans implements spec.md §4.7 step 4: spans whose
// content is entirely whitespace are dropped, except hidden-data spans that
// contain at least one literal space.
func dropWhitespaceOnlySpans(text string, spans []span.Span) []span.Span {
	table := uchar.UTF16OffsetTable([]byte(text))
	byteAt := invertOffsetTable(table)

	kept := spans[:0]
	for _, s := range spans {
		start, end := byteAt(s.Offset), byteAt(s.End())
		if start < 0 || end < 0 || start > end {
			continue
		}
		content := text[start:end]
		if strings.TrimSpace(content) != "" {
			kept = append(kept, s)
			continue
		}
		if s.Kind.IsHiddenData() && strings.ContainsRune(content, ' ') {
			kept = append(kept, s)
		}
	}
	return kept
}

// invertOffsetTable returns a function mapping a UTF-16 offset to the byte
// position table[i] == that offset corresponds to, given table as produced
// by uchar.UTF16OffsetTable. Offsets must be one that actually occurs in
// table (a code point boundary or the end of text).
func invertOffsetTable(table []int) func(utf16Offset int) int {
	return func(u int) int {
		for i, v := range table {
			if v == u {
				return i
			}
		}
		return -1
	}
}

// trimTrailingWhitespace implements the non-draft half of spec.md §4.7 step
// 6: trailing whitespace is removed from text, and any span extending past
// the new end is clamped or dropped.
func trimTrailingWhitespace(text string, spans []span.Span) (string, []span.Span) {
	trimmed := strings.TrimRight(text, " \t\r\n\v\f ")
	if len(trimmed) == len(text) {
		return text, spans
	}
	newLen := uchar.UTF16Len(trimmed)

	out := spans[:0]
	for _, s := range spans {
		if s.Offset >= newLen {
			continue
		}
		if s.End() > newLen {
			s.Length = newLen - s.Offset
		}
		if s.Length > 0 {
			out = append(out, s)
		}
	}
	return trimmed, out
}

// trimLeadingWhitespace implements the other half of spec.md §4.7 step 6:
// spaces and newlines preceding the first remaining span (or the whole text,
// if there are no spans) are stripped, and every span's offset shifts left
// to match.
func trimLeadingWhitespace(text string, spans []span.Span) (string, []span.Span) {
	limit := uchar.UTF16Len(text)
	if len(spans) > 0 {
		limit = spans[0].Offset
		for _, s := range spans[1:] {
			if s.Offset < limit {
				limit = s.Offset
			}
		}
	}

	lead := 0
	for _, r := range text {
		if lead >= limit {
			break
		}
		if r != ' ' && r != '\n' {
			break
		}
		lead += uchar.UTF16Units(r)
	}
	if lead == 0 {
		return text, spans
	}

	table := uchar.UTF16OffsetTable([]byte(text))
	byteAt := invertOffsetTable(table)
	newText := text[byteAt(lead):]
	for i := range spans {
		spans[i].Offset -= lead
	}
	return newText, spans
}

// truncateToByteLimit implements spec.md §4.7 step 8: the output text is cut
// to at most MaxTextBytes bytes, backing up to the nearest UTF-8 boundary,
// with spans clamped or dropped to match.
func truncateToByteLimit(text string, spans []span.Span) (string, []span.Span) {
	if len(text) <= MaxTextBytes {
		return text, spans
	}
	cut := MaxTextBytes
	for cut > 0 && !uchar.IsUTF8LeadingByte(text[cut]) {
		cut--
	}
	truncated := text[:cut]
	newLen := uchar.UTF16Len(truncated)

	out := spans[:0]
	for _, s := range spans {
		if s.Offset >= newLen {
			continue
		}
		if s.End() > newLen {
			s.Length = newLen - s.Offset
		}
		if s.Length > 0 {
			out = append(out, s)
		}
	}
	return truncated, out
}
