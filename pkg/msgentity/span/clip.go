package span

import "github.com/jholhewres/msgentity/pkg/msgentity/uchar"

// Clip slices ft to the UTF-16 range [start, end), adjusting every span so
// none is left pointing outside the new text: spans entirely outside the
// range are dropped, spans crossing a boundary are clamped to it, and every
// surviving span's Offset is shifted to be relative to start. Grounded on
// the clip/merge bookkeeping style other chat-formatting code uses to
// paginate long messages without corrupting embedded entities.
func Clip(ft FormattedText, start, end int) FormattedText {
	table := uchar.UTF16OffsetTable([]byte(ft.Text))
	byteAt := func(u int) int {
		for i, v := range table {
			if v == u {
				return i
			}
		}
		return len(ft.Text)
	}

	clippedText := ft.Text[byteAt(start):byteAt(end)]

	out := make([]Span, 0, len(ft.Spans))
	for _, s := range ft.Spans {
		if s.End() <= start || s.Offset >= end {
			continue
		}
		clipped := s
		if clipped.Offset < start {
			clipped.Offset = start
		}
		if clipped.End() > end {
			clipped.Length = end - clipped.Offset
		} else {
			clipped.Length = s.End() - clipped.Offset
		}
		clipped.Offset -= start
		if clipped.Length > 0 {
			out = append(out, clipped)
		}
	}
	return FormattedText{Text: clippedText, Spans: out}
}
