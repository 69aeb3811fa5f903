package span

// NormalizeNested implements the nested-allowed overlap policy from
// spec.md §4.6. Spans are walked in sorted order with a stack of
// currently-open parents. A span with out-of-range offset/length is
// dropped outright; otherwise it is kept iff it lies wholly inside the
// innermost still-open parent (if any), its kind differs from that
// parent's, and the parent is not Code, Pre, or PreCode. Partial overlaps —
// sibling spans that cross each other's boundaries — are always dropped.
func NormalizeNested(spans []Span) []Span {
	filtered := make([]Span, 0, len(spans))
	for _, s := range spans {
		if !s.Valid() {
			continue
		}
		filtered = append(filtered, s)
	}
	Sort(filtered)

	var kept []Span
	var stack []Span // innermost open span is stack[len(stack)-1]
	for _, s := range filtered {
		for len(stack) > 0 && stack[len(stack)-1].End() <= s.Offset {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			if s.Offset < parent.Offset || s.End() > parent.End() {
				continue // partial overlap with the innermost parent
			}
			if s.Kind == parent.Kind {
				continue
			}
			if parent.Kind == Code || parent.Kind == Pre || parent.Kind == PreCode {
				continue
			}
		}
		kept = append(kept, s)
		stack = append(stack, s)
	}
	return kept
}

// NormalizeDisjoint implements the no-overlap policy from spec.md §4.6:
// after sorting, a span is kept iff its offset is at or past the end of the
// last kept span. Used for auto-detected entities before offset remapping.
func NormalizeDisjoint(spans []Span) []Span {
	sorted := Sorted(spans)
	var kept []Span
	lastEnd := 0
	for _, s := range sorted {
		if s.Offset >= lastEnd {
			kept = append(kept, s)
			lastEnd = s.End()
		}
	}
	return kept
}

// MergeUserDetected merges sorted, internally-disjoint user-supplied spans
// with sorted, internally-disjoint auto-detected spans: any auto span that
// overlaps any user span is dropped, and the surviving auto spans are
// interleaved with the user spans in offset order (spec.md §4.6).
func MergeUserDetected(user, auto []Span) []Span {
	u := Sorted(user)
	a := Sorted(auto)

	result := make([]Span, 0, len(u)+len(a))
	result = append(result, u...)

	ui := 0
	for _, as := range a {
		for ui < len(u) && u[ui].End() <= as.Offset {
			ui++
		}
		if ui < len(u) && u[ui].Offset < as.End() {
			continue // overlaps a user span
		}
		result = append(result, as)
	}

	Sort(result)
	return result
}
