package scan

import "github.com/jholhewres/msgentity/pkg/msgentity/span"

// Match is a scanner result: a byte-offset range (not yet remapped to
// UTF-16) tagged with the span kind it represents. entity.FindEntities
// converts a slice of these into span.Span once the UTF-16 offset table for
// the whole text is available (spec.md §4.2's composition step).
type Match struct {
	Kind     span.Kind
	Start    int
	End      int
	Argument string
}

// Options controls which scanners FindAll runs (spec.md §6's
// find_entities(text, skip_bot_commands, only_urls)).
type Options struct {
	SkipBotCommands bool
	OnlyURLs        bool
}

// FindAll runs the lexical scanners over data and returns byte-offset
// matches, sorted and filtered to be non-overlapping (spec.md §4.2
// composition: sort by offset asc/length desc, then remove_intersecting_entities).
func FindAll(data []byte, opts Options) []Match {
	urls := classifyURLCandidates(data, scanURLCandidates(data))
	var matches []Match
	matches = append(matches, urls...)
	if !opts.OnlyURLs {
		matches = append(matches, FindMentions(data)...)
		matches = append(matches, FindHashtags(data)...)
		matches = append(matches, FindCashtags(data)...)
		if !opts.SkipBotCommands {
			matches = append(matches, FindBotCommands(data)...)
		}
	}
	if len(matches) == 0 {
		return nil
	}

	spans := make([]span.Span, len(matches))
	for i, m := range matches {
		spans[i] = span.Span{Kind: m.Kind, Offset: m.Start, Length: m.End - m.Start, Argument: m.Argument}
	}
	spans = span.NormalizeDisjoint(spans)

	out := make([]Match, len(spans))
	for i, s := range spans {
		out[i] = Match{Kind: s.Kind, Start: s.Offset, End: s.Offset + s.Length, Argument: s.Argument}
	}
	return out
}
