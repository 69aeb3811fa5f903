// Package span implements the core data model of the text-entity engine:
// Span, FormattedText, and the ordering/overlap rules that bind them
// together (spec.md §3, §4.6).
package span

import "sort"

// Kind identifies what a Span marks up.
type Kind int

const (
	Mention Kind = iota
	Hashtag
	Cashtag
	BotCommand
	Url
	EmailAddress
	PhoneNumber
	Bold
	Italic
	Underline
	Strikethrough
	BlockQuote
	Code
	Pre
	PreCode
	TextUrl
	MentionName
)

func (k Kind) String() string {
	switch k {
	case Mention:
		return "Mention"
	case Hashtag:
		return "Hashtag"
	case Cashtag:
		return "Cashtag"
	case BotCommand:
		return "BotCommand"
	case Url:
		return "Url"
	case EmailAddress:
		return "EmailAddress"
	case PhoneNumber:
		return "PhoneNumber"
	case Bold:
		return "Bold"
	case Italic:
		return "Italic"
	case Underline:
		return "Underline"
	case Strikethrough:
		return "Strikethrough"
	case BlockQuote:
		return "BlockQuote"
	case Code:
		return "Code"
	case Pre:
		return "Pre"
	case PreCode:
		return "PreCode"
	case TextUrl:
		return "TextUrl"
	case MentionName:
		return "MentionName"
	default:
		return "Unknown"
	}
}

// Priority returns the fixed tie-breaking priority from spec.md §3. Lower
// values win ties in overlap resolution where the algorithm consults
// priority; insertion order decides otherwise.
func (k Kind) Priority() int {
	switch k {
	case BlockQuote:
		return 0
	case Code:
		return 10
	case Pre:
		return 11
	case PreCode, TextUrl, MentionName:
		return 49
	case Mention, Hashtag, BotCommand, Url, EmailAddress, Cashtag, PhoneNumber:
		return 50
	case Bold:
		return 90
	case Italic:
		return 91
	case Underline:
		return 92
	case Strikethrough:
		return 93
	default:
		return 100
	}
}

// IsHiddenData reports whether the span's visible text differs from its
// destination, per the GLOSSARY's "hidden-data span" definition. Such spans
// survive sanitation over whitespace-only content as long as that content
// contains at least one literal space (spec.md §4.7 step 4).
func (k Kind) IsHiddenData() bool {
	return k == TextUrl || k == MentionName
}

// MaxOffsetOrLength is the invariant bound from spec.md §3: offset ≤ 1e6,
// length ≤ 1e6.
const MaxOffsetOrLength = 1_000_000

// Span is a typed UTF-16 range over a FormattedText's Text.
type Span struct {
	Kind   Kind
	Offset int // UTF-16 code units from the start of Text
	Length int // UTF-16 code units

	// Argument is the URL for TextUrl, the language tag for PreCode,
	// otherwise empty.
	Argument string

	// UserID is used only for MentionName; zero otherwise.
	UserID int64
}

// End returns Offset+Length, the UTF-16 offset one past the span.
func (s Span) End() int { return s.Offset + s.Length }

// SameKind reports whether s and o are equal-type per spec.md §3.
func (s Span) SameKind(o Span) bool { return s.Kind == o.Kind }

// Valid reports whether s satisfies the basic bounds invariant from
// spec.md §3, independent of any particular text.
func (s Span) Valid() bool {
	return s.Offset >= 0 && s.Length > 0 &&
		s.Offset <= MaxOffsetOrLength && s.Length <= MaxOffsetOrLength
}

// FormattedText pairs a UTF-8 string with an ordered sequence of Spans.
type FormattedText struct {
	Text  string
	Spans []Span
}

// Less implements the composite sort key from spec.md §3: offset ascending,
// then length descending (so an outer span precedes an inner span that
// starts at the same offset).
func Less(a, b Span) bool {
	if a.Offset != b.Offset {
		return a.Offset < b.Offset
	}
	return a.Length > b.Length
}

// Sort orders spans in place by the canonical (offset asc, length desc) key,
// stably so equal keys preserve insertion order.
func Sort(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		return Less(spans[i], spans[j])
	})
}

// Sorted returns a sorted copy of spans, leaving the input untouched.
func Sorted(spans []Span) []Span {
	out := make([]Span, len(spans))
	copy(out, spans)
	Sort(out)
	return out
}
