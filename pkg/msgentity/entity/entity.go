// Package entity wires the scanning, parsing, and sanitizing packages
// behind the small set of pure functions spec.md §6 exposes to
// collaborators: FindEntities, ParseMarkdownV1, ParseMarkdownV2, ParseHTML,
// FixFormattedText, GetFirstURL. Engine itself holds no state beyond the two
// injected collaborator functions — every method is pure given its inputs.
package entity

import (
	"strings"

	"github.com/jholhewres/msgentity/pkg/msgentity/htmlparser"
	"github.com/jholhewres/msgentity/pkg/msgentity/markdownv1"
	"github.com/jholhewres/msgentity/pkg/msgentity/markdownv2"
	"github.com/jholhewres/msgentity/pkg/msgentity/sanitize"
	"github.com/jholhewres/msgentity/pkg/msgentity/scan"
	"github.com/jholhewres/msgentity/pkg/msgentity/span"
	"github.com/jholhewres/msgentity/pkg/msgentity/uchar"
)

// ResolveUser recognizes a tg:user?id=NNN-style link and returns the user id.
type ResolveUser = markdownv1.ResolveUser

// CheckURL canonicalizes raw, or rejects it.
type CheckURL = markdownv1.CheckURL

// Engine is the engine's public entry point. CheckURL and ResolveUser are
// the collaborator functions spec.md §6 requires the core to call rather
// than implement itself; a zero-value Engine works but treats every link
// and mention as unresolvable.
type Engine struct {
	CheckURL    CheckURL
	ResolveUser ResolveUser
}

// FindEntities runs the lexical scanners over text and returns disjoint
// spans in UTF-16 offsets (spec.md §6's find_entities). It never fails.
func (e Engine) FindEntities(text string, skipBotCommands, onlyURLs bool) []span.Span {
	data := []byte(text)
	matches := scan.FindAll(data, scan.Options{SkipBotCommands: skipBotCommands, OnlyURLs: onlyURLs})
	if len(matches) == 0 {
		return nil
	}
	table := uchar.UTF16OffsetTable(data)
	spans := make([]span.Span, len(matches))
	for i, m := range matches {
		spans[i] = span.Span{Kind: m.Kind, Offset: table[m.Start], Length: table[m.End] - table[m.Start], Argument: m.Argument}
	}
	return spans
}

// ParseMarkdownV1 rewrites text per the markdown-v1 dialect (spec.md §4.3).
func (e Engine) ParseMarkdownV1(text string) (string, []span.Span, error) {
	return markdownv1.Parse([]byte(text), e.ResolveUser, e.CheckURL)
}

// ParseMarkdownV2 rewrites text per the markdown-v2 dialect (spec.md §4.4).
func (e Engine) ParseMarkdownV2(text string) (string, []span.Span, error) {
	return markdownv2.Parse([]byte(text), e.ResolveUser, e.CheckURL)
}

// ParseHTML rewrites text per the restricted HTML dialect (spec.md §4.5).
func (e Engine) ParseHTML(text string) (string, []span.Span, error) {
	return htmlparser.Parse([]byte(text), e.CheckURL)
}

// FixFormattedTextOptions is the flag set spec.md §4.7 names.
type FixFormattedTextOptions = sanitize.Options

// FixFormattedText runs the finalizer pipeline (spec.md §4.7).
func (e Engine) FixFormattedText(text string, spans []span.Span, opts FixFormattedTextOptions) (string, []span.Span, error) {
	return sanitize.Fix(text, spans, opts)
}

// GetFirstURL returns the first non-internal URL referenced by text or
// spans, or "" if there is none (spec.md §6). "Non-internal" excludes
// tg://-scheme deep links and any span already classified as an
// EmailAddress — neither is something a caller should try to open as a web
// preview (spec.md §7 supplemented feature).
func (e Engine) GetFirstURL(text string, spans []span.Span) string {
	table := uchar.UTF16OffsetTable([]byte(text))
	byteAt := func(u int) int {
		for i, v := range table {
			if v == u {
				return i
			}
		}
		return len(text)
	}

	sorted := span.Sorted(spans)
	for _, s := range sorted {
		switch s.Kind {
		case span.Url:
			raw := text[byteAt(s.Offset):byteAt(s.End())]
			if isInternalURL(raw) {
				continue
			}
			return raw
		case span.TextUrl:
			if s.Argument == "" || isInternalURL(s.Argument) {
				continue
			}
			return s.Argument
		case span.EmailAddress:
			continue
		}
	}
	return ""
}

func isInternalURL(raw string) bool {
	return strings.HasPrefix(raw, "tg://")
}
