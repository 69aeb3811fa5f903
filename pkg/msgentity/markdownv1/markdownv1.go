// Package markdownv1 implements the first-generation markdown-like dialect
// (spec.md §4.3): _italic_, *bold*, `code`, fenced ```pre/preCode```,
// [text](url) links, and backslash escapes. It is a stack-of-frames parser,
// not a CommonMark implementation — delimiters toggle open/closed and
// nesting is whatever falls out of that, matching the product's original
// permissive matcher rather than a grammar.
package markdownv1

import (
	"github.com/jholhewres/msgentity/pkg/msgentity/parseerr"
	"github.com/jholhewres/msgentity/pkg/msgentity/span"
	"github.com/jholhewres/msgentity/pkg/msgentity/uchar"
)

// ResolveUser recognizes a tg:user?id=NNN-style link and returns the user id.
type ResolveUser func(link string) (userID int64, ok bool)

// CheckURL canonicalizes raw, or rejects it.
type CheckURL func(raw string) (canonical string, err error)

type frame struct {
	kind       span.Kind
	argument   string
	utf16Start int
	byteOffset int
}

// Parse rewrites text into its plain-text form and the formatting spans the
// markup described, per spec.md §6's parse_markdown_v1.
func Parse(text []byte, resolveUser ResolveUser, checkURL CheckURL) (string, []span.Span, error) {
	p := &parser{text: text, resolveUser: resolveUser, checkURL: checkURL}
	if err := p.run(); err != nil {
		return "", nil, err
	}
	span.Sort(p.spans)
	return string(p.out), p.spans, nil
}

type parser struct {
	text        []byte
	resolveUser ResolveUser
	checkURL    CheckURL

	out    []byte
	cursor int // utf16 units written so far
	stack  []frame
	spans  []span.Span
}

func (p *parser) emitRune(r rune) {
	p.out = uchar.AppendUTF8(p.out, r)
	p.cursor += uchar.UTF16Units(r)
}

func (p *parser) emitBytes(b []byte) {
	i := 0
	for i < len(b) {
		r, next := uchar.NextCodePoint(b, i)
		p.out = uchar.AppendUTF8(p.out, r)
		p.cursor += uchar.UTF16Units(r)
		i = next
	}
}

func isEscapableV1(b byte) bool {
	return b == '_' || b == '*' || b == '`' || b == '['
}

func (p *parser) run() error {
	i := 0
	text := p.text
	for i < len(text) {
		b := text[i]
		switch {
		case b == '\\' && i+1 < len(text) && isEscapableV1(text[i+1]):
			p.emitRune(rune(text[i+1]))
			i += 2
		case b == '_':
			p.toggle(span.Italic, i)
			i++
		case b == '*':
			p.toggle(span.Bold, i)
			i++
		case b == '`':
			var err error
			i, err = p.handleBacktick(i)
			if err != nil {
				return err
			}
		case b == '[':
			var err error
			i, err = p.handleLink(i)
			if err != nil {
				return err
			}
		default:
			r, next := uchar.NextCodePoint(text, i)
			p.emitRune(r)
			i = next
		}
	}
	if len(p.stack) > 0 {
		return &parseerr.InvalidMarkup{ByteOffset: p.stack[len(p.stack)-1].byteOffset}
	}
	return nil
}

// toggle opens a frame of kind at byteOffset, or closes the matching open
// frame if one is already on top of the stack.
func (p *parser) toggle(kind span.Kind, byteOffset int) {
	if n := len(p.stack); n > 0 && p.stack[n-1].kind == kind {
		f := p.stack[n-1]
		p.stack = p.stack[:n-1]
		if p.cursor > f.utf16Start {
			p.spans = append(p.spans, span.Span{Kind: kind, Offset: f.utf16Start, Length: p.cursor - f.utf16Start, Argument: f.argument})
		}
		return
	}
	p.stack = append(p.stack, frame{kind: kind, utf16Start: p.cursor, byteOffset: byteOffset})
}

func (p *parser) handleBacktick(i int) (int, error) {
	text := p.text
	if i+3 <= len(text) && text[i] == '`' && text[i+1] == '`' && text[i+2] == '`' {
		return p.handleFence(i)
	}
	p.toggle(span.Code, i)
	return i + 1, nil
}

func (p *parser) handleFence(i int) (int, error) {
	text := p.text
	if n := len(p.stack); n > 0 && (p.stack[n-1].kind == span.Pre || p.stack[n-1].kind == span.PreCode) {
		f := p.stack[n-1]
		p.stack = p.stack[:n-1]
		if p.cursor > f.utf16Start {
			p.spans = append(p.spans, span.Span{Kind: f.kind, Offset: f.utf16Start, Length: p.cursor - f.utf16Start, Argument: f.argument})
		}
		return i + 3, nil
	}

	j := i + 3
	langStart := j
	for j < len(text) && isASCIIWordByteV1(text[j]) {
		j++
	}
	lang := string(text[langStart:j])
	if j < len(text) && text[j] == ' ' {
		j++
	}
	if j < len(text) && text[j] == '\n' {
		j++
	}
	kind := span.Pre
	if lang != "" {
		kind = span.PreCode
	}
	p.stack = append(p.stack, frame{kind: kind, argument: lang, utf16Start: p.cursor, byteOffset: i})
	return j, nil
}

func isASCIIWordByteV1(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// handleLink parses [text](url) or bare [text], emitting text and resolving
// url to either a MentionName or TextUrl span. An invalid url silently drops
// the span, per spec.md §4.3.
func (p *parser) handleLink(i int) (int, error) {
	text := p.text
	closeBracket := -1
	for j := i + 1; j < len(text); j++ {
		if text[j] == ']' {
			closeBracket = j
			break
		}
	}
	if closeBracket < 0 {
		return 0, &parseerr.InvalidMarkup{ByteOffset: i}
	}

	textStart := p.cursor
	p.emitBytes(text[i+1 : closeBracket])
	textEnd := p.cursor
	next := closeBracket + 1

	var url string
	if next < len(text) && text[next] == '(' {
		closeParen := -1
		for j := next + 1; j < len(text); j++ {
			if text[j] == ')' {
				closeParen = j
				break
			}
		}
		if closeParen < 0 {
			return 0, &parseerr.InvalidMarkup{ByteOffset: next}
		}
		url = string(text[next+1 : closeParen])
		next = closeParen + 1
	} else {
		url = string(text[i+1 : closeBracket])
	}

	if textEnd <= textStart {
		return next, nil
	}
	if p.resolveUser != nil {
		if userID, ok := p.resolveUser(url); ok {
			p.spans = append(p.spans, span.Span{Kind: span.MentionName, Offset: textStart, Length: textEnd - textStart, UserID: userID})
			return next, nil
		}
	}
	if p.checkURL != nil {
		if canonical, err := p.checkURL(url); err == nil {
			p.spans = append(p.spans, span.Span{Kind: span.TextUrl, Offset: textStart, Length: textEnd - textStart, Argument: canonical})
		}
	}
	return next, nil
}
