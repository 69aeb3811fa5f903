// Package markdownv2 implements the second-generation markdown-like dialect
// (spec.md §4.4): explicit reserved-character escaping, a stack of nested
// formatting frames, fenced pre/preCode with an optional language tag, and
// [text](url) links whose URL allows backslash-escaping any byte <= 126.
// Like markdownv1, this is a heuristic toggling parser, not CommonMark.
package markdownv2

import (
	"strings"

	"github.com/jholhewres/msgentity/pkg/msgentity/markdownv1"
	"github.com/jholhewres/msgentity/pkg/msgentity/parseerr"
	"github.com/jholhewres/msgentity/pkg/msgentity/span"
	"github.com/jholhewres/msgentity/pkg/msgentity/uchar"
)

// ResolveUser and CheckURL are the same injected collaborators markdownv1
// uses (spec.md §6).
type ResolveUser = markdownv1.ResolveUser
type CheckURL = markdownv1.CheckURL

const reservedChars = "_*[]()~`>#+-=|{}.!"

func isReserved(b byte) bool {
	return strings.IndexByte(reservedChars, b) >= 0
}

type frame struct {
	kind       span.Kind
	argument   string
	utf16Start int
	byteOffset int
	isLink     bool
}

// Parse rewrites text into its plain form plus the spans described by the
// markup, per spec.md §6's parse_markdown_v2.
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
	cursor int
	stack  []frame
	spans  []span.Span
}

func (p *parser) emitRune(r rune) {
	p.out = uchar.AppendUTF8(p.out, r)
	p.cursor += uchar.UTF16Units(r)
}

func (p *parser) run() error {
	i := 0
	text := p.text
	for i < len(text) {
		if n := len(p.stack); n > 0 && isRaw(p.stack[n-1].kind) {
			var err error
			i, err = p.scanRaw(i)
			if err != nil {
				return err
			}
			continue
		}

		b := text[i]
		switch {
		case b == '\\' && i+1 < len(text):
			p.emitRune(rune(text[i+1]))
			i += 2
		case b == '*':
			p.toggle(span.Bold, i)
			i++
		case b == '_':
			i = p.handleUnderscore(i)
		case b == '~':
			p.toggle(span.Strikethrough, i)
			i++
		case b == '`':
			var err error
			i, err = p.handleBacktick(i)
			if err != nil {
				return err
			}
		case b == '[':
			p.stack = append(p.stack, frame{isLink: true, utf16Start: p.cursor, byteOffset: i})
			i++
		case b == ']':
			var err error
			i, err = p.handleCloseBracket(i)
			if err != nil {
				return err
			}
		case isReserved(b):
			return &parseerr.ReservedChar{Char: rune(b), ByteOffset: i}
		default:
			r, next := uchar.NextCodePoint(text, i)
			p.emitRune(r)
			i = next
		}
	}
	if len(p.stack) > 0 {
		f := p.stack[len(p.stack)-1]
		return &parseerr.InvalidMarkup{ByteOffset: f.byteOffset, Kind: frameKindName(f)}
	}
	return nil
}

func isRaw(k span.Kind) bool {
	return k == span.Code || k == span.Pre || k == span.PreCode
}

func frameKindName(f frame) string {
	if f.isLink {
		return "link"
	}
	return f.kind.String()
}

func (p *parser) toggle(kind span.Kind, byteOffset int) {
	if n := len(p.stack); n > 0 && !p.stack[n-1].isLink && p.stack[n-1].kind == kind {
		f := p.stack[n-1]
		p.stack = p.stack[:n-1]
		if p.cursor > f.utf16Start {
			p.spans = append(p.spans, span.Span{Kind: kind, Offset: f.utf16Start, Length: p.cursor - f.utf16Start, Argument: f.argument})
		}
		return
	}
	p.stack = append(p.stack, frame{kind: kind, utf16Start: p.cursor, byteOffset: byteOffset})
}

// handleUnderscore disambiguates Italic (_) from Underline (__) by looking
// ahead at both open and close, per spec.md §4.4.
func (p *parser) handleUnderscore(i int) int {
	text := p.text
	if n := len(p.stack); n > 0 && !p.stack[n-1].isLink {
		switch p.stack[n-1].kind {
		case span.Underline:
			if i+1 < len(text) && text[i+1] == '_' {
				f := p.stack[n-1]
				p.stack = p.stack[:n-1]
				if p.cursor > f.utf16Start {
					p.spans = append(p.spans, span.Span{Kind: span.Underline, Offset: f.utf16Start, Length: p.cursor - f.utf16Start})
				}
				return i + 2
			}
			p.stack = append(p.stack, frame{kind: span.Italic, utf16Start: p.cursor, byteOffset: i})
			return i + 1
		case span.Italic:
			f := p.stack[n-1]
			p.stack = p.stack[:n-1]
			if p.cursor > f.utf16Start {
				p.spans = append(p.spans, span.Span{Kind: span.Italic, Offset: f.utf16Start, Length: p.cursor - f.utf16Start})
			}
			return i + 1
		}
	}
	if i+1 < len(text) && text[i+1] == '_' {
		p.stack = append(p.stack, frame{kind: span.Underline, utf16Start: p.cursor, byteOffset: i})
		return i + 2
	}
	p.stack = append(p.stack, frame{kind: span.Italic, utf16Start: p.cursor, byteOffset: i})
	return i + 1
}

func (p *parser) handleBacktick(i int) (int, error) {
	text := p.text
	if i+3 <= len(text) && text[i] == '`' && text[i+1] == '`' && text[i+2] == '`' {
		j := i + 3
		langStart := j
		for j < len(text) && isASCIIWordByteV2(text[j]) {
			j++
		}
		lang := string(text[langStart:j])
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
	p.toggle(span.Code, i)
	return i + 1, nil
}

func isASCIIWordByteV2(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// scanRaw copies verbatim bytes while a Code/Pre/PreCode frame is open,
// where only the backtick delimiter is reserved (spec.md §4.4).
func (p *parser) scanRaw(i int) (int, error) {
	text := p.text
	n := len(p.stack)
	f := p.stack[n-1]
	if f.kind == span.Code {
		if text[i] == '`' {
			p.stack = p.stack[:n-1]
			if p.cursor > f.utf16Start {
				p.spans = append(p.spans, span.Span{Kind: span.Code, Offset: f.utf16Start, Length: p.cursor - f.utf16Start})
			}
			return i + 1, nil
		}
		r, next := uchar.NextCodePoint(text, i)
		p.emitRune(r)
		return next, nil
	}
	if i+3 <= len(text) && text[i] == '`' && text[i+1] == '`' && text[i+2] == '`' {
		p.stack = p.stack[:n-1]
		if p.cursor > f.utf16Start {
			p.spans = append(p.spans, span.Span{Kind: f.kind, Offset: f.utf16Start, Length: p.cursor - f.utf16Start, Argument: f.argument})
		}
		return i + 3, nil
	}
	r, next := uchar.NextCodePoint(text, i)
	p.emitRune(r)
	return next, nil
}

func (p *parser) handleCloseBracket(i int) (int, error) {
	n := len(p.stack)
	if n == 0 || !p.stack[n-1].isLink {
		return 0, &parseerr.ReservedChar{Char: ']', ByteOffset: i}
	}
	f := p.stack[n-1]
	p.stack = p.stack[:n-1]
	textStart, textEnd := f.utf16Start, p.cursor

	text := p.text
	next := i + 1
	if next >= len(text) || text[next] != '(' {
		return next, nil
	}
	urlStart := next + 1
	j := urlStart
	var raw []byte
	for j < len(text) {
		if text[j] == ')' {
			break
		}
		if text[j] == '\\' && j+1 < len(text) && text[j+1] <= 126 {
			raw = append(raw, text[j+1])
			j += 2
			continue
		}
		raw = append(raw, text[j])
		j++
	}
	if j >= len(text) {
		return 0, &parseerr.InvalidMarkup{ByteOffset: next}
	}
	url := string(raw)
	end := j + 1

	if textEnd <= textStart {
		return end, nil
	}
	if p.resolveUser != nil {
		if userID, ok := p.resolveUser(url); ok {
			p.spans = append(p.spans, span.Span{Kind: span.MentionName, Offset: textStart, Length: textEnd - textStart, UserID: userID})
			return end, nil
		}
	}
	if p.checkURL != nil {
		if canonical, err := p.checkURL(url); err == nil {
			p.spans = append(p.spans, span.Span{Kind: span.TextUrl, Offset: textStart, Length: textEnd - textStart, Argument: canonical})
		}
	}
	return end, nil
}
