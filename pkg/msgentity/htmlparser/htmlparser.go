// Package htmlparser implements the restricted HTML dialect (spec.md §4.5):
// a fixed tag whitelist, href/class attribute extraction, limited entity
// decoding, and the pre/code merge rule. It tokenizes with
// golang.org/x/net/html — this is deliberately not a general HTML parser,
// just enough structure to walk a whitelisted tag tree.
package htmlparser

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/jholhewres/msgentity/pkg/msgentity/markdownv1"
	"github.com/jholhewres/msgentity/pkg/msgentity/parseerr"
	"github.com/jholhewres/msgentity/pkg/msgentity/span"
	"github.com/jholhewres/msgentity/pkg/msgentity/uchar"
)

// CheckURL is the same injected collaborator the markdown parsers use.
type CheckURL = markdownv1.CheckURL

type frame struct {
	kind       span.Kind
	tagName    string
	argument   string
	utf16Start int
	byteOffset int
}

// Parse rewrites text into its plain form plus the spans the whitelisted
// tags described, per spec.md §6's parse_html.
func Parse(text []byte, checkURL CheckURL) (string, []span.Span, error) {
	p := &parser{checkURL: checkURL}
	if err := p.run(text); err != nil {
		return "", nil, err
	}
	for i := range p.spans {
		if p.spans[i].Kind == span.Code {
			p.spans[i].Argument = ""
		}
	}
	span.Sort(p.spans)
	return string(p.out), p.spans, nil
}

type parser struct {
	checkURL CheckURL

	out    []byte
	cursor int
	stack  []frame
	spans  []span.Span
}

func (p *parser) emit(s []byte) {
	i := 0
	for i < len(s) {
		r, next := uchar.NextCodePoint(s, i)
		p.out = uchar.AppendUTF8(p.out, r)
		p.cursor += uchar.UTF16Units(r)
		i = next
	}
}

var tagKinds = map[string]span.Kind{
	"b": span.Bold, "strong": span.Bold,
	"i": span.Italic, "em": span.Italic,
	"s": span.Strikethrough, "strike": span.Strikethrough, "del": span.Strikethrough,
	"u": span.Underline, "ins": span.Underline,
	"pre":  span.Pre,
	"code": span.Code,
	"a":    span.TextUrl,
}

func (p *parser) run(text []byte) error {
	z := html.NewTokenizer(bytes.NewReader(text))
	offset := 0
	for {
		tt := z.Next()
		raw := z.Raw()
		tokenStart := offset
		offset += len(raw)

		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				if len(p.stack) > 0 {
					return &parseerr.InvalidHTML{Reason: "unclosed tag", ByteOffset: p.stack[len(p.stack)-1].byteOffset}
				}
				return nil
			}
			return &parseerr.InvalidHTML{Reason: z.Err().Error(), ByteOffset: tokenStart}

		case html.TextToken:
			decoded, err := decodeEntities(raw, tokenStart)
			if err != nil {
				return err
			}
			p.emit([]byte(decoded))

		case html.StartTagToken, html.SelfClosingTagToken:
			token := z.Token()
			name := strings.ToLower(token.Data)
			kind, ok := tagKinds[name]
			if !ok {
				return &parseerr.InvalidHTML{Reason: "unknown tag: " + name, ByteOffset: tokenStart}
			}
			argument := ""
			if name == "code" {
				if cls := attrVal(token, "class"); strings.HasPrefix(cls, "language-") {
					argument = strings.TrimPrefix(cls, "language-")
				}
			}
			f := frame{kind: kind, tagName: name, argument: argument, utf16Start: p.cursor, byteOffset: tokenStart}
			if name == "a" {
				f.argument = attrVal(token, "href")
			}
			p.stack = append(p.stack, f)
			if tt == html.SelfClosingTagToken {
				p.closeTop()
			}

		case html.EndTagToken:
			token := z.Token()
			name := strings.ToLower(token.Data)
			if len(p.stack) == 0 || p.stack[len(p.stack)-1].tagName != name {
				return &parseerr.InvalidHTML{Reason: "unmatched close tag: " + name, ByteOffset: tokenStart}
			}
			p.closeTop()

		case html.CommentToken, html.DoctypeToken:
			// not part of the tag whitelist; ignored rather than rejected.
		}
	}
}

func attrVal(t html.Token, key string) string {
	for _, a := range t.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func (p *parser) closeTop() {
	n := len(p.stack)
	f := p.stack[n-1]
	p.stack = p.stack[:n-1]
	start, end := f.utf16Start, p.cursor
	if end <= start {
		return
	}

	if f.kind == span.Pre || f.kind == span.Code {
		other := span.Code
		if f.kind == span.Code {
			other = span.Pre
		}
		if p.tryMergeCode(other, f.kind, start, end, f.argument) {
			return
		}
	}

	if f.kind == span.TextUrl {
		if p.checkURL == nil {
			return
		}
		canonical, err := p.checkURL(f.argument)
		if err != nil {
			return
		}
		p.spans = append(p.spans, span.Span{Kind: span.TextUrl, Offset: start, Length: end - start, Argument: canonical})
		return
	}

	p.spans = append(p.spans, span.Span{Kind: f.kind, Offset: start, Length: end - start, Argument: f.argument})
}

// tryMergeCode implements the pre/code merge rule (spec.md §4.5): if a
// Pre/Code frame's content is exactly one span of the other kind spanning
// the identical range, the pair collapses into a single PreCode span.
func (p *parser) tryMergeCode(other, own span.Kind, start, end int, ownArgument string) bool {
	for i := len(p.spans) - 1; i >= 0; i-- {
		s := p.spans[i]
		if s.Offset < start {
			break
		}
		if s.Kind == other && s.Offset == start && s.Length == end-start {
			lang := ownArgument
			if own == span.Pre {
				lang = s.Argument
			}
			p.spans = append(p.spans[:i], p.spans[i+1:]...)
			p.spans = append(p.spans, span.Span{Kind: span.PreCode, Offset: start, Length: end - start, Argument: lang})
			return true
		}
	}
	return false
}
