package markdownv2

import (
	"testing"

	"github.com/jholhewres/msgentity/pkg/msgentity/span"
)

func TestParseBoldWithNestedItalic(t *testing.T) {
	text, spans, err := Parse([]byte("*bold _it_ end*"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "bold it end" {
		t.Fatalf("text = %q, want %q", text, "bold it end")
	}
	want := []span.Span{
		{Kind: span.Bold, Offset: 0, Length: 11},
		{Kind: span.Italic, Offset: 5, Length: 2},
	}
	if len(spans) != len(want) {
		t.Fatalf("spans = %+v, want %+v", spans, want)
	}
	for i := range want {
		if spans[i].Kind != want[i].Kind || spans[i].Offset != want[i].Offset || spans[i].Length != want[i].Length {
			t.Fatalf("spans[%d] = %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestParseUnderline(t *testing.T) {
	text, spans, err := Parse([]byte("__under__"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "under" {
		t.Fatalf("text = %q", text)
	}
	if len(spans) != 1 || spans[0].Kind != span.Underline {
		t.Fatalf("spans = %+v", spans)
	}
}

func TestParseReservedCharUnescaped(t *testing.T) {
	_, _, err := Parse([]byte("1+1"), nil, nil)
	if err == nil {
		t.Fatal("expected ReservedChar error for unescaped '+'")
	}
}

func TestParseEscapedReservedChar(t *testing.T) {
	text, spans, err := Parse([]byte("1\\+1"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "1+1" {
		t.Fatalf("text = %q, want %q", text, "1+1")
	}
	if len(spans) != 0 {
		t.Fatalf("spans = %v, want none", spans)
	}
}

func TestParseRawCodeIgnoresReserved(t *testing.T) {
	text, spans, err := Parse([]byte("`a+b*c`"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "a+b*c" {
		t.Fatalf("text = %q, want %q", text, "a+b*c")
	}
	if len(spans) != 1 || spans[0].Kind != span.Code {
		t.Fatalf("spans = %+v", spans)
	}
}

func TestParseLinkEscapedParen(t *testing.T) {
	checkURL := func(raw string) (string, error) { return raw, nil }
	text, spans, err := Parse([]byte(`[site](https://example.com/\))`), nil, checkURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "site" {
		t.Fatalf("text = %q", text)
	}
	if len(spans) != 1 || spans[0].Argument != "https://example.com/)" {
		t.Fatalf("spans = %+v", spans)
	}
}

func TestParseUnclosedFence(t *testing.T) {
	_, _, err := Parse([]byte("```go\ncode"), nil, nil)
	if err == nil {
		t.Fatal("expected InvalidMarkup error for unclosed fence")
	}
}
