package markdownv1

import (
	"testing"

	"github.com/jholhewres/msgentity/pkg/msgentity/span"
)

func TestParseItalicAndBold(t *testing.T) {
	text, spans, err := Parse([]byte("_hi_ *there*"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hi there" {
		t.Fatalf("text = %q, want %q", text, "hi there")
	}
	if len(spans) != 2 {
		t.Fatalf("spans = %v, want 2", spans)
	}
}

func TestParseUnclosedFails(t *testing.T) {
	_, _, err := Parse([]byte("*bold"), nil, nil)
	if err == nil {
		t.Fatal("expected InvalidMarkup error")
	}
}

func TestParseCodeFence(t *testing.T) {
	text, spans, err := Parse([]byte("```go\nfmt.Println()\n```"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "fmt.Println()\n" {
		t.Fatalf("text = %q", text)
	}
	if len(spans) != 1 || spans[0].Kind != span.PreCode || spans[0].Argument != "go" {
		t.Fatalf("spans = %+v", spans)
	}
}

func TestParseLinkResolvesURL(t *testing.T) {
	checkURL := func(raw string) (string, error) { return raw, nil }
	text, spans, err := Parse([]byte("[site](https://example.com)"), nil, checkURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "site" {
		t.Fatalf("text = %q", text)
	}
	if len(spans) != 1 || spans[0].Kind != span.TextUrl || spans[0].Argument != "https://example.com" {
		t.Fatalf("spans = %+v", spans)
	}
}

func TestParseLinkDropsInvalidURL(t *testing.T) {
	checkURL := func(raw string) (string, error) { return "", errInvalid }
	text, spans, err := Parse([]byte("[site](bad)"), nil, checkURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "site" {
		t.Fatalf("text = %q", text)
	}
	if len(spans) != 0 {
		t.Fatalf("spans = %v, want dropped", spans)
	}
}

func TestParseMentionName(t *testing.T) {
	resolveUser := func(link string) (int64, bool) {
		if link == "tg:user?id=42" {
			return 42, true
		}
		return 0, false
	}
	text, spans, err := Parse([]byte("[Bob](tg:user?id=42)"), resolveUser, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Bob" {
		t.Fatalf("text = %q", text)
	}
	if len(spans) != 1 || spans[0].Kind != span.MentionName || spans[0].UserID != 42 {
		t.Fatalf("spans = %+v", spans)
	}
}

var errInvalid = simpleErr("invalid url")

type simpleErr string

func (e simpleErr) Error() string { return string(e) }
