package entity

import (
	"errors"
	"testing"

	"github.com/jholhewres/msgentity/pkg/msgentity/span"
)

func TestFindEntitiesMentionAndHashtag(t *testing.T) {
	e := Engine{}
	spans := e.FindEntities("Hello @world check #news", false, false)
	want := []span.Span{
		{Kind: span.Mention, Offset: 6, Length: 6},
		{Kind: span.Hashtag, Offset: 19, Length: 5},
	}
	if len(spans) != len(want) {
		t.Fatalf("spans = %v, want %v", spans, want)
	}
	for i := range want {
		if spans[i].Kind != want[i].Kind || spans[i].Offset != want[i].Offset || spans[i].Length != want[i].Length {
			t.Fatalf("spans[%d] = %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestParseMarkdownV2Nesting(t *testing.T) {
	e := Engine{}
	text, spans, err := e.ParseMarkdownV2("*bold _it_ end*")
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
		t.Fatalf("spans = %v, want %v", spans, want)
	}
	for i := range want {
		if spans[i].Kind != want[i].Kind || spans[i].Offset != want[i].Offset || spans[i].Length != want[i].Length {
			t.Fatalf("spans[%d] = %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestParseHTMLNesting(t *testing.T) {
	e := Engine{}
	text, spans, err := e.ParseHTML("<b>A<i>B</i>C</b>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ABC" {
		t.Fatalf("text = %q, want %q", text, "ABC")
	}
	want := []span.Span{
		{Kind: span.Bold, Offset: 0, Length: 3},
		{Kind: span.Italic, Offset: 1, Length: 1},
	}
	if len(spans) != len(want) {
		t.Fatalf("spans = %v, want %v", spans, want)
	}
	for i := range want {
		if spans[i].Kind != want[i].Kind || spans[i].Offset != want[i].Offset || spans[i].Length != want[i].Length {
			t.Fatalf("spans[%d] = %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestFixFormattedText(t *testing.T) {
	e := Engine{}
	text, spans, err := e.FixFormattedText("  hi\r\nthere  ", nil, FixFormattedTextOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hi\nthere" {
		t.Fatalf("text = %q, want %q", text, "hi\nthere")
	}
	if len(spans) != 0 {
		t.Fatalf("spans = %v, want empty", spans)
	}
}

func TestGetFirstURLSkipsInternalLink(t *testing.T) {
	e := Engine{}
	spans := []span.Span{
		{Kind: span.TextUrl, Offset: 0, Length: 4, Argument: "tg://user?id=1"},
		{Kind: span.Url, Offset: 5, Length: 19},
	}
	got := e.GetFirstURL("link https://example.com", spans)
	if got != "https://example.com" {
		t.Fatalf("got = %q, want %q", got, "https://example.com")
	}
}

func TestGetFirstURLNoneReturnsEmpty(t *testing.T) {
	e := Engine{}
	got := e.GetFirstURL("no links here", nil)
	if got != "" {
		t.Fatalf("got = %q, want empty", got)
	}
}

func TestParseMarkdownV1Unclosed(t *testing.T) {
	e := Engine{}
	_, _, err := e.ParseMarkdownV1("*bold")
	if err == nil {
		t.Fatal("expected InvalidMarkup error for unclosed delimiter")
	}
	var target interface{ Error() string }
	if !errors.As(err, &target) {
		t.Fatalf("err = %v, want an error value", err)
	}
}
