package sanitize

import (
	"testing"

	"github.com/jholhewres/msgentity/pkg/msgentity/span"
)

func TestFixStripsCRAndTrims(t *testing.T) {
	text, spans, err := Fix("  hi\r\nthere  ", nil, Options{})
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

func TestFixEmptyRejectedByDefault(t *testing.T) {
	_, _, err := Fix("   ", nil, Options{})
	if err == nil {
		t.Fatal("expected error for empty-after-sanitation text")
	}
}

func TestFixAllowEmpty(t *testing.T) {
	text, spans, err := Fix("   ", nil, Options{AllowEmpty: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Fatalf("text = %q, want empty", text)
	}
	if len(spans) != 0 {
		t.Fatalf("spans = %v, want empty", spans)
	}
}

func TestFixDropsWhitespaceOnlySpan(t *testing.T) {
	text, spans, err := Fix("a   b", []span.Span{{Kind: span.Bold, Offset: 1, Length: 3}}, Options{SkipNewEntities: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "a   b" {
		t.Fatalf("text = %q", text)
	}
	if len(spans) != 0 {
		t.Fatalf("spans = %v, want dropped whitespace-only span", spans)
	}
}

func TestFixKeepsHiddenDataSpanWithSpace(t *testing.T) {
	text, spans, err := Fix("a b c", []span.Span{{Kind: span.TextUrl, Offset: 1, Length: 3, Argument: "https://example.com"}}, Options{SkipNewEntities: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("spans = %v, want 1 hidden-data span kept", spans)
	}
	_ = text
}

func TestFixForDraftSkipsTrim(t *testing.T) {
	text, _, err := Fix("  hi  ", nil, Options{ForDraft: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "  hi  " {
		t.Fatalf("text = %q, want untouched for draft mode", text)
	}
}

func TestFixTruncatesToByteLimit(t *testing.T) {
	big := make([]byte, MaxTextBytes+100)
	for i := range big {
		big[i] = 'a'
	}
	text, _, err := Fix(string(big), nil, Options{SkipNewEntities: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(text) > MaxTextBytes {
		t.Fatalf("len(text) = %d, want <= %d", len(text), MaxTextBytes)
	}
}

func TestFixRescanAddsEntities(t *testing.T) {
	text, spans, err := Fix("visit @gopher now", nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "visit @gopher now" {
		t.Fatalf("text = %q", text)
	}
	found := false
	for _, s := range spans {
		if s.Kind == span.Mention {
			found = true
		}
	}
	if !found {
		t.Fatalf("spans = %v, want a Mention from re-scan", spans)
	}
}
