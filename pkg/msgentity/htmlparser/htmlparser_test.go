package htmlparser

import (
	"testing"

	"github.com/jholhewres/msgentity/pkg/msgentity/span"
)

func TestParseNestedTags(t *testing.T) {
	text, spans, err := Parse([]byte("<b>A<i>B</i>C</b>"), nil)
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
		t.Fatalf("spans = %+v, want %+v", spans, want)
	}
	for i := range want {
		if spans[i].Kind != want[i].Kind || spans[i].Offset != want[i].Offset || spans[i].Length != want[i].Length {
			t.Fatalf("spans[%d] = %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestParseUnknownTagRejected(t *testing.T) {
	_, _, err := Parse([]byte("<script>x</script>"), nil)
	if err == nil {
		t.Fatal("expected InvalidHTML error for unknown tag")
	}
}

func TestParseUnclosedTagRejected(t *testing.T) {
	_, _, err := Parse([]byte("<b>oops"), nil)
	if err == nil {
		t.Fatal("expected InvalidHTML error for unclosed tag")
	}
}

func TestParsePreCodeMerge(t *testing.T) {
	text, spans, err := Parse([]byte(`<pre><code class="language-go">fmt.Println()</code></pre>`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "fmt.Println()" {
		t.Fatalf("text = %q", text)
	}
	if len(spans) != 1 || spans[0].Kind != span.PreCode || spans[0].Argument != "go" {
		t.Fatalf("spans = %+v, want single merged PreCode span with language go", spans)
	}
}

func TestParseAnchorResolvesURL(t *testing.T) {
	checkURL := func(raw string) (string, error) { return raw, nil }
	text, spans, err := Parse([]byte(`<a href="https://example.com">site</a>`), checkURL)
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

func TestParseNamedEntities(t *testing.T) {
	text, _, err := Parse([]byte("A &amp; B &lt;tag&gt;"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "A & B <tag>" {
		t.Fatalf("text = %q, want %q", text, "A & B <tag>")
	}
}

func TestParseSurrogateNumericRefFails(t *testing.T) {
	_, _, err := Parse([]byte("&#xD800;"), nil)
	if err == nil {
		t.Fatal("expected InvalidUtf8After error for surrogate reference")
	}
}
