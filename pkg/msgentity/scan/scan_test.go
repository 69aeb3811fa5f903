package scan

import (
	"strings"
	"testing"

	"github.com/jholhewres/msgentity/pkg/msgentity/span"
)

func matchEquals(t *testing.T, got []Match, want []Match) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d matches %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i].Kind != want[i].Kind || got[i].Start != want[i].Start || got[i].End != want[i].End {
			t.Errorf("match %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFindAllMentionAndHashtag(t *testing.T) {
	text := []byte("Hello @world check #news")
	got := FindAll(text, Options{})
	matchEquals(t, got, []Match{
		{Kind: span.Mention, Start: 6, End: 12},
		{Kind: span.Hashtag, Start: 19, End: 24},
	})
}

func TestFindAllURLRejectsNearMissScheme(t *testing.T) {
	text := []byte("visit example.com/path and http://shttp.org")
	got := FindAll(text, Options{})
	matchEquals(t, got, []Match{
		{Kind: span.Url, Start: 6, End: 22},
	})
}

func TestFindAllEmail(t *testing.T) {
	text := []byte("contact: user@mail.example")
	got := FindAll(text, Options{})
	matchEquals(t, got, []Match{
		{Kind: span.EmailAddress, Start: 9, End: 26},
	})
}

func TestHashtagTruncatesAt256(t *testing.T) {
	tag := strings.Repeat("a", 256)
	text := []byte("#" + tag)
	got := FindHashtags(text)
	if len(got) != 1 {
		t.Fatalf("got %d hashtags, want 1", len(got))
	}
	if length := got[0].End - got[0].Start - 1; length != 255 {
		t.Errorf("truncated tag length = %d, want 255", length)
	}
}

func TestHashtagUnder256NotTruncated(t *testing.T) {
	tag := strings.Repeat("a", 255)
	text := []byte("#" + tag)
	got := FindHashtags(text)
	if len(got) != 1 || got[0].End-got[0].Start-1 != 255 {
		t.Fatalf("got %v, want one 255-char tag", got)
	}
}

func TestHashtagRejectsDigitsOnly(t *testing.T) {
	got := FindHashtags([]byte("#12345"))
	if len(got) != 0 {
		t.Errorf("got %v, want no hashtags for digits-only tag", got)
	}
}

func TestBotCommandLongerThan64Rejected(t *testing.T) {
	cmd := strings.Repeat("a", 65)
	got := FindBotCommands([]byte("/" + cmd))
	if len(got) != 0 {
		t.Errorf("got %v, want command over 64 chars rejected", got)
	}
}

func TestBotCommandWithBot(t *testing.T) {
	got := FindBotCommands([]byte("/start@mybot now"))
	if len(got) != 1 || got[0].Start != 0 || got[0].End != 12 {
		t.Errorf("got %v, want one command spanning /start@mybot", got)
	}
}

func TestMentionLengthBoundaries(t *testing.T) {
	if got := FindMentions([]byte("@ab ")); len(got) != 1 {
		t.Errorf("2-char mention: got %v, want 1 match", got)
	}
	if got := FindMentions([]byte("@a ")); len(got) != 0 {
		t.Errorf("1-char mention: got %v, want 0 matches", got)
	}
	name32 := strings.Repeat("a", 32)
	if got := FindMentions([]byte("@" + name32 + " ")); len(got) != 1 {
		t.Errorf("32-char mention: got %v, want 1 match", got)
	}
	name33 := strings.Repeat("a", 33)
	if got := FindMentions([]byte("@" + name33 + " ")); len(got) != 0 {
		t.Errorf("33-char mention: got %v, want 0 matches", got)
	}
}

func TestShortMentionWhitelist(t *testing.T) {
	if got := FindMentions([]byte("@vote ")); len(got) != 1 {
		t.Errorf("whitelisted short mention: got %v, want 1 match", got)
	}
	if got := FindMentions([]byte("@abcd ")); len(got) != 0 {
		t.Errorf("non-whitelisted short mention: got %v, want 0 matches", got)
	}
}

func TestURLPortBoundaries(t *testing.T) {
	got := FindURLs([]byte("visit example.com:65535/x"))
	if len(got) != 1 || got[0].End != len("visit example.com:65535/x") {
		t.Fatalf("port 65535: got %v", got)
	}
	got = FindURLs([]byte("visit example.com:65536/x"))
	if len(got) != 1 {
		t.Fatalf("got %v", got)
	}
	if string([]byte("visit example.com:65536/x")[got[0].Start:got[0].End]) == "example.com:65536/x" {
		t.Errorf("port 65536 should not be included in the match")
	}
	got = FindURLs([]byte("visit example.com:00080/x"))
	if len(got) != 1 {
		t.Fatalf("got %v", got)
	}
	text := []byte("visit example.com:00080/x")
	if string(text[got[0].Start:got[0].End]) == "example.com:00080/x" {
		t.Errorf("leading-zero port should not be included in the match")
	}
}

func TestCashtag(t *testing.T) {
	got := FindAll([]byte("buy $ABCD now"), Options{})
	matchEquals(t, got, []Match{{Kind: span.Cashtag, Start: 4, End: 9}})
}
