package scan

import (
	"strings"

	"github.com/jholhewres/msgentity/pkg/msgentity/span"
	"github.com/jholhewres/msgentity/pkg/msgentity/tld"
	"github.com/jholhewres/msgentity/pkg/msgentity/uchar"
)

// FindMentions recognizes @name spans (spec.md §4.2). name is 2-32 ASCII
// word characters; short names (length <= 4) must be in the fixed
// short-mention whitelist or they are dropped.
func FindMentions(data []byte) []Match {
	var out []Match
	for i := 0; i < len(data); i++ {
		if data[i] != '@' {
			continue
		}
		prev, _ := uchar.PrevCodePoint(data, i)
		if uchar.IsWordChar(prev) {
			continue
		}
		j := i + 1
		for j < len(data) && isASCIIWordByte(data[j]) {
			j++
		}
		count := j - (i + 1)
		if count < 2 || count > 32 {
			continue
		}
		next, _ := uchar.NextCodePoint(data, j)
		if uchar.IsWordChar(next) {
			continue
		}
		if count <= 4 {
			name := strings.ToLower(string(data[i+1 : j]))
			if !tld.IsWhitelistedShortMention(name) {
				i = j - 1
				continue
			}
		}
		out = append(out, Match{Kind: span.Mention, Start: i, End: j})
		i = j - 1
	}
	return out
}
