package scan

import (
	"github.com/jholhewres/msgentity/pkg/msgentity/span"
	"github.com/jholhewres/msgentity/pkg/msgentity/uchar"
)

// FindCashtags recognizes $XYZ spans (spec.md §4.2): 3-8 ASCII uppercase
// letters, not adjacent to another hashtag letter or $.
func FindCashtags(data []byte) []Match {
	var out []Match
	for i := 0; i < len(data); i++ {
		if data[i] != '$' {
			continue
		}
		prev, _ := uchar.PrevCodePoint(data, i)
		if uchar.IsHashtagLetter(prev) || prev == '$' {
			continue
		}
		j := i + 1
		for j < len(data) && isASCIIUpper(data[j]) {
			j++
		}
		count := j - (i + 1)
		if count < 3 || count > 8 {
			continue
		}
		next, _ := uchar.NextCodePoint(data, j)
		if uchar.IsHashtagLetter(next) || next == '$' {
			continue
		}
		out = append(out, Match{Kind: span.Cashtag, Start: i, End: j})
		i = j - 1
	}
	return out
}
