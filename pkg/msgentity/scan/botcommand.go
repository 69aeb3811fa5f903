package scan

import (
	"github.com/jholhewres/msgentity/pkg/msgentity/span"
	"github.com/jholhewres/msgentity/pkg/msgentity/uchar"
)

func isCommandBoundary(r rune) bool {
	return uchar.IsWordChar(r) || r == '/' || r == '<' || r == '>'
}

// FindBotCommands recognizes /cmd[@bot] spans (spec.md §4.2). cmd is 1-64
// ASCII word characters; the optional @bot suffix is 3-32 ASCII word
// characters.
func FindBotCommands(data []byte) []Match {
	var out []Match
	for i := 0; i < len(data); i++ {
		if data[i] != '/' {
			continue
		}
		prev, _ := uchar.PrevCodePoint(data, i)
		if isCommandBoundary(prev) {
			continue
		}
		j := i + 1
		for j < len(data) && isASCIIWordByte(data[j]) {
			j++
		}
		if j-(i+1) < 1 || j-(i+1) > 64 {
			continue
		}
		end := j
		if end < len(data) && data[end] == '@' {
			k := end + 1
			for k < len(data) && isASCIIWordByte(data[k]) {
				k++
			}
			if n := k - (end + 1); n >= 3 && n <= 32 {
				end = k
			}
		}
		next, _ := uchar.NextCodePoint(data, end)
		if isCommandBoundary(next) {
			continue
		}
		out = append(out, Match{Kind: span.BotCommand, Start: i, End: end})
		i = end - 1
	}
	return out
}
