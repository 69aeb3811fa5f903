package scan

import (
	"github.com/jholhewres/msgentity/pkg/msgentity/span"
	"github.com/jholhewres/msgentity/pkg/msgentity/uchar"
)

// hashtagMaxLen is the accepted tag length; a tag that reaches 256 hashtag
// letters is truncated to the first 255 (spec.md §4.2, §8).
const hashtagMaxLen = 256

// FindHashtags recognizes #tag spans (spec.md §4.2). tag must contain at
// least one Letter; digits-only or underscore-only tags are rejected.
func FindHashtags(data []byte) []Match {
	var out []Match
	for i := 0; i < len(data); i++ {
		if data[i] != '#' {
			continue
		}
		prev, _ := uchar.PrevCodePoint(data, i)
		if uchar.IsHashtagLetter(prev) {
			continue
		}
		j := i + 1
		count := 0
		hasLetter := false
		cutoff := -1
		for count < hashtagMaxLen {
			r, next := uchar.NextCodePoint(data, j)
			if next == j {
				break
			}
			if !uchar.IsHashtagLetter(r) {
				break
			}
			if uchar.CategoryOf(r) == uchar.Letter {
				hasLetter = true
			}
			count++
			if count == hashtagMaxLen-1 {
				cutoff = next
			}
			j = next
		}
		if count == 0 || !hasLetter {
			continue
		}
		end := j
		if count >= hashtagMaxLen {
			end = cutoff
		}
		next, _ := uchar.NextCodePoint(data, end)
		if next == '#' {
			continue
		}
		out = append(out, Match{Kind: span.Hashtag, Start: i, End: end})
		i = end - 1
	}
	return out
}
