package scan

import (
	"strconv"
	"strings"

	"github.com/jholhewres/msgentity/pkg/msgentity/span"
	"github.com/jholhewres/msgentity/pkg/msgentity/tld"
	"github.com/jholhewres/msgentity/pkg/msgentity/uchar"
)

var acceptedSchemes = map[string]bool{
	"http": true, "https": true, "ftp": true, "sftp": true,
}

// hostScan holds the result of locating a candidate host around a '.'.
type hostScan struct {
	hostStart, hostEnd int
	matchStart         int
	hasScheme          bool
}

// urlCandidate is a structurally matched URL run before fix_url's TLD/shape
// filter is applied. spec.md §4.2 runs email recognition on this structural
// match directly, ahead of (and independent from) the TLD whitelist check
// that only gates plain Url spans — see classifyURLCandidates.
type urlCandidate struct {
	start, end int
	host       []byte
	hasScheme  bool
}

// scanURLCandidates finds every structurally matched URL run per spec.md
// §4.2's heuristic: a host is found by scanning domain characters outward
// from a '.', optionally extended left through a user-data run to an '@'
// and a scheme, then optionally extended right through a :port and a path.
// It applies none of fix_url's TLD/shape checks — callers decide how to
// resolve each candidate (see FindURLs, classifyURLCandidates).
func scanURLCandidates(data []byte) []urlCandidate {
	var out []urlCandidate
	pos := 0
	for {
		dot := indexByteFrom(data, '.', pos)
		if dot < 0 {
			break
		}
		hs, ok := scanHost(data, dot)
		if !ok {
			pos = dot + 1
			continue
		}

		end := hs.hostEnd
		end = scanPort(data, end)
		end = scanPath(data, end)
		end = trimURLTrailing(hs.matchStart, end, data)

		hostEnd := hs.hostEnd
		if hostEnd > end {
			hostEnd = end
		}
		if end <= hs.matchStart || hostEnd <= hs.hostStart {
			pos = dot + 1
			continue
		}

		out = append(out, urlCandidate{start: hs.matchStart, end: end, host: data[hs.hostStart:hostEnd], hasScheme: hs.hasScheme})
		pos = end
		if pos <= dot {
			pos = dot + 1
		}
	}
	return out
}

// FindURLs recognizes URL spans: every structural candidate that also
// passes fix_url's TLD/shape filter (spec.md §4.2's last bullet). Email
// recognition does not go through this filter — see classifyURLCandidates,
// which FindAll uses instead so a candidate can still resolve to an email
// address even when its domain fails this TLD check.
func FindURLs(data []byte) []Match {
	var out []Match
	for _, c := range scanURLCandidates(data) {
		if validateHost(c.host, c.hasScheme) {
			out = append(out, Match{Kind: span.Url, Start: c.start, End: c.end})
		}
	}
	return out
}

// scanHost locates the host run containing the '.' at dot, then walks
// outward for an optional user@ prefix and scheme:// prefix.
func scanHost(data []byte, dot int) (hostScan, bool) {
	hostStart := scanLeftWhile(data, dot, isDomainChar)
	hostEnd := scanRightWhile(data, dot+1, isDomainChar)
	if hostStart == dot || hostEnd == dot+1 {
		return hostScan{}, false
	}

	authorityStart := hostStart
	left := scanLeftWhile(data, hostStart, isUserDataChar)
	atPos := -1
	for k := hostStart - 1; k >= left; k-- {
		if data[k] == '@' {
			atPos = k
		}
	}
	if atPos >= 0 {
		authorityStart = left
	}

	hasScheme := false
	matchStart := authorityStart
	if authorityStart >= 3 && string(data[authorityStart-3:authorityStart]) == "://" {
		schemeEnd := authorityStart - 3
		schemeStart := schemeEnd
		for schemeStart > 0 && isASCIILetter(data[schemeStart-1]) {
			schemeStart--
		}
		word := strings.ToLower(string(data[schemeStart:schemeEnd]))
		if acceptedSchemes[word] {
			hasScheme = true
			matchStart = schemeStart
		}
	}
	if !hasScheme {
		prev, _ := uchar.PrevCodePoint(data, authorityStart)
		if uchar.IsWordChar(prev) || prev == '/' || prev == '#' || prev == '@' {
			return hostScan{}, false
		}
		matchStart = authorityStart
	}

	return hostScan{hostStart: hostStart, hostEnd: hostEnd, matchStart: matchStart, hasScheme: hasScheme}, true
}

func scanPort(data []byte, end int) int {
	if end >= len(data) || data[end] != ':' {
		return end
	}
	k := end + 1
	for k < len(data) && isASCIIDigit(data[k]) {
		k++
	}
	digits := string(data[end+1 : k])
	if digits == "" || !validPort(digits) {
		return end
	}
	return k
}

func validPort(digits string) bool {
	if len(digits) > 1 && digits[0] == '0' {
		return false
	}
	if len(digits) > 5 {
		return false
	}
	v, err := strconv.Atoi(digits)
	return err == nil && v <= 65535
}

func scanPath(data []byte, end int) int {
	if end >= len(data) {
		return end
	}
	switch data[end] {
	case '/', '?', '#':
		return scanRightWhile(data, end, isPathChar)
	}
	return end
}

func trimURLTrailing(start, end int, data []byte) int {
	for end > start && isURLTrailingStrip(data[end-1]) {
		end--
	}
	return end
}

func indexByteFrom(data []byte, b byte, from int) int {
	for i := from; i < len(data); i++ {
		if data[i] == b {
			return i
		}
	}
	return -1
}

// validateHost implements fix_url (spec.md §4.2): reject malformed label
// shapes and, absent a scheme or IPv4 shape, require an accepted TLD.
func validateHost(host []byte, hasScheme bool) bool {
	lower := strings.ToLower(string(host))
	if lower == "teiegram.org" {
		return false
	}
	labels := strings.Split(lower, ".")
	if len(labels) < 2 {
		return false
	}
	isIPv4 := isIPv4Labels(labels)
	for i, lbl := range labels {
		if lbl == "" || len(lbl) > 63 {
			return false
		}
		if i == 0 && !isIPv4 && isAllDigits(lbl) {
			return false
		}
	}
	tldLabel := labels[len(labels)-1]
	if strings.Contains(tldLabel, "_") || strings.HasSuffix(tldLabel, "-") {
		return false
	}
	// The protocol caution in spec.md §4.2 ("http, https, ftp, sftp but not
	// shttp or tftp") is read literally as a host-label denylist as well as
	// a scheme-word check: a leftmost label that is exactly one of the
	// excluded near-miss protocol names is rejected outright, scheme or not.
	if labels[0] == "shttp" || labels[0] == "tftp" {
		return false
	}
	if isIPv4 {
		return true
	}
	if hasScheme {
		return true
	}
	return tld.IsAccepted(tldLabel)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isASCIIDigit(s[i]) {
			return false
		}
	}
	return true
}

func isIPv4Labels(labels []string) bool {
	if len(labels) != 4 {
		return false
	}
	for i, lbl := range labels {
		if lbl == "" || len(lbl) > 3 || !isAllDigits(lbl) {
			return false
		}
		if len(lbl) > 1 && lbl[0] == '0' {
			return false
		}
		v, err := strconv.Atoi(lbl)
		if err != nil || v > 255 {
			return false
		}
		if i == 0 && v < 1 {
			return false
		}
	}
	return true
}
