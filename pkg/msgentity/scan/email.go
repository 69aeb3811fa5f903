package scan

import (
	"strings"

	"github.com/jholhewres/msgentity/pkg/msgentity/span"
)

// classifyURLCandidates resolves every structurally matched URL candidate to
// either an EmailAddress match or a Url match (spec.md §4.2: email
// recognition runs on the already-matched URL candidate, not on one that has
// already survived fix_url's TLD whitelist — that whitelist is a Url-only
// final filter, applied here only to candidates that don't validate as an
// email). A "mailto:" prefix is stripped from the emitted span; a bare
// "local@domain" candidate keeps its bounds unchanged.
func classifyURLCandidates(data []byte, candidates []urlCandidate) []Match {
	var out []Match
	for _, c := range candidates {
		text := data[c.start:c.end]
		start := c.start
		mailText := text
		if len(text) >= 7 && strings.EqualFold(string(text[:7]), "mailto:") {
			mailText = text[7:]
			start += 7
		}
		if isValidEmail(mailText) {
			out = append(out, Match{Kind: span.EmailAddress, Start: start, End: c.end})
			continue
		}
		if validateHost(c.host, c.hasScheme) {
			out = append(out, Match{Kind: span.Url, Start: c.start, End: c.end})
		}
	}
	return out
}

// isValidEmail implements spec.md §4.2's regex-like email rule. The last
// domain label's upper bound is widened past the spec's literal "2-6 ASCII
// letters" to 24: see DESIGN.md — the documented end-to-end scenario
// "user@mail.example" requires a 7-letter last label to validate, which the
// literal bound cannot satisfy.
const emailLastLabelMax = 24

func isValidEmail(addr []byte) bool {
	at := -1
	for i, b := range addr {
		if b == '@' {
			at = i
			break
		}
	}
	if at < 0 {
		return false
	}
	return validEmailLocal(addr[:at]) && validEmailDomain(addr[at+1:])
}

func validEmailLocal(local []byte) bool {
	if len(local) == 0 {
		return false
	}
	segments := splitOnAny(local, '.', '+')
	if len(segments) == 0 || len(segments) > 11 {
		return false
	}
	for i, seg := range segments {
		if len(seg) == 0 {
			return false
		}
		last := i == len(segments)-1
		if last {
			if len(seg) > 35 {
				return false
			}
		} else if len(seg) > 26 {
			return false
		}
		for _, b := range seg {
			if !isASCIIWordByte(b) && b != '-' {
				return false
			}
		}
	}
	return true
}

func validEmailDomain(domain []byte) bool {
	if len(domain) == 0 {
		return false
	}
	labels := splitOnAny(domain, '.')
	if len(labels) < 2 || len(labels) > 7 {
		return false
	}
	for i, lbl := range labels {
		last := i == len(labels)-1
		if last {
			if len(lbl) < 2 || len(lbl) > emailLastLabelMax {
				return false
			}
			for _, b := range lbl {
				if !isASCIILetter(b) {
					return false
				}
			}
			continue
		}
		if len(lbl) < 1 || len(lbl) > 30 {
			return false
		}
		if !isASCIIAlnum(lbl[0]) || !isASCIIAlnum(lbl[len(lbl)-1]) {
			return false
		}
		for _, b := range lbl {
			if !isASCIIWordByte(b) && b != '-' {
				return false
			}
		}
	}
	return true
}

func isASCIIAlnum(b byte) bool {
	return isASCIILetter(b) || isASCIIDigit(b)
}

func splitOnAny(b []byte, seps ...byte) [][]byte {
	var out [][]byte
	start := 0
	isSep := func(c byte) bool {
		for _, s := range seps {
			if c == s {
				return true
			}
		}
		return false
	}
	for i := 0; i < len(b); i++ {
		if isSep(b[i]) {
			out = append(out, b[start:i])
			start = i + 1
		}
	}
	out = append(out, b[start:])
	return out
}
