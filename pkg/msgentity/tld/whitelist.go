package tld

// shortMentionWhitelist holds the fixed set of @names 4 characters or
// shorter that are recognized as mentions anyway (spec.md §4.2: short
// mentions are otherwise dropped as too likely to be noise).
var shortMentionWhitelist = map[string]bool{
	"gif":  true,
	"wiki": true,
	"vid":  true,
	"bing": true,
	"pic":  true,
	"bold": true,
	"imdb": true,
	"coub": true,
	"like": true,
	"vote": true,
}

// IsWhitelistedShortMention reports whether lowercaseName (already
// lower-cased by the caller) is in the short-mention whitelist.
func IsWhitelistedShortMention(lowercaseName string) bool {
	return shortMentionWhitelist[lowercaseName]
}

// AddExtraShortMention extends the whitelist. Like AddExtraTLD, this must
// only be called during cmd/entityctl startup.
func AddExtraShortMention(lowercaseName string) {
	shortMentionWhitelist[lowercaseName] = true
}
