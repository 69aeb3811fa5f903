// Package tld holds the compiled-in, read-only lookup tables the URL
// post-filter consults: the common-TLD whitelist and the short-username
// whitelist (spec.md §4.2, §6). Apart from AddExtraTLD and
// AddExtraShortMention, which cmd/entityctl calls during startup only,
// nothing modifies them, and reads take no lock — matching the "Global
// mutable state in source" re-architecting note in spec.md §9. Calling the
// Add functions concurrently with engine calls is not safe.
package tld

import (
	"sort"
	"strings"

	"golang.org/x/net/idna"
)

// commonTLDs is a representative slice of the ~1500-entry production TLD
// table (spec.md §2 item 3): the generic and ccTLDs a chat client's URL
// recall/precision target is tuned against. It is kept sorted so
// IsAccepted can binary-search it; init() verifies the invariant once at
// package load.
var commonTLDs = []string{
	"academy", "actor", "ae", "africa", "agency", "ai", "app", "art", "asia",
	"at", "au", "bar", "be", "berlin", "bid", "biz", "blog", "br", "build",
	"business", "ca", "cafe", "care", "casino", "cc", "center", "ch", "china",
	"city", "click", "cloud", "club", "cn", "co", "codes", "com", "community",
	"company", "consulting", "contact", "coop", "cricket", "cz", "date",
	"de", "design", "dev", "digital", "direct", "download", "earth", "edu",
	"email", "energy", "es", "estate", "eu", "events", "exchange", "expert",
	"family", "fashion", "finance", "fit", "fm", "fr", "fun", "gallery",
	"games", "gg", "gift", "gifts", "gives", "gold", "gov", "gr", "graphics",
	"group", "guide", "guru", "haus", "health", "help", "holdings", "host",
	"hosting", "house", "id", "im", "in", "info", "ink", "institute", "int",
	"international", "investments", "io", "ir", "is", "it", "jobs", "jp",
	"kim", "kitchen", "kr", "land", "law", "lc", "lgbt", "life", "limited",
	"link", "live", "llc", "loan", "loans", "love", "ltd", "lu", "luxury",
	"market", "marketing", "mba", "media", "meet", "melbourne", "men",
	"menu", "mobi", "moe", "money", "mx", "name", "net", "network", "news",
	"ngo", "nl", "no", "now", "nyc", "one", "onl", "online", "org", "page",
	"partners", "parts", "party", "pe", "ph", "photo", "photography",
	"photos", "pics", "pictures", "pink", "pizza", "pl", "plus", "pro",
	"productions", "properties", "pt", "pub", "quebec", "racing", "re",
	"recipes", "red", "rentals", "repair", "report", "rest", "reviews",
	"rip", "rocks", "ru", "run", "sale", "school", "science", "se",
	"services", "sg", "shoes", "shop", "shopping", "show", "singles",
	"site", "social", "software", "solar", "solutions", "space", "store",
	"studio", "study", "style", "support", "surf", "systems", "tax",
	"team", "tech", "technology", "tel", "tienda", "tips", "today",
	"tools", "tours", "town", "toys", "trade", "training", "travel", "tv",
	"uk", "university", "uno", "us", "vacations", "vegas", "ventures",
	"vet", "video", "villas", "vin", "vip", "vision", "vodka", "vote",
	"voyage", "watch", "webcam", "website", "wedding", "wiki", "win",
	"wine", "work", "works", "world", "wtf", "xyz", "yoga", "za", "zone",
}

func init() {
	if !sort.StringsAreSorted(commonTLDs) {
		panic("tld: commonTLDs table is not sorted")
	}
}

// IsAccepted reports whether tld (lowercased, without the leading dot) is
// in the compiled-in common-TLD table, or is a well-formed internationalized
// TLD label (an "xn--" punycode label at least 5 characters long, with an
// ASCII alphanumeric suffix that decodes to a valid IDNA label).
func IsAccepted(tldLabel string) bool {
	lower := strings.ToLower(tldLabel)
	if i := sort.SearchStrings(commonTLDs, lower); i < len(commonTLDs) && commonTLDs[i] == lower {
		return true
	}
	return isInternationalizedTLD(lower)
}

// AddExtraTLD extends the compiled-in table with an additional accepted
// TLD. It exists for cmd/entityctl's optional config file and must only be
// called during startup, before any call into the engine — the table is
// read-only and unsynchronized once requests are being served (spec.md §5).
func AddExtraTLD(tldLabel string) {
	lower := strings.ToLower(tldLabel)
	i := sort.SearchStrings(commonTLDs, lower)
	if i < len(commonTLDs) && commonTLDs[i] == lower {
		return
	}
	commonTLDs = append(commonTLDs, "")
	copy(commonTLDs[i+1:], commonTLDs[i:])
	commonTLDs[i] = lower
}

func isInternationalizedTLD(lower string) bool {
	if !strings.HasPrefix(lower, "xn--") || len(lower) < 5 {
		return false
	}
	suffix := lower[4:]
	for _, c := range suffix {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
			return false
		}
	}
	// Round-trip through the IDNA ACE decoder: a well-formed xn-- label
	// decodes to a non-empty Unicode label without error.
	decoded, err := idna.ToUnicode(lower)
	return err == nil && decoded != ""
}
