package commands

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jholhewres/msgentity/pkg/msgentity/entity"
)

// defaultCheckURL canonicalizes raw via net/url.Parse, rejecting anything
// without a host. No real directory/validator collaborator exists in this
// repo's scope (spec.md §6), so this is the trivial default the CLI wires.
func defaultCheckURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url has no host: %q", raw)
	}
	return u.String(), nil
}

// defaultResolveUser recognizes a tg:user?id=NNN link, per spec.md §6.
func defaultResolveUser(link string) (int64, bool) {
	rest, ok := strings.CutPrefix(link, "tg:user?id=")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func newEngine() entity.Engine {
	return entity.Engine{CheckURL: defaultCheckURL, ResolveUser: defaultResolveUser}
}
