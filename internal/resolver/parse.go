// Package resolver turns submitted video URLs into enriched queue
// entries: a lenient reference parser plus HTTP metadata lookups against
// the matching provider.
package resolver

import (
	"regexp"

	"github.com/watchalong/server/internal/domain"
)

// URL sniffing is deliberately a heuristic, not a grammar: anything the
// patterns miss degrades to empty fields instead of rejecting the URL.
var (
	providerPattern = regexp.MustCompile(`youtu|twitch`)
	kindPattern     = regexp.MustCompile(`clip|video|youtu`)

	// The videos alternative must precede the bare .tv/ one so a
	// twitch.tv/videos/<id> path is not read as a channel login.
	idPattern = regexp.MustCompile(`(?:\?v=|\.be/|\.tv/videos/|/clip/|\.tv/)(\w+)`)
)

// Parse extracts a best-effort VideoReference from a URL of
// unconstrained origin. It never fails: unrecognized input yields an
// empty id and provider with the default stream kind.
func Parse(rawURL string) domain.VideoReference {
	ref := domain.VideoReference{Kind: domain.KindStream}

	ref.Provider = providerPattern.FindString(rawURL)
	if k := kindPattern.FindString(rawURL); k != "" {
		ref.Kind = k
	}
	// Several path segments can look like an id (a channel login before a
	// /clip/ slug, for instance); the last match wins.
	if m := idPattern.FindAllStringSubmatch(rawURL, -1); len(m) > 0 {
		ref.ID = m[len(m)-1][1]
	}

	return ref
}
