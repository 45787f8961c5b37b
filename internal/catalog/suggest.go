package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from a real id.
const maxSuggestDistance = 3

// SuggestNetwork returns the network id closest to query, compared case
// insensitively against ids and short labels. ok is false when nothing is
// within maxSuggestDistance edits.
func (c Catalog) SuggestNetwork(query string) (id string, ok bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	best := maxSuggestDistance + 1
	for _, n := range c.Networks {
		for _, cand := range []string{n.ID, n.Short} {
			d := levenshtein.ComputeDistance(q, strings.ToLower(cand))
			if d < best {
				best = d
				id = n.ID
			}
		}
	}
	return id, best <= maxSuggestDistance
}
