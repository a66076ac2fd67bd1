// Package selector implements the link-selection policy: a deterministic
// preferred-match scan with a uniform random fallback.
package selector

import (
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/models"
)

// ContainsTarget reports whether the exact target path is present in links.
// Matching is case-sensitive.
func ContainsTarget(links []string, target string) bool {
	for _, link := range links {
		if link == target {
			return true
		}
	}
	return false
}

// Selector picks the next link to follow on a page
type Selector struct {
	preferredHint string     // Lowercase substring that marks a preferred link
	rng           *rand.Rand // Injected so traversal tests are deterministic
	log           *logrus.Logger
}

// NewSelector creates a Selector. preferredHint is matched case-insensitively
// against candidate hrefs.
func NewSelector(preferredHint string, rng *rand.Rand, log *logrus.Logger) *Selector {
	return &Selector{
		preferredHint: strings.ToLower(preferredHint),
		rng:           rng,
		log:           log,
	}
}

// Next decides which link to follow.
//
// Preferred rule: the first link (in document order) whose lowercased form
// contains the hint and which has not been chosen before. Fallback: a uniform
// random element of links, revisits allowed. Returns ok=false only when links
// is empty, which signals a dead end to the caller.
func (s *Selector) Next(links []string, visited models.VisitedSet) (link string, ok bool) {
	if len(links) == 0 {
		s.log.Error("No valid links found on the page.")
		return "", false
	}

	for _, candidate := range links {
		if strings.Contains(strings.ToLower(candidate), s.preferredHint) && !visited.Contains(candidate) {
			return candidate, true
		}
	}

	return links[s.rng.Intn(len(links))], true
}
