// Package diagnostics summarizes names that did not resolve against the
// roster so a human can fix the roster or the exports. Hints are advisory
// and never feed back into resolution.
package diagnostics

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/okian/quizmerge/internal/domain/namekey"
	"github.com/okian/quizmerge/internal/domain/roster"
)

const defaultMaxDistance = 3

// Hint describes one unresolved name.
type Hint struct {
	Label       string // synthetic label of the unresolved name
	Count       int    // rows carrying this name across all sessions
	SuggestedID string // closest roster id, empty when none is close enough
	Distance    int    // edit distance to the suggestion
}

// Option configures Summarize.
type Option func(*options)

type options struct {
	maxDistance int
}

// WithMaxDistance bounds the edit distance of a suggestion. Zero or less
// disables suggestions.
func WithMaxDistance(d int) Option {
	return func(o *options) {
		o.maxDistance = d
	}
}

// Summarize groups unresolved keys, most frequent first, and suggests the
// nearest roster identity for each.
func Summarize(unresolved []namekey.Key, idx *roster.Index, opts ...Option) []Hint {
	o := options{maxDistance: defaultMaxDistance}
	for _, opt := range opts {
		opt(&o)
	}

	counts := make(map[namekey.Key]int, len(unresolved))
	for _, k := range unresolved {
		counts[k]++
	}

	var candidates map[namekey.Key]string
	if idx != nil && o.maxDistance > 0 {
		candidates = idx.Keys()
	}

	hints := make([]Hint, 0, len(counts))
	for k, n := range counts {
		h := Hint{Label: k.Label(), Count: n}
		h.SuggestedID, h.Distance = nearest(k, candidates, o.maxDistance)
		hints = append(hints, h)
	}
	sort.Slice(hints, func(i, j int) bool {
		if hints[i].Count != hints[j].Count {
			return hints[i].Count > hints[j].Count
		}
		return hints[i].Label < hints[j].Label
	})
	return hints
}

// nearest returns the id whose key is closest to k within limit. Ties go to
// the lexicographically smaller key so output is stable.
func nearest(k namekey.Key, candidates map[namekey.Key]string, limit int) (string, int) {
	bestID, bestDist := "", 0
	var bestKey namekey.Key
	for ck, id := range candidates {
		d := levenshtein.ComputeDistance(string(k), string(ck))
		if d > limit {
			continue
		}
		if bestID == "" || d < bestDist || (d == bestDist && ck < bestKey) {
			bestID, bestDist, bestKey = id, d, ck
		}
	}
	return bestID, bestDist
}
