// Package selection filters and orders corpus paths for one output target.
//
// Select is pure over its inputs: for a fixed corpus order and fixed rules
// the result is exactly reproducible. Emission only ever iterates slices,
// never maps.
package selection

import (
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/llmstxt/internal/util/sets"
)

// Rules is the selection rule set for one output target.
//
// Include: when non-empty, only matching files are eligible.
// Ignore: always excludes, regardless of include results.
// Order: glob sequence defining output order; a file is claimed by the first
// pattern it satisfies and not reconsidered for later patterns.
type Rules struct {
	Include              []string
	Ignore               []string
	Order                []string
	IncludeUnmatchedLast bool
}

// Select returns the ordered subset of corpus matching rules.
func Select(corpus []string, rules Rules) []string {
	eligible := make([]string, 0, len(corpus))
	for _, p := range corpus {
		if len(rules.Include) > 0 && !MatchAny(rules.Include, p) {
			continue
		}
		if MatchAny(rules.Ignore, p) {
			continue
		}
		eligible = append(eligible, p)
	}

	if len(rules.Order) == 0 {
		return eligible
	}

	out := make([]string, 0, len(eligible))
	claimed := sets.New[string]()
	for _, pattern := range rules.Order {
		bucket := make([]string, 0)
		for _, p := range eligible {
			if claimed.Has(p) {
				continue
			}
			if matchOne(pattern, p) {
				claimed.Add(p)
				bucket = append(bucket, p)
			}
		}
		// Lexical order within a bucket keeps output independent of how the
		// caller happened to enumerate the corpus.
		sort.Strings(bucket)
		out = append(out, bucket...)
	}

	if rules.IncludeUnmatchedLast {
		for _, p := range eligible {
			if !claimed.Has(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// MatchAny reports whether p matches any of the glob patterns.
func MatchAny(patterns []string, p string) bool {
	for _, pattern := range patterns {
		if matchOne(pattern, p) {
			return true
		}
	}
	return false
}

// matchOne matches a doublestar glob against a corpus-relative path.
// Patterns without a slash also match on the basename, so "*.test.md"
// behaves the way authors expect. Malformed patterns match nothing.
func matchOne(pattern, p string) bool {
	ok, err := doublestar.Match(pattern, p)
	if err != nil {
		return false
	}
	if ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, err = doublestar.Match(pattern, path.Base(p))
		return err == nil && ok
	}
	return false
}
