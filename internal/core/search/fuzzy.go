package search

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cast"

	"datatable/internal/core/column"
	"datatable/internal/core/path"
)

// FuzzyConfig bundles the thresholds a fuzzy match must meet.
type FuzzyConfig struct {
	MinCoverage float64 // minimal share of the term that must match
	MaxSpread   int     // maximal distance between first and last match index, 0 = any
}

// DefaultFuzzy accepts matches covering the whole term within 40 characters.
var DefaultFuzzy = FuzzyConfig{MinCoverage: 1, MaxSpread: 40}

// FuzzyMatcher returns a search matcher for the value at p. Plain substring
// hits always match; otherwise the term must fuzzy-match within cfg.
func FuzzyMatcher[T any](p string, cfg FuzzyConfig) column.SearchMatcher[T] {
	return func(row T, term string, _ any) bool {
		v := path.Get(row, p)
		if v == nil {
			return false
		}
		s := strings.ToLower(cast.ToString(v))
		if strings.Contains(s, term) {
			return true
		}
		for _, m := range fuzzy.Find(term, []string{s}) {
			if coverage(term, m) < cfg.MinCoverage {
				continue
			}
			if cfg.MaxSpread > 0 && spread(m) > cfg.MaxSpread {
				continue
			}
			return true
		}
		return false
	}
}

// coverage returns the ratio of matched characters to the term length.
func coverage(q string, m fuzzy.Match) float64 {
	if len(q) == 0 {
		return 1
	}
	return float64(len(m.MatchedIndexes)) / float64(len(q))
}

// spread returns the distance between the first and last matched index.
func spread(m fuzzy.Match) int {
	if len(m.MatchedIndexes) == 0 {
		return 0
	}
	return m.MatchedIndexes[len(m.MatchedIndexes)-1] - m.MatchedIndexes[0]
}
