// Package stats derives summary statistics from a distribution dataset.
// Aggregation is pure: the input is never mutated.
package stats

import (
	"sort"
	"strconv"
	"strings"

	"github.com/distrograph/distrograph/pkg/distros"
)

// Summary holds aggregate counts over a dataset.
type Summary struct {
	Total    int `json:"total" yaml:"total"`
	Active   int `json:"active" yaml:"active"`
	Inactive int `json:"inactive" yaml:"inactive"`

	// ByDecade buckets records by the decade of their first known date,
	// keyed like "1990s". Records without a parseable year are excluded.
	ByDecade map[string]int `json:"by_decade" yaml:"by_decade"`

	// Data-quality visibility: how many records carry archive enrichments.
	WithColor       int `json:"with_color" yaml:"with_color"`
	WithNameChanges int `json:"with_name_changes" yaml:"with_name_changes"`
}

// Summarize computes aggregate statistics for a dataset.
func Summarize(ds distros.Dataset) Summary {
	s := Summary{
		Total:    len(ds),
		ByDecade: make(map[string]int),
	}

	for i := range ds {
		d := &ds[i]
		if d.Status == distros.StatusActive {
			s.Active++
		}
		if d.Color != "" {
			s.WithColor++
		}
		if len(d.NameChanges) > 0 {
			s.WithNameChanges++
		}
		if decade, ok := decadeOf(d.Dates); ok {
			s.ByDecade[decade]++
		}
	}
	s.Inactive = s.Total - s.Active

	return s
}

// Decades returns the histogram keys in chronological order.
func (s Summary) Decades() []string {
	keys := make([]string, 0, len(s.ByDecade))
	for k := range s.ByDecade {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BaseCount is one entry of a base-distribution ranking.
type BaseCount struct {
	Base  string `json:"base" yaml:"base"`
	Count int    `json:"count" yaml:"count"`
}

// BaseCounts counts distributions per first parent. Independent
// distributions are grouped under the "Independent" label.
func BaseCounts(ds distros.Dataset) map[string]int {
	counts := make(map[string]int)
	for i := range ds {
		base := ds[i].FirstParent()
		if base == distros.Independent {
			base = "Independent"
		}
		counts[base]++
	}
	return counts
}

// TopBases ranks base counts by descending count, breaking ties by name
// so the ordering is deterministic. At most n entries are returned; a
// non-positive n returns the full ranking.
func TopBases(counts map[string]int, n int) []BaseCount {
	ranked := make([]BaseCount, 0, len(counts))
	for base, count := range counts {
		ranked = append(ranked, BaseCount{Base: base, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Base < ranked[j].Base
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// decadeOf buckets the first date of a sequence into its decade key.
// Malformed or non-numeric year prefixes are excluded, not errors.
func decadeOf(dates []string) (string, bool) {
	if len(dates) == 0 {
		return "", false
	}
	year := dates[0]
	if i := strings.IndexByte(year, '-'); i >= 0 {
		year = year[:i]
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return "", false
	}
	return strconv.Itoa(y/10*10) + "s", true
}
