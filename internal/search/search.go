// Package search ranks the package index against a live query string.
//
// Ranking combines normalized download popularity with a tiered textual
// similarity measure. The download component dominates (80/20 weighting) so
// that well-known packages surface first, while the similarity tiers keep
// exact and prefix matches from being drowned out by sheer popularity.
package search

import (
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// DefaultLimit caps the candidate list handed to the picker.
const DefaultLimit = 200

// DefaultDownloadExponent scales the normalized download score. The square
// root flattens the popularity curve so mid-tier packages stay visible;
// values above 1 would instead sharpen the skew toward mega-packages.
const DefaultDownloadExponent = 0.5

// Similarity tiers, highest first.
const (
	simExact     = 1.0
	simPrefix    = 0.6
	simToken     = 0.4
	simSubstring = 0.2
)

// Record is one entry of the package index, in delivered order.
type Record struct {
	Project       string
	DownloadCount int64
}

// Candidate is a ranked, display-ready search result. Candidates are derived
// per query and never reused across queries.
type Candidate struct {
	Record
	Score  float64
	Label  string // rank-prefixed display label, e.g. "01. requests"
	Detail string // humanized download count
}

// Options tunes ranking behavior.
type Options struct {
	Limit            int
	DownloadExponent float64
}

// DefaultOptions returns the standard ranking options.
func DefaultOptions() Options {
	return Options{Limit: DefaultLimit, DownloadExponent: DefaultDownloadExponent}
}

func (o Options) normalized() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.DownloadExponent <= 0 {
		o.DownloadExponent = DefaultDownloadExponent
	}
	return o
}

// Rank computes the relevance-ordered candidate list for query.
//
// An empty query returns all records ordered by download count descending
// (stable on ties). A non-empty query first filters to case-insensitive
// substring matches, then orders by the weighted score. The result is capped
// at opts.Limit and labeled with 1-based rank prefixes.
func Rank(records []Record, query string, opts Options) []Candidate {
	opts = opts.normalized()
	query = strings.TrimSpace(query)

	var matched []Record
	if query == "" {
		matched = append(matched, records...)
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].DownloadCount > matched[j].DownloadCount
		})
		return label(matched, nil, opts.Limit)
	}

	lowered := strings.ToLower(query)
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Project), lowered) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	// Normalize downloads against the most popular match. The top-20 window
	// of the download-ordered matches shares its maximum with the whole set.
	var maxD int64
	for _, r := range matched {
		if r.DownloadCount > maxD {
			maxD = r.DownloadCount
		}
	}

	scores := make([]float64, len(matched))
	exact := make([]bool, len(matched))
	for i, r := range matched {
		var downloadScore float64
		if maxD > 0 {
			downloadScore = math.Pow(float64(r.DownloadCount)/float64(maxD), opts.DownloadExponent)
		}
		sim := similarity(lowered, r.Project)
		exact[i] = sim == simExact
		scores[i] = 0.8*downloadScore + 0.2*sim
	}

	// An exact name match is pinned ahead of everything else; the weighted
	// score alone would let a more popular prefix match outrank it.
	order := make([]int, len(matched))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if exact[ia] != exact[ib] {
			return exact[ia]
		}
		return scores[ia] > scores[ib]
	})

	ranked := make([]Record, len(order))
	rankedScores := make([]float64, len(order))
	for i, idx := range order {
		ranked[i] = matched[idx]
		rankedScores[i] = scores[idx]
	}
	return label(ranked, rankedScores, opts.Limit)
}

// similarity scores how well the lowercased query matches the project name.
func similarity(query, project string) float64 {
	name := strings.ToLower(project)

	switch {
	case name == query:
		return simExact
	case strings.HasPrefix(name, query):
		return simPrefix
	case isToken(name, query):
		return simToken
	case strings.Contains(name, query):
		return simSubstring
	}
	return subsequenceScore(query, name)
}

// isToken reports whether query equals a whole dash- or underscore-delimited
// token of name.
func isToken(name, query string) bool {
	for _, tok := range strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	}) {
		if tok == query {
			return true
		}
	}
	return false
}

// subsequenceScore scores an in-order, non-contiguous character match.
// A full match scores matched/len(name) * 0.1; a partial match scores zero.
func subsequenceScore(query, name string) float64 {
	matched := 0
	for _, c := range name {
		if matched < len(query) && byte(c) == query[matched] {
			matched++
		}
	}
	if matched < len(query) || len(name) == 0 {
		return 0
	}
	return float64(matched) / float64(len(name)) * 0.1
}

func label(records []Record, scores []float64, limit int) []Candidate {
	if len(records) > limit {
		records = records[:limit]
	}

	out := make([]Candidate, len(records))
	for i, r := range records {
		c := Candidate{
			Record: r,
			Label:  FormatLabel(i+1, r.Project),
			Detail: humanize.Comma(r.DownloadCount) + " downloads",
		}
		if scores != nil {
			c.Score = scores[i]
		}
		out[i] = c
	}
	return out
}
