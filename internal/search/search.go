// ABOUTME: Fuzzy title search across every collection
// ABOUTME: Ranks subsequence matches and suggests near misses for typos

package search

import (
	"sort"
	"strings"

	"github.com/harper/reel/internal/models"
	"github.com/harper/reel/internal/stores"
	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Entry is one searchable record. Membership entries have Rated false.
type Entry struct {
	Collection string
	ID         models.MediaID
	Type       models.MediaType
	Title      string
	Rating     float64
	Rated      bool
}

// Hit is a ranked match. Score is higher for better matches.
type Hit struct {
	Entry
	Score          int
	MatchedIndexes []int
}

// index implements fuzzy.Source over pre-lowercased titles.
type index struct {
	entries []Entry
	lower   []string
}

func (idx *index) String(i int) string { return idx.lower[i] }

func (idx *index) Len() int { return len(idx.entries) }

func newIndex(entries []Entry) *index {
	idx := &index{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		if e.Title == "" {
			continue
		}
		idx.entries = append(idx.entries, e)
		idx.lower = append(idx.lower, strings.ToLower(e.Title))
	}
	return idx
}

// Entries collects every titled record from the registry, in collection order.
func Entries(reg *stores.Registry) []Entry {
	var out []Entry
	for _, rel := range stores.Relations {
		s, _ := reg.Membership(rel)
		for _, rec := range s.Items() {
			out = append(out, Entry{
				Collection: string(rel),
				ID:         rec.ID,
				Type:       rec.Type,
				Title:      rec.Title,
			})
		}
	}
	for _, rec := range reg.Ratings().Items() {
		out = append(out, Entry{
			Collection: stores.RatingsName,
			ID:         rec.ID,
			Type:       rec.Type,
			Title:      rec.Title,
			Rating:     rec.Rating,
			Rated:      true,
		})
	}
	return out
}

// Rank returns entries whose title contains the query's characters in order,
// best first. limit <= 0 means no limit.
func Rank(entries []Entry, query string, limit int) []Hit {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	idx := newIndex(entries)
	matches := fuzzy.FindFrom(strings.ToLower(query), idx)

	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, Hit{
			Entry:          idx.entries[m.Index],
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	return truncate(hits, limit)
}

// Suggest returns titles within a small edit distance of the query, closest first.
// Used when Rank finds nothing.
func Suggest(entries []Entry, query string, limit int) []Hit {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	maxDist := maxDistance(query)
	idx := newIndex(entries)

	hits := make([]Hit, 0)
	for i, title := range idx.lower {
		d := fuzzysearch.LevenshteinDistance(query, title)
		if d > maxDist {
			continue
		}
		// Negated so that higher is better, matching Rank.
		hits = append(hits, Hit{Entry: idx.entries[i], Score: -d})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return truncate(hits, limit)
}

// Search ranks the query and falls back to suggestions when nothing matches.
// suggested reports whether the fallback was used.
func Search(entries []Entry, query string, limit int) (hits []Hit, suggested bool) {
	if hits = Rank(entries, query, limit); len(hits) > 0 {
		return hits, false
	}
	hits = Suggest(entries, query, limit)
	return hits, len(hits) > 0
}

// FilterCollection keeps entries from the named collection; an empty name keeps all.
// Filter before Search so the suggestion fallback only considers that collection.
func FilterCollection(entries []Entry, name string) []Entry {
	if name == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Collection == name {
			out = append(out, e)
		}
	}
	return out
}

func maxDistance(query string) int {
	if d := len([]rune(query)) / 3; d > 2 {
		return d
	}
	return 2
}

func truncate(hits []Hit, limit int) []Hit {
	if limit > 0 && len(hits) > limit {
		return hits[:limit]
	}
	return hits
}
