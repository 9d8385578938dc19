package engine

import (
	"sort"

	"github.com/matchdayhq/matchday-data/internal/model"
)

// DedupKey identifies a match for aggregation. The id field is not usable —
// duplicate imports of the same real-world match carry different ids — so
// the key is the unordered pair of normalized team names plus the match
// date. Sorting the pair makes the key symmetric: "Home vs Away" and an
// accidental "Away vs Home" entry on the same date collapse to one match.
func DedupKey(m model.Match) string {
	a, b := Normalize(m.TeamA), Normalize(m.TeamB)
	if a > b {
		a, b = b, a
	}
	return a + "-" + b + "-" + matchDate(m)
}

// matchDate prefers the full date when present.
func matchDate(m model.Match) string {
	if m.FullDate != "" {
		return m.FullDate
	}
	return m.Date
}

// DedupMatches collapses duplicate match records into one entry per real
// match. When two records share a key, a finished record supersedes a
// still-scheduled duplicate; among records of equal standing the last one
// seen wins.
func DedupMatches(matches []model.Match) map[string]model.Match {
	unique := make(map[string]model.Match, len(matches))
	for _, m := range matches {
		key := DedupKey(m)
		if existing, ok := unique[key]; ok {
			if existing.Status == model.StatusFinished && m.Status != model.StatusFinished {
				continue
			}
		}
		unique[key] = m
	}
	return unique
}

// sortedMatches returns the deduplicated matches ordered by date, then key.
// Map iteration order is random; folding in date order keeps output
// deterministic and makes form strings chronological.
func sortedMatches(unique map[string]model.Match) []model.Match {
	keys := make([]string, 0, len(unique))
	for k := range unique {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := unique[keys[i]], unique[keys[j]]
		if da, db := matchDate(a), matchDate(b); da != db {
			return da < db
		}
		return keys[i] < keys[j]
	})
	out := make([]model.Match, len(keys))
	for i, k := range keys {
		out[i] = unique[k]
	}
	return out
}
