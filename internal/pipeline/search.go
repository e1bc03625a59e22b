package pipeline

import (
	"sort"
	"strings"
	"time"

	"costbook/internal"
	"costbook/internal/catalog"
	"costbook/internal/util"
)

// Search answers operational keyword/code lookups against one catalog
// snapshot. Queries starting with two digits are treated as code-prefix
// lookups; everything else goes through the token index with AND semantics.
func Search(snap *catalog.Snapshot, query string, limit int, divisionFilter string) internal.SearchResult {
	start := time.Now()
	result := internal.SearchResult{Query: query, Items: []internal.CatalogItem{}}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		result.TookMs = time.Since(start).Milliseconds()
		return result
	}
	if limit <= 0 {
		limit = 50
	}

	var positions []int
	if util.LooksLikeCode(trimmed) {
		positions = searchByCodePrefix(snap, trimmed)
	} else {
		positions = searchByTokens(snap, trimmed)
	}

	if divisionFilter != "" {
		kept := positions[:0]
		for _, pos := range positions {
			if snap.Items[pos].Division() == divisionFilter {
				kept = append(kept, pos)
			}
		}
		positions = kept
	}

	sortCandidates(snap, positions, strings.ToLower(trimmed))

	result.Total = len(positions)
	if len(positions) > limit {
		positions = positions[:limit]
	}
	for _, pos := range positions {
		result.Items = append(result.Items, snap.Items[pos])
	}
	result.TookMs = time.Since(start).Milliseconds()
	return result
}

func searchByCodePrefix(snap *catalog.Snapshot, query string) []int {
	prefix := util.DigitsOnly(query)
	out := []int{}
	for pos, item := range snap.Items {
		if strings.HasPrefix(util.DigitsOnly(item.Code), prefix) {
			out = append(out, pos)
		}
	}
	return out
}

// searchByTokens intersects per-token candidate sets: every query token must
// hit at least one indexed word, either exactly or by substring containment
// in either direction. The fuzzy pass scans the whole word index per token,
// an accepted cost at this catalog size.
func searchByTokens(snap *catalog.Snapshot, query string) []int {
	tokens := util.TokenizeQuery(query)
	if len(tokens) == 0 {
		return nil
	}

	var candidates map[int]struct{}
	for _, token := range tokens {
		matched := map[int]struct{}{}
		for _, pos := range snap.WordIndex[token] {
			matched[pos] = struct{}{}
		}
		for word, positions := range snap.WordIndex {
			if word == token {
				continue
			}
			if strings.Contains(word, token) || strings.Contains(token, word) {
				for _, pos := range positions {
					matched[pos] = struct{}{}
				}
			}
		}

		if candidates == nil {
			candidates = matched
			continue
		}
		for pos := range candidates {
			if _, ok := matched[pos]; !ok {
				delete(candidates, pos)
			}
		}
		if len(candidates) == 0 {
			return nil
		}
	}

	out := make([]int, 0, len(candidates))
	for pos := range candidates {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}

// sortCandidates puts items whose description contains the literal query
// ahead of the rest, then orders each group by unit cost descending.
func sortCandidates(snap *catalog.Snapshot, positions []int, loweredQuery string) {
	group := func(pos int) int {
		if strings.Contains(strings.ToLower(snap.Items[pos].Description), loweredQuery) {
			return 0
		}
		return 1
	}
	sort.SliceStable(positions, func(i, j int) bool {
		gi, gj := group(positions[i]), group(positions[j])
		if gi != gj {
			return gi < gj
		}
		return snap.Items[positions[i]].UnitCost > snap.Items[positions[j]].UnitCost
	})
}
