package pipeline

import (
	"sort"
	"time"

	"costbook/internal"
	"costbook/internal/catalog"
)

// Translate maps a free-text work description to ranked catalog items. Every
// item in the snapshot is scored; anything at or above minScore survives.
func Translate(snap *catalog.Snapshot, description string, limit int, minScore float64) internal.TranslateResult {
	start := time.Now()

	ctx := BuildContext(description)
	result := internal.TranslateResult{
		Items:              []internal.ScoredItem{},
		Keywords:           ctx.Keywords,
		ExpandedKeywords:   ctx.ExpandedKeywords,
		Quantity:           ctx.Quantity,
		Unit:               ctx.Unit,
		SuggestedDivisions: ctx.SuggestedDivisions,
	}

	if ctx.Normalized == "" {
		result.TookMs = time.Since(start).Milliseconds()
		return result
	}
	if limit <= 0 {
		limit = 20
	}

	scored := []internal.ScoredItem{}
	for _, item := range snap.Items {
		s := ScoreItem(item, ctx)
		if s == nil || s.Score < minScore {
			continue
		}
		scored = append(scored, *s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].DivisionMatch != scored[j].DivisionMatch {
			return scored[i].DivisionMatch
		}
		return scored[i].UnitCost > scored[j].UnitCost
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	result.Items = scored
	result.TookMs = time.Since(start).Milliseconds()
	return result
}
