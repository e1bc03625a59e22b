package pipeline

import (
	"strings"

	"costbook/internal"
)

// ScoreItem rates one catalog item against a translation context. It returns
// nil when no match criterion is met, which excludes the item from results.
//
// The order here matters: the base score comes from exact/phrase/keyword
// matching, the division and unit bonuses are additive on top (capped at
// 1.0), and the short-description penalty is multiplicative last.
func ScoreItem(item internal.CatalogItem, ctx internal.TranslationContext) *internal.ScoredItem {
	desc := strings.ToLower(item.Description)

	scored := internal.ScoredItem{CatalogItem: item}

	switch {
	case ctx.Normalized != "" && desc == ctx.Normalized:
		scored.Score = 1.0
		scored.MatchType = internal.MatchExact
		scored.MatchedKeywords = append(scored.MatchedKeywords, ctx.Keywords...)

	case ctx.Normalized != "" && strings.Contains(desc, ctx.Normalized):
		scored.Score = 0.9
		scored.MatchType = internal.MatchPhrase
		scored.MatchedKeywords = append(scored.MatchedKeywords, ctx.Keywords...)

	default:
		keywordMatches := 0
		plain := map[string]struct{}{}
		for _, kw := range ctx.Keywords {
			plain[kw] = struct{}{}
			if strings.Contains(desc, kw) {
				keywordMatches++
				scored.MatchedKeywords = append(scored.MatchedKeywords, kw)
			}
		}

		expandedMatches := 0
		for _, kw := range ctx.ExpandedKeywords {
			if _, isPlain := plain[kw]; isPlain {
				continue
			}
			if strings.Contains(desc, kw) {
				expandedMatches++
				scored.MatchedKeywords = append(scored.MatchedKeywords, kw)
			}
		}

		if keywordMatches == 0 && expandedMatches == 0 {
			return nil
		}

		keywordScore := 0.0
		if len(ctx.Keywords) > 0 {
			keywordScore = float64(keywordMatches) / float64(len(ctx.Keywords))
		}
		expandedScore := 0.0
		if len(ctx.ExpandedKeywords) > 0 {
			expandedScore = float64(expandedMatches) / float64(len(ctx.ExpandedKeywords)) * 0.5
		}

		scored.Score = keywordScore*0.7 + expandedScore*0.3
		if scored.Score > 0.85 {
			scored.Score = 0.85
		}
		if keywordMatches > 0 {
			scored.MatchType = internal.MatchKeywords
		} else {
			scored.MatchType = internal.MatchPartial
		}
	}

	for _, division := range ctx.SuggestedDivisions {
		if item.Division() == division {
			scored.DivisionMatch = true
			scored.Score += 0.1
			break
		}
	}
	if scored.Score > 1.0 {
		scored.Score = 1.0
	}

	if ctx.Unit != nil && *ctx.Unit == item.Unit {
		scored.UnitMatch = true
		scored.Score += 0.05
	}
	if scored.Score > 1.0 {
		scored.Score = 1.0
	}

	if len(item.Description) < 20 {
		scored.Score *= 0.8
	}

	return &scored
}
