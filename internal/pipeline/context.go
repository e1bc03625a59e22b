package pipeline

import (
	"costbook/internal"
	"costbook/internal/util"
)

// BuildContext derives everything a translate call needs from the raw work
// description: normalized text, keywords, synonym expansion, quantity/unit,
// and division hints.
func BuildContext(text string) internal.TranslationContext {
	normalized := util.Normalize(text)
	keywords := util.TokenizeQuery(text)
	parsed := util.ParseQty(text)

	return internal.TranslationContext{
		Original:           text,
		Normalized:         normalized,
		Keywords:           keywords,
		ExpandedKeywords:   ExpandKeywords(keywords),
		Quantity:           parsed.Qty,
		Unit:               parsed.Unit,
		SuggestedDivisions: SuggestDivisions(normalized),
	}
}
