package pipeline

import (
	"math"
	"testing"

	"costbook/internal"
)

func approx(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("score %v, want %v", got, want)
	}
}

func TestScoreExactMatch(t *testing.T) {
	item := internal.CatalogItem{Code: "21131300-0005", Description: "Pendent chrome sprinkler assembly", Unit: "EA", UnitCost: 85}
	ctx := BuildContext("Pendent chrome sprinkler assembly")

	scored := ScoreItem(item, ctx)
	if scored == nil {
		t.Fatal("nil result")
	}
	if scored.MatchType != internal.MatchExact {
		t.Fatalf("matchType %s", scored.MatchType)
	}
	// 1.0 base, +0.1 division bonus capped at 1.0.
	approx(t, scored.Score, 1.0)
	if !scored.DivisionMatch {
		t.Fatal("division bonus flag not set")
	}
	if len(scored.MatchedKeywords) != len(ctx.Keywords) {
		t.Fatalf("matched keywords: %v", scored.MatchedKeywords)
	}
}

func TestScorePhraseMatch(t *testing.T) {
	item := internal.CatalogItem{Code: "09300000-0010", Description: "Porcelain mosaic accent band installed", Unit: "SF", UnitCost: 14}
	ctx := BuildContext("mosaic accent band")

	scored := ScoreItem(item, ctx)
	if scored == nil {
		t.Fatal("nil result")
	}
	if scored.MatchType != internal.MatchPhrase {
		t.Fatalf("matchType %s", scored.MatchType)
	}
	approx(t, scored.Score, 0.9)
}

func TestScoreKeywordOverlap(t *testing.T) {
	item := internal.CatalogItem{Code: "23310000-0001", Description: "Galvanized rectangular duct fabricated", Unit: "SF", UnitCost: 9.5}
	ctx := internal.TranslationContext{
		Normalized:       "round duct elbow",
		Keywords:         []string{"round", "duct", "elbow"},
		ExpandedKeywords: []string{"round", "duct", "elbow"},
	}

	scored := ScoreItem(item, ctx)
	if scored == nil {
		t.Fatal("nil result")
	}
	if scored.MatchType != internal.MatchKeywords {
		t.Fatalf("matchType %s", scored.MatchType)
	}
	// 1 of 3 keywords, no expanded hits: (1/3)*0.7.
	approx(t, scored.Score, 0.7/3)
}

func TestScorePartialMatchFromExpansionOnly(t *testing.T) {
	item := internal.CatalogItem{Code: "09290000-0100", Description: "Gypsum board ceiling patch and repair work", Unit: "SF", UnitCost: 3.2}
	ctx := internal.TranslationContext{
		Normalized:       "sheetrock repairs",
		Keywords:         []string{"sheetrock", "repairs"},
		ExpandedKeywords: []string{"sheetrock", "repairs", "drywall", "gypsum"},
	}

	scored := ScoreItem(item, ctx)
	if scored == nil {
		t.Fatal("nil result")
	}
	if scored.MatchType != internal.MatchPartial {
		t.Fatalf("matchType %s", scored.MatchType)
	}
	// 0 plain keywords, 1 of 4 expanded: (1/4)*0.5*0.3.
	approx(t, scored.Score, 0.25*0.5*0.3)
}

func TestScoreNoMatchIsNil(t *testing.T) {
	item := internal.CatalogItem{Code: "03300000-0001", Description: "Structural concrete 4000 psi slab on grade", Unit: "CY", UnitCost: 180}
	ctx := BuildContext("replace carpet tiles")
	if scored := ScoreItem(item, ctx); scored != nil {
		t.Fatalf("expected nil, got %+v", scored)
	}
}

func TestScoreUnitBonus(t *testing.T) {
	item := internal.CatalogItem{Code: "22111600-0012", Description: "Copper pipe type L 1 inch", Unit: "LF", UnitCost: 12.5}
	ctx := BuildContext("100 lf of copper pipe")

	scored := ScoreItem(item, ctx)
	if scored == nil {
		t.Fatal("nil result")
	}
	// 2 of 4 keywords (copper, pipe): 0.5*0.7 = 0.35, +0.1 division, +0.05 unit.
	approx(t, scored.Score, 0.5)
	if !scored.DivisionMatch || !scored.UnitMatch {
		t.Fatalf("bonus flags: division=%t unit=%t", scored.DivisionMatch, scored.UnitMatch)
	}
}

// The short-description penalty is multiplicative and applied after the
// additive bonuses, so a short exact match lands at 0.8, not 1.0.
func TestScoreShortDescriptionPenaltyLast(t *testing.T) {
	item := internal.CatalogItem{Code: "05120000-0001", Description: "Steel angle", Unit: "LF", UnitCost: 6.4}
	ctx := BuildContext("steel angle")

	scored := ScoreItem(item, ctx)
	if scored == nil {
		t.Fatal("nil result")
	}
	if scored.MatchType != internal.MatchExact {
		t.Fatalf("matchType %s", scored.MatchType)
	}
	approx(t, scored.Score, 0.8)
}

func TestScoreDeterministic(t *testing.T) {
	item := internal.CatalogItem{Code: "22111600-0012", Description: "Copper pipe type L 1 inch", Unit: "LF", UnitCost: 12.5}
	ctx := BuildContext("100 lf of copper pipe")

	first := ScoreItem(item, ctx)
	for i := 0; i < 10; i++ {
		again := ScoreItem(item, ctx)
		if again.Score != first.Score || again.MatchType != first.MatchType ||
			again.DivisionMatch != first.DivisionMatch || again.UnitMatch != first.UnitMatch {
			t.Fatalf("scoring not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	items := []internal.CatalogItem{
		{Code: "22111600-0012", Description: "Copper pipe type L 1 inch", Unit: "LF", UnitCost: 12.5},
		{Code: "21131300-0007", Description: "Sprinkler head sidewall", Unit: "EA", UnitCost: 92},
		{Code: "05120000-0001", Description: "Steel angle", Unit: "LF", UnitCost: 6.4},
		{Code: "09290000-0100", Description: "Gypsum board 5/8 inch type X installed on walls", Unit: "SF", UnitCost: 2.1},
	}
	queries := []string{
		"install 10 sprinkler heads",
		"100 lf of copper pipe",
		"steel angle",
		"hang sheetrock in the garage",
		"copper pipe type l 1 inch",
	}
	for _, q := range queries {
		ctx := BuildContext(q)
		for _, item := range items {
			scored := ScoreItem(item, ctx)
			if scored == nil {
				continue
			}
			if scored.Score < 0 || scored.Score > 1 {
				t.Fatalf("score %v out of bounds for query %q item %s", scored.Score, q, item.Code)
			}
		}
	}
}
