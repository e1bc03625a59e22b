package pipeline

import (
	"testing"

	"costbook/internal"
	"costbook/internal/catalog"
)

func fixtureItems() []internal.CatalogItem {
	return []internal.CatalogItem{
		{Code: "22111600-0012", Description: "Copper pipe type L 1 inch", Unit: "LF", UnitCost: 12.5},
		{Code: "22111600-0020", Description: "Copper pipe type L 2 inch", Unit: "LF", UnitCost: 21.0},
		{Code: "21131300-0005", Description: "Sprinkler head pendent chrome", Unit: "EA", UnitCost: 85},
		{Code: "21131300-0007", Description: "Sprinkler head sidewall white", Unit: "EA", UnitCost: 92},
		{Code: "09290000-0100", Description: "Gypsum board 5/8 inch type X installed on walls", Unit: "SF", UnitCost: 2.1},
		{Code: "03300000-0001", Description: "Structural concrete 4000 psi slab on grade", Unit: "CY", UnitCost: 180},
	}
}

func testSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	store := catalog.NewStore()
	if err := store.Load(catalog.SliceSource(fixtureItems())); err != nil {
		t.Fatalf("load: %v", err)
	}
	snap, err := store.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return snap
}

func TestSearchCodePrefix(t *testing.T) {
	snap := testSnapshot(t)

	res := Search(snap, "22111600", 0, "")
	if res.Total != 2 || len(res.Items) != 2 {
		t.Fatalf("total=%d len=%d", res.Total, len(res.Items))
	}
	// Cost descending within the group.
	if res.Items[0].Code != "22111600-0020" || res.Items[1].Code != "22111600-0012" {
		t.Fatalf("order: %s, %s", res.Items[0].Code, res.Items[1].Code)
	}
}

func TestSearchCodePrefixIgnoresSeparators(t *testing.T) {
	snap := testSnapshot(t)

	res := Search(snap, "21131300-0005", 0, "")
	if res.Total != 1 {
		t.Fatalf("total=%d", res.Total)
	}
	if res.Items[0].Code != "21131300-0005" {
		t.Fatalf("got %s", res.Items[0].Code)
	}
}

func TestSearchTokensRequireAllTokens(t *testing.T) {
	snap := testSnapshot(t)

	res := Search(snap, "copper sprinkler", 0, "")
	if res.Total != 0 || len(res.Items) != 0 {
		t.Fatalf("expected no results, got %d", res.Total)
	}
}

func TestSearchTokensLiteralGroupFirst(t *testing.T) {
	snap := testSnapshot(t)

	res := Search(snap, "copper pipe", 0, "")
	if res.Total != 2 {
		t.Fatalf("total=%d", res.Total)
	}
	if res.Items[0].Code != "22111600-0020" {
		t.Fatalf("expected higher-cost pipe first, got %s", res.Items[0].Code)
	}
}

func TestSearchFuzzyTokenContainment(t *testing.T) {
	snap := testSnapshot(t)

	res := Search(snap, "sprink", 0, "")
	if res.Total != 2 {
		t.Fatalf("total=%d", res.Total)
	}
	for _, item := range res.Items {
		if item.Division() != "21" {
			t.Fatalf("unexpected item %s", item.Code)
		}
	}
	if res.Items[0].UnitCost != 92 {
		t.Fatalf("expected cost-desc order, got %v first", res.Items[0].UnitCost)
	}
}

func TestSearchDivisionFilter(t *testing.T) {
	snap := testSnapshot(t)

	// "inch" appears in both pipe items and the gypsum item.
	res := Search(snap, "inch", 0, "")
	if res.Total != 3 {
		t.Fatalf("unfiltered total=%d", res.Total)
	}

	res = Search(snap, "inch", 0, "09")
	if res.Total != 1 {
		t.Fatalf("filtered total=%d", res.Total)
	}
	if res.Items[0].Code != "09290000-0100" {
		t.Fatalf("got %s", res.Items[0].Code)
	}
}

func TestSearchLimit(t *testing.T) {
	snap := testSnapshot(t)

	res := Search(snap, "inch", 1, "")
	if res.Total != 3 {
		t.Fatalf("total should count all matches, got %d", res.Total)
	}
	if len(res.Items) != 1 {
		t.Fatalf("len=%d", len(res.Items))
	}
	if res.Items[0].Code != "22111600-0020" {
		t.Fatalf("got %s", res.Items[0].Code)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	snap := testSnapshot(t)

	for _, q := range []string{"", "   ", "the of"} {
		res := Search(snap, q, 0, "")
		if res.Total != 0 || len(res.Items) != 0 {
			t.Fatalf("query %q: total=%d len=%d", q, res.Total, len(res.Items))
		}
	}
}
