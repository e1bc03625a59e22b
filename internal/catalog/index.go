package catalog

import (
	"fmt"
	"strings"

	"costbook/internal"
	"costbook/internal/util"
)

// Snapshot is one fully-built, immutable view of the catalog. All derived
// structures are consistent with Items by construction; a Snapshot is never
// patched after buildSnapshot returns.
type Snapshot struct {
	Items []internal.CatalogItem

	ByCode     map[string]int
	ByDivision map[string][]int
	WordIndex  map[string][]int
}

func buildSnapshot(items []internal.CatalogItem) (*Snapshot, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty catalog", ErrLoad)
	}

	snap := &Snapshot{
		Items:      items,
		ByCode:     make(map[string]int, len(items)),
		ByDivision: map[string][]int{},
		WordIndex:  map[string][]int{},
	}

	for pos, item := range items {
		code := strings.TrimSpace(item.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: item %d has no code", ErrLoad, pos)
		}
		if strings.TrimSpace(item.Description) == "" {
			return nil, fmt.Errorf("%w: item %s has no description", ErrLoad, code)
		}
		if item.UnitCost < 0 {
			return nil, fmt.Errorf("%w: item %s has negative unit cost", ErrLoad, code)
		}
		if _, exists := snap.ByCode[code]; exists {
			return nil, fmt.Errorf("%w: duplicate code %s", ErrLoad, code)
		}

		snap.Items[pos].Code = code
		snap.ByCode[code] = pos

		division := snap.Items[pos].Division()
		snap.ByDivision[division] = append(snap.ByDivision[division], pos)

		seen := map[string]struct{}{}
		for _, token := range util.TokenizeIndex(item.Description) {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			snap.WordIndex[token] = append(snap.WordIndex[token], pos)
		}
	}

	return snap, nil
}
