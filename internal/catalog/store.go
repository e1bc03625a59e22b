package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"costbook/internal"
)

var (
	// ErrLoad wraps any malformed-dataset condition. A failed load never
	// replaces the previous snapshot.
	ErrLoad = errors.New("catalog load failed")

	// ErrNotLoaded is returned by queries that arrive before the first
	// successful load.
	ErrNotLoaded = errors.New("catalog not loaded")

	// ErrNotFound is returned for an unknown catalog code.
	ErrNotFound = errors.New("catalog item not found")
)

// Source is any read-only provider of the full catalog dataset.
type Source interface {
	ListItems() ([]internal.CatalogItem, error)
}

// SliceSource adapts an in-memory item slice to Source.
type SliceSource []internal.CatalogItem

func (s SliceSource) ListItems() ([]internal.CatalogItem, error) {
	out := make([]internal.CatalogItem, len(s))
	copy(out, s)
	return out, nil
}

// Store holds the current catalog snapshot. Load builds a full replacement
// off to the side and swaps it in under the lock, so concurrent readers
// always see one consistent snapshot.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Load reads the complete dataset from source and atomically replaces all
// derived indexes. On failure the store keeps whatever snapshot it had.
func (s *Store) Load(source Source) error {
	items, err := source.ListItems()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	snap, err := buildSnapshot(items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Snapshot returns the current immutable snapshot, or ErrNotLoaded before the
// first successful Load. Callers must not mutate it.
func (s *Store) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

func (s *Store) GetByCode(code string) (internal.CatalogItem, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return internal.CatalogItem{}, err
	}
	pos, ok := snap.ByCode[strings.TrimSpace(code)]
	if !ok {
		return internal.CatalogItem{}, ErrNotFound
	}
	return snap.Items[pos], nil
}

// GetByDivision returns up to limit items filed under the 2-digit division
// prefix of code, in load order. limit <= 0 means no limit.
func (s *Store) GetByDivision(code string, limit int) ([]internal.CatalogItem, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	division := strings.TrimSpace(code)
	if len(division) > 2 {
		division = division[:2]
	}

	positions := snap.ByDivision[division]
	if limit > 0 && len(positions) > limit {
		positions = positions[:limit]
	}

	out := make([]internal.CatalogItem, 0, len(positions))
	for _, pos := range positions {
		out = append(out, snap.Items[pos])
	}
	return out, nil
}

// Divisions lists every observed division with its display name and item
// count, sorted by code.
func (s *Store) Divisions() ([]internal.DivisionInfo, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	out := make([]internal.DivisionInfo, 0, len(snap.ByDivision))
	for division, positions := range snap.ByDivision {
		out = append(out, internal.DivisionInfo{
			Code:  division,
			Name:  DivisionName(division),
			Count: len(positions),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) Stats() internal.CatalogStats {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap == nil {
		return internal.CatalogStats{}
	}
	return internal.CatalogStats{
		Total:     len(snap.Items),
		Divisions: len(snap.ByDivision),
		Loaded:    true,
	}
}
