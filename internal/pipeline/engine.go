package pipeline

import (
	"costbook/internal"
	"costbook/internal/catalog"
	"costbook/internal/config"
)

// Engine is the read-only catalog query interface consumed by the
// surrounding transport layers. Safe for concurrent use once the store has
// loaded: every call reads one immutable snapshot.
type Engine struct {
	store *catalog.Store
	cfg   config.Config
}

func NewEngine(store *catalog.Store, cfg config.Config) *Engine {
	return &Engine{store: store, cfg: cfg}
}

func (e *Engine) Search(query string, limit int, divisionFilter string) (internal.SearchResult, error) {
	snap, err := e.store.Snapshot()
	if err != nil {
		return internal.SearchResult{}, err
	}
	if limit <= 0 {
		limit = e.cfg.SearchLimit
	}
	return Search(snap, query, limit, divisionFilter), nil
}

func (e *Engine) Translate(description string, limit int, minScore float64) (internal.TranslateResult, error) {
	snap, err := e.store.Snapshot()
	if err != nil {
		return internal.TranslateResult{}, err
	}
	if limit <= 0 {
		limit = e.cfg.TranslateLimit
	}
	if minScore <= 0 {
		minScore = e.cfg.MinScore
	}
	return Translate(snap, description, limit, minScore), nil
}

func (e *Engine) GetByCode(code string) (internal.CatalogItem, error) {
	return e.store.GetByCode(code)
}

func (e *Engine) GetByDivision(code string, limit int) ([]internal.CatalogItem, error) {
	return e.store.GetByDivision(code, limit)
}

func (e *Engine) GetDivisions() ([]internal.DivisionInfo, error) {
	return e.store.Divisions()
}

func (e *Engine) Stats() internal.CatalogStats {
	return e.store.Stats()
}
