package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"costbook/internal"
	"costbook/internal/config"
	"costbook/internal/storage"
)

// ImportService loads the deploy-time catalog dataset into sqlite and keeps
// the browse hierarchy artifact current.
type ImportService struct {
	db  *storage.DB
	cfg config.Config
}

func NewImportService(db *storage.DB, cfg config.Config) *ImportService {
	return &ImportService{db: db, cfg: cfg}
}

// ImportFile parses a dataset file by extension (.xlsx, .html, .csv), upserts
// every item, and rebuilds the hierarchy artifact.
func (s *ImportService) ImportFile(path string) (int, error) {
	items, err := s.parseFile(path)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, fmt.Errorf("no catalog items found in %s", path)
	}

	if err := s.db.UpsertItems(items); err != nil {
		return 0, err
	}
	_ = s.db.SetMetadata("catalog.last_import", time.Now().UTC().Format(time.RFC3339))
	_ = s.db.SetMetadata("catalog.last_import_source", filepath.Base(path))

	if err := s.RefreshHierarchy(); err != nil {
		return 0, err
	}
	return len(items), nil
}

// RefreshHierarchy rebuilds the browse tree artifact from the full stored
// catalog.
func (s *ImportService) RefreshHierarchy() error {
	items, err := s.db.ListItems()
	if err != nil {
		return err
	}
	tree := BuildHierarchy(items, s.cfg.HierarchyMinItems)
	outputPath := filepath.Join(s.cfg.OutputDir, "catalog-hierarchy.json")
	if err := WriteHierarchyArtifact(tree, outputPath); err != nil {
		return err
	}
	return s.db.SetMetadata("catalog.last_hierarchy_build", time.Now().UTC().Format(time.RFC3339))
}

func (s *ImportService) parseFile(path string) ([]internal.CatalogItem, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		blob, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseItemsXLSX(blob)
	case ".html", ".htm":
		blob, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseItemsHTML(blob)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseItemsCSV(f)
	default:
		return nil, fmt.Errorf("unsupported catalog source: %s", path)
	}
}
