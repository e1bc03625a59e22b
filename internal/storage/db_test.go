package storage

import (
	"path/filepath"
	"testing"

	"costbook/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUpsertAndListItems(t *testing.T) {
	db := openTestDB(t)

	items := []internal.CatalogItem{
		{Code: "22111600-0012", Description: "Copper pipe type L 1 inch", Unit: "LF", UnitCost: 12.5},
		{Code: "21131300-0005", Description: "Sprinkler head pendent chrome", Unit: "EA", UnitCost: 85},
	}
	if err := db.UpsertItems(items); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := db.ListItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len=%d", len(got))
	}
	// Insertion order is preserved.
	if got[0].Code != "22111600-0012" || got[1].Code != "21131300-0005" {
		t.Fatalf("order: %s, %s", got[0].Code, got[1].Code)
	}
	if got[0].UnitCost != 12.5 || got[0].Unit != "LF" {
		t.Fatalf("item: %+v", got[0])
	}

	count, err := db.CountItems()
	if err != nil || count != 2 {
		t.Fatalf("count=%d err=%v", count, err)
	}
}

func TestUpsertUpdatesExistingCode(t *testing.T) {
	db := openTestDB(t)

	if err := db.UpsertItems([]internal.CatalogItem{
		{Code: "03300000-0001", Description: "Structural concrete", Unit: "CY", UnitCost: 180},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := db.UpsertItems([]internal.CatalogItem{
		{Code: "03300000-0001", Description: "Structural concrete 4000 psi", Unit: "CY", UnitCost: 195},
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := db.ListItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len=%d", len(got))
	}
	if got[0].UnitCost != 195 || got[0].Description != "Structural concrete 4000 psi" {
		t.Fatalf("item: %+v", got[0])
	}
}

func TestUpsertRejectsEmptyCode(t *testing.T) {
	db := openTestDB(t)

	err := db.UpsertItems([]internal.CatalogItem{
		{Code: "  ", Description: "orphan row", Unit: "EA", UnitCost: 1},
	})
	if err == nil {
		t.Fatal("expected error for empty code")
	}

	// The transaction rolled back; nothing was written.
	count, err := db.CountItems()
	if err != nil || count != 0 {
		t.Fatalf("count=%d err=%v", count, err)
	}
}

func TestMetadataRoundtrip(t *testing.T) {
	db := openTestDB(t)

	if v, err := db.GetMetadata("lastImport"); err != nil || v != nil {
		t.Fatalf("missing key: v=%v err=%v", v, err)
	}

	if err := db.SetMetadata("lastImport", "catalog.xlsx"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.SetMetadata("lastImport", "catalog-v2.xlsx"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, err := db.GetMetadata("lastImport")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v == nil || *v != "catalog-v2.xlsx" {
		t.Fatalf("value: %v", v)
	}
}
