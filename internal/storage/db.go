package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"costbook/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS catalog_items (
  rowid_order INTEGER PRIMARY KEY AUTOINCREMENT,
  code TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL,
  unit TEXT NOT NULL,
  unit_cost REAL NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_catalog_items_code ON catalog_items(code);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertItems(items []internal.CatalogItem) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO catalog_items (code, description, unit, unit_cost, updatedAt)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(code) DO UPDATE SET
  description=excluded.description,
  unit=excluded.unit,
  unit_cost=excluded.unit_cost,
  updatedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		code := strings.TrimSpace(item.Code)
		if code == "" {
			return fmt.Errorf("catalog item with empty code (description %q)", item.Description)
		}
		if _, err := stmt.Exec(code, item.Description, item.Unit, item.UnitCost); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListItems returns the full catalog in insertion order. The record store
// treats this order as load order for division buckets.
func (d *DB) ListItems() ([]internal.CatalogItem, error) {
	rows, err := d.conn.Query(`
SELECT code, description, unit, unit_cost
FROM catalog_items
ORDER BY rowid_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.CatalogItem
	for rows.Next() {
		var item internal.CatalogItem
		if err := rows.Scan(&item.Code, &item.Description, &item.Unit, &item.UnitCost); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (d *DB) CountItems() (int, error) {
	var count int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM catalog_items`).Scan(&count)
	return count, err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value, updatedAt) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updatedAt=CURRENT_TIMESTAMP`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
