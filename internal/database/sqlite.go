package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) the shop database file and ensures the schema
// exists. The whole deployment is one shop on one machine, so a single
// SQLite file is the entire persistence layer.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// SQLite allows exactly one writer; serializing connections keeps the
	// read-max-then-insert identifier allocation free of duplicates.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS consignors (
			id        TEXT PRIMARY KEY,
			name      TEXT NOT NULL,
			whatsapp  TEXT,
			email     TEXT,
			pix_key   TEXT,
			percent   REAL,
			notes     TEXT,
			active    INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			sku              TEXT PRIMARY KEY,
			consignor_id     TEXT REFERENCES consignors(id),
			acquisition_type TEXT NOT NULL,
			category         TEXT NOT NULL,
			subcategory      TEXT,
			brand            TEXT,
			gender           TEXT,
			size             TEXT,
			fit              TEXT,
			color            TEXT,
			fabric           TEXT,
			condition        TEXT,
			flaws            TEXT,
			bust             REAL,
			waist            REAL,
			length           REAL,
			cost             REAL NOT NULL DEFAULT 0,
			list_price       REAL NOT NULL,
			markdown_stage   INTEGER NOT NULL DEFAULT 0,
			acquired_at      TEXT,
			listed_at        TEXT,
			channel_listed   TEXT,
			sold_at          TEXT,
			sale_price       REAL,
			channel_sold     TEXT,
			photos_url       TEXT,
			notes            TEXT,
			active           INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS sales (
			id             TEXT PRIMARY KEY,
			date           TEXT NOT NULL,
			sku            TEXT NOT NULL REFERENCES items(sku),
			sale_price     REAL NOT NULL,
			discount_value REAL NOT NULL DEFAULT 0,
			channel        TEXT,
			customer_name  TEXT,
			customer_whatsapp TEXT,
			payment_method TEXT,
			notes          TEXT,
			consignor_id   TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS settlements (
			id              TEXT PRIMARY KEY,
			consignor_id    TEXT NOT NULL REFERENCES consignors(id),
			period_start    TEXT NOT NULL,
			period_end      TEXT NOT NULL,
			qty             INTEGER NOT NULL,
			total_net       REAL NOT NULL,
			percent         REAL NOT NULL,
			consignor_value REAL NOT NULL,
			shop_value      REAL NOT NULL,
			paid_at         TEXT,
			created_at      TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS operators (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_consignor ON items(consignor_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(date);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_consignor ON sales(consignor_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
