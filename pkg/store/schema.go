package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andrew-torda/nmrstar/pkg/logger"
)

// migration is one step in building the schema. They are applied in
// order and each is recorded in schema_version.
type migration struct {
	id   int
	desc string
	sql  string
}

var migrations = []migration{
	{1, "entries and views", `
CREATE TABLE entries (
	entry_id  TEXT PRIMARY KEY,
	loaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE sequences (
	entry_id     TEXT NOT NULL REFERENCES entries(entry_id) ON DELETE CASCADE,
	ord          INTEGER NOT NULL,
	saveframe    TEXT NOT NULL,
	id           TEXT,
	polymer_type TEXT,
	polymer_seq  TEXT,
	PRIMARY KEY (entry_id, ord)
);
CREATE TABLE sample_components (
	entry_id                TEXT NOT NULL REFERENCES entries(entry_id) ON DELETE CASCADE,
	ord                     INTEGER NOT NULL,
	saveframe               TEXT NOT NULL,
	id                      TEXT,
	mol_common_name         TEXT,
	entity_id               TEXT,
	isotopic_labeling       TEXT,
	concentration_val       TEXT,
	concentration_val_units TEXT,
	PRIMARY KEY (entry_id, ord)
);
CREATE TABLE chem_shifts (
	entry_id        TEXT NOT NULL REFERENCES entries(entry_id) ON DELETE CASCADE,
	ord             INTEGER NOT NULL,
	entity_id       TEXT,
	seq_id          TEXT,
	auth_seq_id     TEXT,
	comp_id         TEXT,
	atom_id         TEXT,
	atom_type       TEXT,
	val             REAL NOT NULL,
	val_err         REAL NOT NULL,
	name            TEXT,
	cs_saveframe_id TEXT,
	PRIMARY KEY (entry_id, ord)
);`},
	{2, "look up shifts by atom", `
CREATE INDEX chem_shifts_atom ON chem_shifts(entry_id, atom_id);`},
}

// migrate brings the schema up to date.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	for _, m := range migrations {
		if m.id <= current {
			continue
		}
		logger.Debug("applying migration", "id", m.id, "desc", m.desc)
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.id, err)
		}
	}
	return nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, m.id); err != nil {
		return err
	}
	return tx.Commit()
}
