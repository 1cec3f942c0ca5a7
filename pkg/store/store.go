// Package store keeps the views of many entries in one sqlite file, so
// shifts can be compared across entries without parsing again.
// Saving an entry replaces whatever was stored for it before.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/andrew-torda/nmrstar/pkg/logger"
	"github.com/andrew-torda/nmrstar/pkg/views"
)

// ErrNoEntry is returned when asking for an entry that was never saved.
var ErrNoEntry = errors.New("entry not in store")

// Store is an open database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path. ":memory:" works for tests.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // pragmas are per connection, and sqlite has one writer anyway
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// SaveEntry stores the views of one entry in a single transaction.
func (s *Store) SaveEntry(ctx context.Context, entryID string, seqs []views.Sequence,
	samples []views.SampleComponent, shifts []views.ChemShift) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE entry_id = ?`, entryID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO entries (entry_id) VALUES (?)`, entryID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sequences
		(entry_id, ord, saveframe, id, polymer_type, polymer_seq) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	for i, q := range seqs {
		if _, err := stmt.ExecContext(ctx, entryID, i, q.Saveframe, q.ID, q.PolymerType, q.PolymerSeq); err != nil {
			return fmt.Errorf("sequence %d: %w", i, err)
		}
	}
	stmt.Close()

	stmt, err = tx.PrepareContext(ctx, `INSERT INTO sample_components
		(entry_id, ord, saveframe, id, mol_common_name, entity_id, isotopic_labeling,
		 concentration_val, concentration_val_units) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	for i, c := range samples {
		if _, err := stmt.ExecContext(ctx, entryID, i, c.Saveframe, c.ID, c.MolCommonName, c.EntityID,
			c.IsotopicLabeling, c.ConcentrationVal, c.ConcentrationValUnits); err != nil {
			return fmt.Errorf("sample component %d: %w", i, err)
		}
	}
	stmt.Close()

	stmt, err = tx.PrepareContext(ctx, `INSERT INTO chem_shifts
		(entry_id, ord, entity_id, seq_id, auth_seq_id, comp_id, atom_id, atom_type,
		 val, val_err, name, cs_saveframe_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, c := range shifts {
		if _, err := stmt.ExecContext(ctx, entryID, i, c.EntityID, c.SeqID, c.AuthSeqID, c.CompID,
			c.AtomID, c.AtomType, c.Val, c.ValErr, c.Name, c.CSSaveframeID); err != nil {
			return fmt.Errorf("shift %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Info("stored", "entry", entryID, "db", s.path,
		"sequences", len(seqs), "components", len(samples), "shifts", len(shifts))
	return nil
}

// Entries lists the stored entry ids.
func (s *Store) Entries(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT entry_id FROM entries ORDER BY entry_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ret = append(ret, id)
	}
	return ret, rows.Err()
}

// Shifts returns the shifts of an entry in the order they were saved.
func (s *Store) Shifts(ctx context.Context, entryID string) ([]views.ChemShift, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE entry_id = ?`, entryID).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoEntry, entryID)
	}
	rows, err := s.db.QueryContext(ctx, `SELECT entity_id, seq_id, auth_seq_id, comp_id, atom_id,
		atom_type, val, val_err, name, cs_saveframe_id
		FROM chem_shifts WHERE entry_id = ? ORDER BY ord`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []views.ChemShift{}
	for rows.Next() {
		var c views.ChemShift
		if err := rows.Scan(&c.EntityID, &c.SeqID, &c.AuthSeqID, &c.CompID, &c.AtomID,
			&c.AtomType, &c.Val, &c.ValErr, &c.Name, &c.CSSaveframeID); err != nil {
			return nil, err
		}
		ret = append(ret, c)
	}
	return ret, rows.Err()
}

// Sequences returns the sequences of an entry.
func (s *Store) Sequences(ctx context.Context, entryID string) ([]views.Sequence, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT saveframe, id, polymer_type, polymer_seq
		FROM sequences WHERE entry_id = ? ORDER BY ord`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []views.Sequence
	for rows.Next() {
		var q views.Sequence
		if err := rows.Scan(&q.Saveframe, &q.ID, &q.PolymerType, &q.PolymerSeq); err != nil {
			return nil, err
		}
		ret = append(ret, q)
	}
	return ret, rows.Err()
}
