/*
 * store.go, part of eeqbc.
 *
 * Copyright 2025 The eeqbc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package store keeps the computed charges and energies in a SQLite
// database, so partial benchmark runs can be resumed and sliced
// without re-parsing program output. Rows are keyed by scan point,
// atom and method; re-inserting a key overwrites the old value.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/grimme-lab/SI-EEQ-BC/tables"
)

// Store is an open results database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the results database at path, with the schema
// in place.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS charges (
			cid TEXT NOT NULL,
			atom INTEGER NOT NULL,
			atom_type INTEGER NOT NULL,
			method TEXT NOT NULL,
			charge REAL NOT NULL,
			PRIMARY KEY (cid, atom, method)
		)`,
		`CREATE TABLE IF NOT EXISTS energies (
			cid TEXT NOT NULL,
			method TEXT NOT NULL,
			energy REAL NOT NULL,
			PRIMARY KEY (cid, method)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_charges_method ON charges(method)`,
		`CREATE INDEX IF NOT EXISTS idx_energies_method ON energies(method)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// PutCharges upserts charge rows in one transaction.
func (s *Store) PutCharges(ctx context.Context, rows []tables.ChargeRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO charges (cid, atom, atom_type, method, charge)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cid, atom, method) DO UPDATE SET
			atom_type=excluded.atom_type, charge=excluded.charge`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()
	for _, r := range rows {
		_, err := stmt.ExecContext(ctx, r.CID, r.AtomNumber, r.AtomType, r.Method, r.Charge)
		if err != nil {
			return fmt.Errorf("inserting charge %s/%d/%s: %w", r.CID, r.AtomNumber, r.Method, err)
		}
	}
	return tx.Commit()
}

// PutEnergies upserts energy rows in one transaction.
func (s *Store) PutEnergies(ctx context.Context, rows []tables.EnergyRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO energies (cid, method, energy) VALUES (?, ?, ?)
		 ON CONFLICT(cid, method) DO UPDATE SET energy=excluded.energy`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.CID, r.Method, r.Energy); err != nil {
			return fmt.Errorf("inserting energy %s/%s: %w", r.CID, r.Method, err)
		}
	}
	return tx.Commit()
}

// A Filter restricts queries to the given methods and scan points.
// Empty slices select everything.
type Filter struct {
	Methods []string
	CIDs    []string
}

func (f Filter) clause() (string, []any) {
	var conds []string
	var args []any
	if len(f.Methods) > 0 {
		conds = append(conds, "method IN ("+placeholders(len(f.Methods))+")")
		for _, m := range f.Methods {
			args = append(args, m)
		}
	}
	if len(f.CIDs) > 0 {
		conds = append(conds, "cid IN ("+placeholders(len(f.CIDs))+")")
		for _, c := range f.CIDs {
			args = append(args, c)
		}
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// Charges returns the stored charge rows matching f, ordered by scan
// point, atom and method.
func (s *Store) Charges(ctx context.Context, f Filter) ([]tables.ChargeRow, error) {
	where, args := f.clause()
	q := `SELECT cid, atom, atom_type, method, charge FROM charges` + where +
		` ORDER BY cid, atom, method`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying charges: %w", err)
	}
	defer rows.Close()
	var out []tables.ChargeRow
	for rows.Next() {
		var r tables.ChargeRow
		if err := rows.Scan(&r.CID, &r.AtomNumber, &r.AtomType, &r.Method, &r.Charge); err != nil {
			return nil, fmt.Errorf("scanning charge row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Energies returns the stored energy rows matching f, ordered by scan
// point and method.
func (s *Store) Energies(ctx context.Context, f Filter) ([]tables.EnergyRow, error) {
	where, args := f.clause()
	q := `SELECT cid, method, energy FROM energies` + where + ` ORDER BY cid, method`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying energies: %w", err)
	}
	defer rows.Close()
	var out []tables.EnergyRow
	for rows.Next() {
		var r tables.EnergyRow
		if err := rows.Scan(&r.CID, &r.Method, &r.Energy); err != nil {
			return nil, fmt.Errorf("scanning energy row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Methods lists the distinct methods present in either table.
func (s *Store) Methods(ctx context.Context) ([]string, error) {
	q := `SELECT method FROM charges UNION SELECT method FROM energies ORDER BY method`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying methods: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scanning method: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ImportCharges loads a long-format charges CSV into the database.
func (s *Store) ImportCharges(ctx context.Context, path string) (int, error) {
	rows, err := tables.ReadChargesFile(path)
	if err != nil {
		return 0, err
	}
	return len(rows), s.PutCharges(ctx, rows)
}

// ImportEnergies loads a long-format energies CSV into the database.
func (s *Store) ImportEnergies(ctx context.Context, path string) (int, error) {
	rows, err := tables.ReadEnergiesFile(path)
	if err != nil {
		return 0, err
	}
	return len(rows), s.PutEnergies(ctx, rows)
}
