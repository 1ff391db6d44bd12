// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// SchemaVersion is the current version of the SQLite schema.
//
const SchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS gates (
    id INTEGER PRIMARY KEY,
    label TEXT NOT NULL,
    kind TEXT NOT NULL,
    x REAL NOT NULL,
    y REAL NOT NULL,
    width REAL NOT NULL,
    height REAL NOT NULL,
    state INTEGER NOT NULL DEFAULT 0,
    ports TEXT NOT NULL  -- YAML: ins and outs port records
);

CREATE TABLE IF NOT EXISTS wires (
    id INTEGER PRIMARY KEY,
    source INTEGER NOT NULL,
    dest INTEGER NOT NULL DEFAULT 0,  -- 0 for a held wire
    x1 REAL NOT NULL,
    y1 REAL NOT NULL,
    x2 REAL NOT NULL,
    y2 REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_wires_source ON wires(source);

-- chips placed in the circuit
CREATE TABLE IF NOT EXISTS instances (
    id INTEGER PRIMARY KEY,
    body TEXT NOT NULL  -- YAML chip record
);

-- chip library
CREATE TABLE IF NOT EXISTS chips (
    name TEXT PRIMARY KEY,
    body TEXT NOT NULL
);
`

// InitSchema creates the tables of the SQLite store if needed.
//
func InitSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, schemaV1); err != nil {
		return errors.Wrap(err, "create schema")
	}
	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return errors.Wrap(err, "read schema version")
	}
	if version > SchemaVersion {
		return errors.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion)
	}
	if version < SchemaVersion {
		if _, err = tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, SchemaVersion); err != nil {
			return errors.Wrap(err, "set schema version")
		}
	}
	return errors.Wrap(tx.Commit(), "commit schema")
}
