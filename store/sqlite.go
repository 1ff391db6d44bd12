// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package store

import (
	"context"
	"database/sql"
	"sync"

	gs "github.com/db47h/gatesim"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore stores a circuit in a SQLite database, one row per gate, wire
// and placed chip.
//
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates the database at path. Use ":memory:" for a
// private in-memory database.
//
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	// a single connection also keeps a :memory: database alive.
	db.SetMaxOpenConns(1)

	if err = InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

type portsColumn struct {
	Ins  []PortRecord `yaml:"ins,omitempty"`
	Outs []PortRecord `yaml:"outs,omitempty"`
}

// Save implements Store.
//
func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	for _, table := range []string{"gates", "wires", "instances"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return errors.Wrapf(err, "clear %s", table)
		}
	}
	for _, r := range snap.Gates {
		ports, err := yaml.Marshal(portsColumn{Ins: r.Ins, Outs: r.Outs})
		if err != nil {
			return errors.Wrapf(err, "encode ports of gate %v", r.ID)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO gates (id, label, kind, x, y, width, height, state, ports)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			int64(r.ID), r.Label, r.Kind.String(), r.Pos.X, r.Pos.Y, r.Size.X, r.Size.Y, r.State, string(ports))
		if err != nil {
			return errors.Wrapf(err, "insert gate %v", r.ID)
		}
	}
	for _, r := range snap.Wires {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO wires (id, source, dest, x1, y1, x2, y2)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			int64(r.ID), int64(r.Source), int64(r.Dest), r.Line.P1.X, r.Line.P1.Y, r.Line.P2.X, r.Line.P2.Y)
		if err != nil {
			return errors.Wrapf(err, "insert wire %v", r.ID)
		}
	}
	for _, r := range snap.Chips {
		body, err := yaml.Marshal(r)
		if err != nil {
			return errors.Wrapf(err, "encode chip %v", r.ID)
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO instances (id, body) VALUES (?, ?)`, int64(r.ID), string(body)); err != nil {
			return errors.Wrapf(err, "insert chip %v", r.ID)
		}
	}
	return errors.Wrap(tx.Commit(), "commit circuit")
}

// Load implements Store. Records are returned in increasing id order.
//
func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := new(Snapshot)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, kind, x, y, width, height, state, ports
		FROM gates ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query gates")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			r           GateRecord
			id          int64
			kind, ports string
			pc          portsColumn
		)
		if err = rows.Scan(&id, &r.Label, &kind, &r.Pos.X, &r.Pos.Y, &r.Size.X, &r.Size.Y, &r.State, &ports); err != nil {
			return nil, errors.Wrap(err, "scan gate")
		}
		if err = yaml.Unmarshal([]byte(ports), &pc); err != nil {
			return nil, errors.Wrapf(err, "decode ports of gate %d", id)
		}
		r.ID, r.Kind, r.Ins, r.Outs = gs.ID(id), gs.ParseGateKind(kind), pc.Ins, pc.Outs
		snap.Gates = append(snap.Gates, r)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read gates")
	}

	wrows, err := s.db.QueryContext(ctx, `SELECT id, source, dest, x1, y1, x2, y2 FROM wires ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query wires")
	}
	defer wrows.Close()
	for wrows.Next() {
		var (
			r                WireRecord
			id, source, dest int64
		)
		if err = wrows.Scan(&id, &source, &dest, &r.Line.P1.X, &r.Line.P1.Y, &r.Line.P2.X, &r.Line.P2.Y); err != nil {
			return nil, errors.Wrap(err, "scan wire")
		}
		r.ID, r.Source, r.Dest = gs.ID(id), gs.ID(source), gs.ID(dest)
		snap.Wires = append(snap.Wires, r)
	}
	if err = wrows.Err(); err != nil {
		return nil, errors.Wrap(err, "read wires")
	}

	if snap.Chips, err = s.queryChips(ctx, `SELECT body FROM instances ORDER BY id`); err != nil {
		return nil, err
	}
	return snap, nil
}

// SaveChip implements Store.
//
func (s *SQLiteStore) SaveChip(ctx context.Context, c ChipRecord) error {
	if c.Name == "" {
		return errors.Wrapf(ErrInvalidName, "%q", c.Name)
	}
	c.ID, c.Pos = gs.NoID, gs.Point{}
	body, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrapf(err, "encode chip %s", c.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chips (name, body) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body`,
		c.Name, string(body))
	return errors.Wrapf(err, "save chip %s", c.Name)
}

// LoadChips implements Store.
//
func (s *SQLiteStore) LoadChips(ctx context.Context) ([]ChipRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryChips(ctx, `SELECT body FROM chips ORDER BY name`)
}

func (s *SQLiteStore) queryChips(ctx context.Context, query string) ([]ChipRecord, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "query chips")
	}
	defer rows.Close()
	var cs []ChipRecord
	for rows.Next() {
		var (
			body string
			c    ChipRecord
		)
		if err = rows.Scan(&body); err != nil {
			return nil, errors.Wrap(err, "scan chip")
		}
		if err = yaml.Unmarshal([]byte(body), &c); err != nil {
			return nil, errors.Wrap(err, "decode chip")
		}
		cs = append(cs, c)
	}
	return cs, errors.Wrap(rows.Err(), "read chips")
}

// Close closes the database.
//
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
