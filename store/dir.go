// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	gs "github.com/db47h/gatesim"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File extensions of the directory store.
//
const (
	GateExt = ".gate"
	WireExt = ".wire"
	InstExt = ".inst" // placed chip
	ChipExt = ".chip" // chip library entry
)

// PrimitivesFile is the name of the template list read by DirStore.Templates.
//
const PrimitivesFile = "primitives"

// DirStore stores a circuit as one YAML file per gate (<id>.gate), wire
// (<id>.wire) and placed chip (<id>.inst). Library chips are stored as
// <name>.chip.
//
type DirStore struct {
	dir string
}

var _ Store = (*DirStore)(nil)

// NewDirStore returns a store rooted at dir. The directory is created if
// needed.
//
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create save directory")
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the store directory.
//
func (s *DirStore) Dir() string { return s.dir }

// Save implements Store. Files of the previously saved circuit are removed.
//
func (s *DirStore) Save(ctx context.Context, snap *Snapshot) error {
	for _, ext := range []string{GateExt, WireExt, InstExt} {
		files, err := filepath.Glob(filepath.Join(s.dir, "*"+ext))
		if err != nil {
			return errors.WithStack(err)
		}
		for _, f := range files {
			if err = os.Remove(f); err != nil {
				return errors.Wrap(err, "clear save directory")
			}
		}
	}
	for _, r := range snap.Gates {
		if err := s.write(ctx, idFile(r.ID, GateExt), r); err != nil {
			return err
		}
	}
	for _, r := range snap.Wires {
		if err := s.write(ctx, idFile(r.ID, WireExt), r); err != nil {
			return err
		}
	}
	for _, r := range snap.Chips {
		if err := s.write(ctx, idFile(r.ID, InstExt), r); err != nil {
			return err
		}
	}
	return nil
}

// Load implements Store. Records are returned in increasing id order.
//
func (s *DirStore) Load(ctx context.Context) (*Snapshot, error) {
	snap := new(Snapshot)
	if err := readAll(ctx, s, GateExt, &snap.Gates); err != nil {
		return nil, err
	}
	if err := readAll(ctx, s, WireExt, &snap.Wires); err != nil {
		return nil, err
	}
	if err := readAll(ctx, s, InstExt, &snap.Chips); err != nil {
		return nil, err
	}
	sort.Slice(snap.Gates, func(i, j int) bool { return snap.Gates[i].ID < snap.Gates[j].ID })
	sort.Slice(snap.Wires, func(i, j int) bool { return snap.Wires[i].ID < snap.Wires[j].ID })
	sort.Slice(snap.Chips, func(i, j int) bool { return snap.Chips[i].ID < snap.Chips[j].ID })
	return snap, nil
}

// SaveChip implements Store.
//
func (s *DirStore) SaveChip(ctx context.Context, c ChipRecord) error {
	if c.Name == "" || strings.ContainsAny(c.Name, `/\`) || c.Name == "." || c.Name == ".." {
		return errors.Wrapf(ErrInvalidName, "%q", c.Name)
	}
	c.ID, c.Pos = gs.NoID, gs.Point{}
	return s.write(ctx, c.Name+ChipExt, c)
}

// LoadChips implements Store.
//
func (s *DirStore) LoadChips(ctx context.Context) ([]ChipRecord, error) {
	var cs []ChipRecord
	if err := readAll(ctx, s, ChipExt, &cs); err != nil {
		return nil, err
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
	return cs, nil
}

// Templates returns the gate templates listed in the primitives file of the
// store directory, or the built-in primitives if there is no such file.
//
func (s *DirStore) Templates() ([]gs.Template, error) {
	f, err := os.Open(filepath.Join(s.dir, PrimitivesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return gs.Primitives(), nil
		}
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return gs.ParseTemplates(f)
}

// Close implements Store.
//
func (s *DirStore) Close() error { return nil }

func idFile(id gs.ID, ext string) string {
	return strconv.FormatUint(uint64(id), 10) + ext
}

func (s *DirStore) write(ctx context.Context, name string, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", name)
	}
	if err = os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	return nil
}

// readAll decodes every file of the store directory with the given extension
// and appends the records to out.
func readAll[T any](ctx context.Context, s *DirStore, ext string, out *[]T) error {
	files, err := filepath.Glob(filepath.Join(s.dir, "*"+ext))
	if err != nil {
		return errors.WithStack(err)
	}
	for _, f := range files {
		if err = ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(f)
		if err != nil {
			return errors.Wrapf(err, "read %s", filepath.Base(f))
		}
		var r T
		if err = yaml.Unmarshal(data, &r); err != nil {
			return errors.Wrapf(err, "decode %s", filepath.Base(f))
		}
		*out = append(*out, r)
	}
	return nil
}
