// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package store saves and loads gatesim circuits.
//
// A circuit is exported to a Snapshot of plain records that reference each
// other by id. Importing a snapshot places new elements with fresh ids, so a
// snapshot can be loaded into a non-empty arena, or several times.
//
// Two backends are provided: DirStore keeps one YAML file per record in a
// directory and SQLiteStore keeps one row per record in a SQLite database.
//
package store

import (
	"context"
	"sort"

	gs "github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

// A PortRecord describes a gate port. Ports are listed in pin order.
//
type PortRecord struct {
	ID   gs.ID  `yaml:"id"`
	Name string `yaml:"name,omitempty"`
}

// A GateRecord describes a gate and its ports.
//
type GateRecord struct {
	ID    gs.ID        `yaml:"id"`
	Label string       `yaml:"label"`
	Kind  gs.GateKind  `yaml:"kind"`
	Pos   gs.Point     `yaml:"pos"`
	Size  gs.Point     `yaml:"size"`
	State bool         `yaml:"state,omitempty"`
	Ins   []PortRecord `yaml:"ins,omitempty"`
	Outs  []PortRecord `yaml:"outs,omitempty"`
}

// A WireRecord describes a wire. Dest is NoID for a held wire.
//
type WireRecord struct {
	ID     gs.ID   `yaml:"id"`
	Source gs.ID   `yaml:"source"`
	Dest   gs.ID   `yaml:"dest,omitempty"`
	Line   gs.Line `yaml:"line"`
}

// A ChipRecord describes a chip. Ids of the gates, wires and nested chips it
// contains are local to the chip. ID and Pos are only set for placed chips.
//
type ChipRecord struct {
	ID    gs.ID        `yaml:"id,omitempty"`
	Name  string       `yaml:"name"`
	Pos   gs.Point     `yaml:"pos,omitempty"`
	Gates []GateRecord `yaml:"gates,omitempty"`
	Wires []WireRecord `yaml:"wires,omitempty"`
	Chips []ChipRecord `yaml:"chips,omitempty"`
	Ins   []gs.ID      `yaml:"ins,omitempty"`
	Outs  []gs.ID      `yaml:"outs,omitempty"`
}

// A Snapshot is a saved circuit.
//
type Snapshot struct {
	Gates []GateRecord
	Wires []WireRecord
	Chips []ChipRecord
}

// Store is implemented by circuit storage backends.
//
type Store interface {
	// Save replaces the saved circuit with snap.
	Save(ctx context.Context, snap *Snapshot) error
	// Load returns the saved circuit. It returns an empty snapshot if
	// nothing was saved yet.
	Load(ctx context.Context) (*Snapshot, error)
	// SaveChip adds a chip to the chip library, replacing any chip with the
	// same name.
	SaveChip(ctx context.Context, c ChipRecord) error
	// LoadChips returns the chip library sorted by name.
	LoadChips(ctx context.Context) ([]ChipRecord, error)
	Close() error
}

// ErrInvalidName is returned when saving a chip whose name cannot be stored.
//
var ErrInvalidName = errors.New("invalid chip name")

// Export returns a snapshot of every gate, wire and placed chip of a.
//
func Export(a *gs.Arena) *Snapshot {
	snap := new(Snapshot)
	for _, g := range a.Gates() {
		r := gateRecord(g)
		for i, id := range g.Ins {
			if in, err := a.Input(id); err == nil {
				r.Ins[i].Name = in.Name
			}
		}
		for i, id := range g.Outs {
			if out, err := a.Output(id); err == nil {
				r.Outs[i].Name = out.Name
			}
		}
		snap.Gates = append(snap.Gates, r)
	}
	for _, w := range a.Wires() {
		snap.Wires = append(snap.Wires, wireRecord(w))
	}
	for _, c := range a.Chips() {
		r := ExportChip(c)
		r.ID, r.Pos = c.ID, c.Pos
		snap.Chips = append(snap.Chips, r)
	}
	return snap
}

func gateRecord(g *gs.Gate) GateRecord {
	r := GateRecord{
		ID:    g.ID,
		Label: g.Label,
		Kind:  g.Type,
		Pos:   g.Pos,
		Size:  g.Size,
		State: g.State,
		Ins:   make([]PortRecord, len(g.Ins)),
		Outs:  make([]PortRecord, len(g.Outs)),
	}
	for i, id := range g.Ins {
		r.Ins[i].ID = id
	}
	for i, id := range g.Outs {
		r.Outs[i].ID = id
	}
	return r
}

func wireRecord(w *gs.Wire) WireRecord {
	return WireRecord{ID: w.ID, Source: w.Source, Dest: w.Dest, Line: w.Line}
}

// ExportChip returns the record of a chip definition, without id or position.
//
func ExportChip(c *gs.Chip) ChipRecord {
	r := ChipRecord{Name: c.Name, Ins: c.InPorts(), Outs: c.OutPorts()}
	for _, id := range sortedIDs(c.Gates) {
		g := c.Gates[id]
		gr := gateRecord(g)
		for i, pid := range g.Ins {
			if in := c.Inputs[pid]; in != nil {
				gr.Ins[i].Name = in.Name
			}
		}
		for i, pid := range g.Outs {
			if out := c.Outputs[pid]; out != nil {
				gr.Outs[i].Name = out.Name
			}
		}
		r.Gates = append(r.Gates, gr)
	}
	for _, id := range sortedIDs(c.Wires) {
		r.Wires = append(r.Wires, wireRecord(c.Wires[id]))
	}
	for _, id := range sortedIDs(c.Chips) {
		sub := ExportChip(c.Chips[id])
		sub.ID, sub.Pos = id, c.Chips[id].Pos
		r.Chips = append(r.Chips, sub)
	}
	return r
}

func sortedIDs[T any](m map[gs.ID]T) []gs.ID {
	ids := make([]gs.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
