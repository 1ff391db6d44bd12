// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package store

import (
	gs "github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

// Import places the gates, wires and chips of snap into a with fresh ids and
// returns the mapping from snapshot ids to arena ids, ports included.
//
// The snapshot is checked before anything is placed: a wire referencing a
// port that is not in the snapshot gives ErrMissingElement, and two wires
// bound to the same input give ErrConstraintViolation.
//
func Import(a *gs.Arena, snap *Snapshot) (map[gs.ID]gs.ID, error) {
	if err := check(snap.Gates, snap.Wires); err != nil {
		return nil, err
	}
	chips := make([]*gs.Chip, len(snap.Chips))
	for i, r := range snap.Chips {
		c, err := ImportChip(r)
		if err != nil {
			return nil, err
		}
		chips[i] = c
	}

	m := make(map[gs.ID]gs.ID)
	for _, r := range snap.Gates {
		t := gs.Template{Label: r.Label, Type: r.Kind, Ins: len(r.Ins), Outs: len(r.Outs)}
		g, err := a.Place(t, r.Pos)
		if err != nil {
			return m, errors.Wrapf(err, "import gate %v", r.ID)
		}
		if r.Size != (gs.Point{}) {
			g.Size = r.Size
		}
		g.State = r.State
		m[r.ID] = g.ID
		for i, p := range r.Ins {
			m[p.ID] = g.Ins[i]
			if in, err := a.Input(g.Ins[i]); err == nil {
				in.Name = p.Name
			}
		}
		for i, p := range r.Outs {
			m[p.ID] = g.Outs[i]
			if out, err := a.Output(g.Outs[i]); err == nil {
				out.Name = p.Name
			}
		}
	}
	for _, r := range snap.Wires {
		var (
			w   *gs.Wire
			err error
		)
		if r.Dest == gs.NoID {
			if w, err = a.NewWire(m[r.Source], r.Line.P2); err == nil {
				w.Line = r.Line
			}
		} else {
			w, err = a.Connect(m[r.Source], m[r.Dest])
		}
		if err != nil {
			return m, errors.Wrapf(err, "import wire %v", r.ID)
		}
		m[r.ID] = w.ID
	}
	for i, r := range snap.Chips {
		c, err := a.AddChip(chips[i], r.Pos)
		if err != nil {
			return m, errors.Wrapf(err, "import chip %v", r.ID)
		}
		m[r.ID] = c.ID
	}
	return m, nil
}

// check verifies that wires only reference ports of the given gates and that
// no input is bound twice.
func check(gates []GateRecord, wires []WireRecord) error {
	ins := make(map[gs.ID]bool)
	outs := make(map[gs.ID]bool)
	for _, g := range gates {
		for _, p := range g.Ins {
			ins[p.ID] = true
		}
		for _, p := range g.Outs {
			outs[p.ID] = true
		}
	}
	bound := make(map[gs.ID]gs.ID)
	for _, w := range wires {
		if !outs[w.Source] {
			return errors.Wrapf(gs.ErrMissingElement, "wire %v: source output %v", w.ID, w.Source)
		}
		if w.Dest == gs.NoID {
			continue
		}
		if !ins[w.Dest] {
			return errors.Wrapf(gs.ErrMissingElement, "wire %v: destination input %v", w.ID, w.Dest)
		}
		if other, ok := bound[w.Dest]; ok {
			return errors.Wrapf(gs.ErrConstraintViolation, "wires %v and %v both bound to input %v", other, w.ID, w.Dest)
		}
		bound[w.Dest] = w.ID
	}
	return nil
}

// ImportChip builds a chip from its record. The chip keeps the ids of the
// record and is not placed.
//
func ImportChip(r ChipRecord) (*gs.Chip, error) {
	if err := check(r.Gates, r.Wires); err != nil {
		return nil, errors.Wrapf(err, "chip %s", r.Name)
	}
	c := &gs.Chip{
		Name:    r.Name,
		Gates:   make(map[gs.ID]*gs.Gate, len(r.Gates)),
		Wires:   make(map[gs.ID]*gs.Wire, len(r.Wires)),
		Inputs:  make(map[gs.ID]*gs.Input),
		Outputs: make(map[gs.ID]*gs.Output),
		Chips:   make(map[gs.ID]*gs.Chip, len(r.Chips)),
		Ins:     make(map[gs.ID]bool, len(r.Ins)),
		Outs:    make(map[gs.ID]bool, len(r.Outs)),
	}
	for _, gr := range r.Gates {
		g := &gs.Gate{
			ID:    gr.ID,
			Label: gr.Label,
			Type:  gr.Kind,
			Pos:   gr.Pos,
			Size:  gr.Size,
			State: gr.State,
			Ins:   make([]gs.ID, len(gr.Ins)),
			Outs:  make([]gs.ID, len(gr.Outs)),
		}
		for i, p := range gr.Ins {
			g.Ins[i] = p.ID
			c.Inputs[p.ID] = &gs.Input{ID: p.ID, Index: i, Name: p.Name, Parent: gr.ID}
		}
		for i, p := range gr.Outs {
			g.Outs[i] = p.ID
			c.Outputs[p.ID] = &gs.Output{ID: p.ID, Index: i, Name: p.Name, Parent: gr.ID}
		}
		c.Gates[gr.ID] = g
	}
	for _, wr := range r.Wires {
		c.Wires[wr.ID] = &gs.Wire{ID: wr.ID, Source: wr.Source, Dest: wr.Dest, Connected: wr.Dest != gs.NoID, Line: wr.Line}
		out := c.Outputs[wr.Source]
		out.Wires = append(out.Wires, wr.ID)
		if wr.Dest != gs.NoID {
			c.Inputs[wr.Dest].Wire = wr.ID
		}
	}
	for _, sr := range r.Chips {
		sub, err := ImportChip(sr)
		if err != nil {
			return nil, errors.Wrapf(err, "chip %s", r.Name)
		}
		sub.Pos = sr.Pos
		c.Chips[sr.ID] = sub
	}
	for _, id := range r.Ins {
		g := c.Gates[id]
		if g == nil {
			return nil, errors.Wrapf(gs.ErrMissingElement, "chip %s: input port %v", r.Name, id)
		}
		c.Ins[id] = g.State
	}
	for _, id := range r.Outs {
		g := c.Gates[id]
		if g == nil {
			return nil, errors.Wrapf(gs.ErrMissingElement, "chip %s: output port %v", r.Name, id)
		}
		c.Outs[id] = g.State
	}
	return c, nil
}
