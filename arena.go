// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"sort"

	"github.com/pkg/errors"
)

// Port layout, relative to the gate position.
const (
	portOffsetX = 50.0
	portSpacing = 30.0
)

// Arena is the id-keyed store owning every element of a circuit.
//
// An Arena is not safe for concurrent use. Session serializes access to the
// arena it owns.
//
type Arena struct {
	alloc *IDAllocator
	elems map[ID]Element
}

// NewArena returns an empty arena issuing ids from alloc. If alloc is nil, the
// arena gets its own allocator.
//
func NewArena(alloc *IDAllocator) *Arena {
	if alloc == nil {
		alloc = NewIDAllocator()
	}
	return &Arena{alloc: alloc, elems: make(map[ID]Element)}
}

// Len returns the number of elements in the arena.
//
func (a *Arena) Len() int { return len(a.elems) }

// IDs returns the ids of all elements in increasing order.
//
func (a *Arena) IDs() []ID {
	ids := make([]ID, 0, len(a.elems))
	for id := range a.elems {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Get returns the element with the given id.
//
func (a *Arena) Get(id ID) (Element, error) {
	e, ok := a.elems[id]
	if !ok {
		return nil, missing(id)
	}
	return e, nil
}

// Gate returns the gate with the given id.
//
func (a *Arena) Gate(id ID) (*Gate, error) {
	e, err := a.Get(id)
	if err != nil {
		return nil, err
	}
	g, ok := e.(*Gate)
	if !ok {
		return nil, wrongKind(id, e.Kind(), KindGate)
	}
	return g, nil
}

// Input returns the input port with the given id.
//
func (a *Arena) Input(id ID) (*Input, error) {
	e, err := a.Get(id)
	if err != nil {
		return nil, err
	}
	in, ok := e.(*Input)
	if !ok {
		return nil, wrongKind(id, e.Kind(), KindInput)
	}
	return in, nil
}

// Output returns the output port with the given id.
//
func (a *Arena) Output(id ID) (*Output, error) {
	e, err := a.Get(id)
	if err != nil {
		return nil, err
	}
	out, ok := e.(*Output)
	if !ok {
		return nil, wrongKind(id, e.Kind(), KindOutput)
	}
	return out, nil
}

// Wire returns the wire with the given id.
//
func (a *Arena) Wire(id ID) (*Wire, error) {
	e, err := a.Get(id)
	if err != nil {
		return nil, err
	}
	w, ok := e.(*Wire)
	if !ok {
		return nil, wrongKind(id, e.Kind(), KindWire)
	}
	return w, nil
}

// Chip returns the chip with the given id.
//
func (a *Arena) Chip(id ID) (*Chip, error) {
	e, err := a.Get(id)
	if err != nil {
		return nil, err
	}
	c, ok := e.(*Chip)
	if !ok {
		return nil, wrongKind(id, e.Kind(), KindChip)
	}
	return c, nil
}

// Gates returns all gates in increasing id order.
//
func (a *Arena) Gates() []*Gate {
	var gs []*Gate
	for _, id := range a.IDs() {
		if g, ok := a.elems[id].(*Gate); ok {
			gs = append(gs, g)
		}
	}
	return gs
}

// Wires returns all wires in increasing id order.
//
func (a *Arena) Wires() []*Wire {
	var ws []*Wire
	for _, id := range a.IDs() {
		if w, ok := a.elems[id].(*Wire); ok {
			ws = append(ws, w)
		}
	}
	return ws
}

// Chips returns all chips in increasing id order.
//
func (a *Arena) Chips() []*Chip {
	var cs []*Chip
	for _, id := range a.IDs() {
		if c, ok := a.elems[id].(*Chip); ok {
			cs = append(cs, c)
		}
	}
	return cs
}

// Place creates a gate from a template at the given position, along with its
// input and output ports. The gate and its ports are inserted together.
//
func (a *Arena) Place(t Template, pos Point) (*Gate, error) {
	if a.alloc == nil {
		return nil, errors.Wrap(ErrInvalidOperation, "arena has no id allocator")
	}
	if t.Ins < 0 || t.Outs < 0 {
		return nil, errors.Errorf("template %s: negative port count", t.Label)
	}
	g := &Gate{
		ID:    a.alloc.Next(),
		Label: t.Label,
		Type:  t.Type,
		Pos:   pos,
		Size:  DefaultGateSize,
		Ins:   make([]ID, t.Ins),
		Outs:  make([]ID, t.Outs),
	}
	if g.Label == "" {
		g.Label = t.Type.String()
	}
	ports := make([]Element, 0, t.Ins+t.Outs)
	for i := range g.Ins {
		in := &Input{ID: a.alloc.Next(), Index: i, Parent: g.ID}
		g.Ins[i] = in.ID
		ports = append(ports, in)
	}
	for i := range g.Outs {
		out := &Output{ID: a.alloc.Next(), Index: i, Parent: g.ID}
		g.Outs[i] = out.ID
		ports = append(ports, out)
	}
	switch g.Type {
	case HiSignal:
		g.State = true
	}
	a.elems[g.ID] = g
	for _, p := range ports {
		a.elems[p.elementID()] = p
	}
	return g, nil
}

// NewWire creates a held wire anchored at output src, with both ends at pos.
//
func (a *Arena) NewWire(src ID, pos Point) (*Wire, error) {
	if a.alloc == nil {
		return nil, errors.Wrap(ErrInvalidOperation, "arena has no id allocator")
	}
	out, err := a.Output(src)
	if err != nil {
		return nil, err
	}
	w := &Wire{ID: a.alloc.Next(), Source: src, Line: Line{pos, pos}}
	out.Wires = append(out.Wires, w.ID)
	a.elems[w.ID] = w
	return w, nil
}

// Connect creates a wire from output src to input dst.
//
func (a *Arena) Connect(src, dst ID) (*Wire, error) {
	in, err := a.Input(dst)
	if err != nil {
		return nil, err
	}
	if in.Wire != NoID {
		return nil, errors.Wrapf(ErrConstraintViolation, "input %v already bound to wire %v", dst, in.Wire)
	}
	p1, _ := a.PortPosition(src)
	w, err := a.NewWire(src, p1)
	if err != nil {
		return nil, err
	}
	if err = a.Bind(w.ID, dst); err != nil {
		// cannot happen, dst was checked above
		_ = a.Remove(w.ID)
		return nil, err
	}
	return w, nil
}

// Bind attaches the free end of a held wire to input dst.
//
func (a *Arena) Bind(wire, dst ID) error {
	w, err := a.Wire(wire)
	if err != nil {
		return err
	}
	in, err := a.Input(dst)
	if err != nil {
		return err
	}
	if w.Dest != NoID {
		return errors.Wrapf(ErrConstraintViolation, "wire %v already bound to input %v", wire, w.Dest)
	}
	if in.Wire != NoID {
		return errors.Wrapf(ErrConstraintViolation, "input %v already bound to wire %v", dst, in.Wire)
	}
	w.Dest = dst
	w.Connected = true
	in.Wire = wire
	if p, err := a.PortPosition(dst); err == nil {
		w.Line.P2 = p
	}
	return nil
}

// Detach unbinds the wire ending at input dst and returns its id. The wire
// goes back to the held state.
//
func (a *Arena) Detach(dst ID) (ID, error) {
	in, err := a.Input(dst)
	if err != nil {
		return NoID, err
	}
	if in.Wire == NoID {
		return NoID, errors.Wrapf(ErrInvalidOperation, "input %v is not bound", dst)
	}
	id := in.Wire
	in.Wire = NoID
	if w, err := a.Wire(id); err == nil && w.Dest == dst {
		w.Dest = NoID
		w.Connected = false
	}
	return id, nil
}

// Reanchor moves the source end of a wire to output src.
//
func (a *Arena) Reanchor(wire, src ID) error {
	w, err := a.Wire(wire)
	if err != nil {
		return err
	}
	out, err := a.Output(src)
	if err != nil {
		return err
	}
	if w.Source == src {
		return nil
	}
	if old, err := a.Output(w.Source); err == nil {
		old.Wires = removeID(old.Wires, wire)
	}
	w.Source = src
	out.Wires = append(out.Wires, wire)
	if p, err := a.PortPosition(src); err == nil {
		w.Line.P1 = p
	}
	return nil
}

// Remove deletes an element and every reference to it:
//
//	- a wire is unregistered from its source and destination ports
//	- a port is removed from its parent gate, along with its wires
//	- a gate is removed along with its ports and their wires
//
func (a *Arena) Remove(id ID) error {
	e, err := a.Get(id)
	if err != nil {
		return err
	}
	switch e := e.(type) {
	case *Wire:
		a.removeWire(e)
	case *Input:
		a.removeInput(e, true)
	case *Output:
		a.removeOutput(e, true)
	case *Gate:
		for _, pid := range e.Ins {
			if in, err := a.Input(pid); err == nil {
				a.removeInput(in, false)
			}
		}
		for _, pid := range e.Outs {
			if out, err := a.Output(pid); err == nil {
				a.removeOutput(out, false)
			}
		}
		delete(a.elems, id)
	case *Chip:
		delete(a.elems, id)
	}
	return nil
}

func (a *Arena) removeWire(w *Wire) {
	if out, err := a.Output(w.Source); err == nil {
		out.Wires = removeID(out.Wires, w.ID)
	}
	if w.Dest != NoID {
		if in, err := a.Input(w.Dest); err == nil && in.Wire == w.ID {
			in.Wire = NoID
		}
	}
	delete(a.elems, w.ID)
}

func (a *Arena) removeInput(in *Input, unlink bool) {
	if w, err := a.Wire(in.Wire); err == nil {
		a.removeWire(w)
	}
	if unlink {
		if g, err := a.Gate(in.Parent); err == nil {
			g.Ins = removeID(g.Ins, in.ID)
		}
	}
	delete(a.elems, in.ID)
}

func (a *Arena) removeOutput(out *Output, unlink bool) {
	for _, wid := range append([]ID(nil), out.Wires...) {
		if w, err := a.Wire(wid); err == nil {
			a.removeWire(w)
		}
	}
	if unlink {
		if g, err := a.Gate(out.Parent); err == nil {
			g.Outs = removeID(g.Outs, out.ID)
		}
	}
	delete(a.elems, out.ID)
}

// Signal returns the signal of an element. For gates and chips this is the
// display state.
//
func (a *Arena) Signal(id ID) (bool, error) {
	e, err := a.Get(id)
	if err != nil {
		return false, err
	}
	switch e := e.(type) {
	case *Gate:
		return e.State, nil
	case *Input:
		return e.Signal, nil
	case *Output:
		return e.Signal, nil
	case *Wire:
		return e.Signal, nil
	case *Chip:
		for _, v := range e.Outs {
			if v {
				return true, nil
			}
		}
		return false, nil
	}
	panic("unreachable")
}

// Kind returns the element kind of id.
//
func (a *Arena) Kind(id ID) (Kind, error) {
	e, err := a.Get(id)
	if err != nil {
		return 0, err
	}
	return e.Kind(), nil
}

// GateKind returns the gate kind of a gate or chip. Chips report Custom.
//
func (a *Arena) GateKind(id ID) (GateKind, error) {
	e, err := a.Get(id)
	if err != nil {
		return Custom, err
	}
	switch e := e.(type) {
	case *Gate:
		return e.Type, nil
	case *Chip:
		return Custom, nil
	}
	return Custom, wrongKind(id, e.Kind(), KindGate)
}

// Position returns the position of a gate, a placed chip, or the source end of
// a wire. Ports have no position of their own, see PortPosition.
//
func (a *Arena) Position(id ID) (Point, error) {
	e, err := a.Get(id)
	if err != nil {
		return Point{}, err
	}
	switch e := e.(type) {
	case *Gate:
		return e.Pos, nil
	case *Chip:
		if !e.Placed {
			return Point{}, errors.Wrapf(ErrInvalidOperation, "chip %v has no position", id)
		}
		return e.Pos, nil
	case *Wire:
		return e.Line.P1, nil
	}
	return Point{}, errors.Wrapf(ErrInvalidOperation, "%v %v has no position", e.Kind(), id)
}

// SetPosition moves a gate or chip.
//
func (a *Arena) SetPosition(id ID, pos Point) error {
	e, err := a.Get(id)
	if err != nil {
		return err
	}
	switch e := e.(type) {
	case *Gate:
		e.Pos = pos
		a.relayWires(e)
		return nil
	case *Chip:
		e.Pos = pos
		e.Placed = true
		return nil
	}
	return errors.Wrapf(ErrInvalidOperation, "cannot move %v %v", e.Kind(), id)
}

// relayWires moves the ends of the wires attached to g.
func (a *Arena) relayWires(g *Gate) {
	for _, pid := range g.Ins {
		in, err := a.Input(pid)
		if err != nil {
			continue
		}
		if w, err := a.Wire(in.Wire); err == nil {
			w.Line.P2, _ = a.PortPosition(pid)
		}
	}
	for _, pid := range g.Outs {
		out, err := a.Output(pid)
		if err != nil {
			continue
		}
		p, _ := a.PortPosition(pid)
		for _, wid := range out.Wires {
			if w, err := a.Wire(wid); err == nil {
				w.Line.P1 = p
			}
		}
	}
}

// PortPosition returns the position of a port, derived from the position of
// its gate and its index. Inputs sit on the left side of the gate, outputs on
// the right.
//
func (a *Arena) PortPosition(id ID) (Point, error) {
	e, err := a.Get(id)
	if err != nil {
		return Point{}, err
	}
	var (
		parent, dx = NoID, 0.0
		index, n   int
	)
	switch e := e.(type) {
	case *Input:
		parent, index, dx = e.Parent, e.Index, -portOffsetX
	case *Output:
		parent, index, dx = e.Parent, e.Index, portOffsetX
	default:
		return Point{}, errors.Wrapf(ErrInvalidOperation, "%v %v is not a port", e.Kind(), id)
	}
	if parent == NoID {
		return Point{}, errors.Wrapf(ErrInvalidOperation, "port %v is wall-mounted", id)
	}
	g, err := a.Gate(parent)
	if err != nil {
		return Point{}, errors.Wrapf(err, "parent of port %v", id)
	}
	if e.Kind() == KindInput {
		n = len(g.Ins)
	} else {
		n = len(g.Outs)
	}
	dy := (float64(index) - float64(n-1)/2) * portSpacing
	return g.Pos.Add(Point{dx, dy}), nil
}

// Check verifies the wiring invariants of the arena: every wire is registered
// in its source output, a wire is connected iff it has a destination that
// references it back, and every bound input references a wire ending at it.
//
func (a *Arena) Check() error {
	for _, id := range a.IDs() {
		switch e := a.elems[id].(type) {
		case *Wire:
			out, err := a.Output(e.Source)
			if err != nil {
				return errors.Wrapf(ErrConstraintViolation, "wire %v: bad source: %v", id, err)
			}
			if !hasID(out.Wires, id) {
				return errors.Wrapf(ErrConstraintViolation, "wire %v not registered in output %v", id, e.Source)
			}
			if e.Connected != (e.Dest != NoID) {
				return errors.Wrapf(ErrConstraintViolation, "wire %v: connected=%v with destination %v", id, e.Connected, e.Dest)
			}
			if e.Dest != NoID {
				in, err := a.Input(e.Dest)
				if err != nil {
					return errors.Wrapf(ErrConstraintViolation, "wire %v: bad destination: %v", id, err)
				}
				if in.Wire != id {
					return errors.Wrapf(ErrConstraintViolation, "wire %v not registered in input %v", id, e.Dest)
				}
			}
		case *Input:
			if e.Wire == NoID {
				continue
			}
			w, err := a.Wire(e.Wire)
			if err != nil {
				return errors.Wrapf(ErrConstraintViolation, "input %v: bad wire: %v", id, err)
			}
			if w.Dest != id {
				return errors.Wrapf(ErrConstraintViolation, "input %v bound to wire %v ending at %v", id, e.Wire, w.Dest)
			}
		case *Output:
			for _, wid := range e.Wires {
				w, err := a.Wire(wid)
				if err != nil {
					return errors.Wrapf(ErrConstraintViolation, "output %v: bad wire: %v", id, err)
				}
				if w.Source != id {
					return errors.Wrapf(ErrConstraintViolation, "output %v lists wire %v sourced at %v", id, wid, w.Source)
				}
			}
		}
	}
	return nil
}

// insert adds e as is. Used by imports and chip evaluation.
func (a *Arena) insert(e Element) {
	a.elems[e.elementID()] = e
}
