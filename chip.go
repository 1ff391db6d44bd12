// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"sort"

	"github.com/pkg/errors"
)

// Chip is a composite element built from a captured part of a circuit. It owns
// private copies of the captured elements; their ids are only meaningful
// within the chip.
//
// Ins and Outs are the chip boundary ports: they map the id of a boundary
// gate in the chip to its last known state.
//
type Chip struct {
	ID     ID
	Name   string
	Pos    Point
	Placed bool

	Gates   map[ID]*Gate
	Wires   map[ID]*Wire
	Inputs  map[ID]*Input
	Outputs map[ID]*Output
	Chips   map[ID]*Chip

	Ins  map[ID]bool
	Outs map[ID]bool

	sub *Arena
	eng *Engine
}

// PortRole tells if a gate is a boundary port of a chip.
//
type PortRole int

// Port roles.
//
const (
	NoPort PortRole = iota
	InPort
	OutPort
)

// A PortPolicy decides which gates of a captured circuit become the boundary
// ports of a chip.
//
type PortPolicy interface {
	Role(g *Gate) PortRole
}

// PortPolicyFunc adapts a function to the PortPolicy interface.
//
type PortPolicyFunc func(g *Gate) PortRole

// Role implements PortPolicy.
//
func (f PortPolicyFunc) Role(g *Gate) PortRole { return f(g) }

// KindPolicy returns a policy that maps gates of kind in to input ports and
// gates of kind out to output ports.
//
func KindPolicy(in, out GateKind) PortPolicy {
	return PortPolicyFunc(func(g *Gate) PortRole {
		switch g.Type {
		case in:
			return InPort
		case out:
			return OutPort
		}
		return NoPort
	})
}

// ToggleLightPolicy makes TOGGLE gates chip inputs and LIGHT gates chip
// outputs.
//
var ToggleLightPolicy = KindPolicy(Toggle, Light)

// Capture builds a chip from the gates and chips of an arena listed in ids,
// or from all of them if ids is empty. The ports of captured gates are
// captured with them, as are the wires between captured ports. Wires crossing
// the capture boundary are left out.
//
// The returned chip is not part of any arena, see Arena.AddChip. If policy is
// nil, ToggleLightPolicy is used.
//
func Capture(a *Arena, name string, ids []ID, policy PortPolicy) (*Chip, error) {
	if policy == nil {
		policy = ToggleLightPolicy
	}
	if len(ids) == 0 {
		for id, e := range a.elems {
			switch e.(type) {
			case *Gate, *Chip:
				ids = append(ids, id)
			}
		}
	}

	c := newChip(name)
	for _, id := range ids {
		e, err := a.Get(id)
		if err != nil {
			return nil, errors.Wrapf(err, "capture %s", name)
		}
		switch e := e.(type) {
		case *Gate:
			c.Gates[id] = e.clone()
			for _, pid := range e.Ins {
				if in, err := a.Input(pid); err == nil {
					c.Inputs[pid] = in.clone()
				}
			}
			for _, pid := range e.Outs {
				if out, err := a.Output(pid); err == nil {
					c.Outputs[pid] = out.clone()
				}
			}
		case *Chip:
			c.Chips[id] = e.Clone()
		default:
			return nil, errors.Wrapf(ErrInvalidOperation, "capture %s: cannot capture %v %v", name, e.Kind(), id)
		}
	}

	// keep wires that start and end inside the chip.
	for _, out := range c.Outputs {
		kept := out.Wires[:0]
		for _, wid := range out.Wires {
			w, err := a.Wire(wid)
			if err != nil || w.Dest == NoID || c.Inputs[w.Dest] == nil {
				continue
			}
			c.Wires[wid] = w.clone()
			kept = append(kept, wid)
		}
		out.Wires = kept
	}
	for _, in := range c.Inputs {
		if c.Wires[in.Wire] == nil {
			in.Wire = NoID
		}
	}

	for id, g := range c.Gates {
		switch policy.Role(g) {
		case InPort:
			c.Ins[id] = g.State
		case OutPort:
			c.Outs[id] = g.State
		}
	}
	return c, nil
}

func newChip(name string) *Chip {
	return &Chip{
		Name:    name,
		Gates:   make(map[ID]*Gate),
		Wires:   make(map[ID]*Wire),
		Inputs:  make(map[ID]*Input),
		Outputs: make(map[ID]*Output),
		Chips:   make(map[ID]*Chip),
		Ins:     make(map[ID]bool),
		Outs:    make(map[ID]bool),
	}
}

// Clone returns a deep copy of c, without id or position.
//
func (c *Chip) Clone() *Chip {
	n := newChip(c.Name)
	for id, g := range c.Gates {
		n.Gates[id] = g.clone()
	}
	for id, w := range c.Wires {
		n.Wires[id] = w.clone()
	}
	for id, in := range c.Inputs {
		n.Inputs[id] = in.clone()
	}
	for id, out := range c.Outputs {
		n.Outputs[id] = out.clone()
	}
	for id, sub := range c.Chips {
		n.Chips[id] = sub.Clone()
	}
	for id, v := range c.Ins {
		n.Ins[id] = v
	}
	for id, v := range c.Outs {
		n.Outs[id] = v
	}
	return n
}

// InPorts returns the ids of the chip input ports in increasing order.
//
func (c *Chip) InPorts() []ID { return sortedKeys(c.Ins) }

// OutPorts returns the ids of the chip output ports in increasing order.
//
func (c *Chip) OutPorts() []ID { return sortedKeys(c.Outs) }

func sortedKeys(m map[ID]bool) []ID {
	ids := make([]ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Eval runs one step of the chip's internal circuit. Each input port gate
// takes its state from ins (ports missing from ins keep their state), then
// the output port states are read back after the step.
//
// Nested chips are not evaluated.
//
func (c *Chip) Eval(ins map[ID]bool) (map[ID]bool, error) {
	for id, v := range ins {
		if _, ok := c.Ins[id]; !ok {
			return nil, errors.Wrapf(ErrInvalidOperation, "chip %s: %v is not an input port", c.Name, id)
		}
		c.Gates[id].State = v
		c.Ins[id] = v
	}
	if c.sub == nil {
		c.sub = &Arena{elems: make(map[ID]Element)}
		for _, g := range c.Gates {
			c.sub.insert(g)
		}
		for _, w := range c.Wires {
			c.sub.insert(w)
		}
		for _, in := range c.Inputs {
			c.sub.insert(in)
		}
		for _, out := range c.Outputs {
			c.sub.insert(out)
		}
		c.eng = NewEngine(nil)
	}
	c.eng.Step(c.sub)
	outs := make(map[ID]bool, len(c.Outs))
	for id := range c.Outs {
		s := c.Gates[id].State
		c.Outs[id] = s
		outs[id] = s
	}
	return outs, nil
}

// AddChip places a chip in the arena at pos and gives it a fresh id. The chip
// must not already belong to an arena; use Clone to place the same chip
// several times.
//
func (a *Arena) AddChip(c *Chip, pos Point) (*Chip, error) {
	if a.alloc == nil {
		return nil, errors.Wrap(ErrInvalidOperation, "arena has no id allocator")
	}
	if c.ID != NoID {
		return nil, errors.Wrapf(ErrInvalidOperation, "chip %s already placed as %v", c.Name, c.ID)
	}
	c.ID = a.alloc.Next()
	c.Pos, c.Placed = pos, true
	a.elems[c.ID] = c
	return c, nil
}
