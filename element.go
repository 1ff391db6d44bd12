// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

// Point is a position in world coordinates.
//
type Point struct {
	X, Y float64
}

// Add returns p+q.
//
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Line is the drawn geometry of a wire.
//
type Line struct {
	P1, P2 Point
}

// An Element is one of *Gate, *Wire, *Input, *Output or *Chip. The set is
// closed; use a type switch to get at the concrete value.
//
type Element interface {
	Kind() Kind
	elementID() ID
}

// Gate is a logic gate placed in an arena. Its ports are separate elements
// listed by id in Ins and Outs, in port index order.
//
type Gate struct {
	ID    ID
	Label string
	Type  GateKind
	Pos   Point
	Size  Point
	Ins   []ID
	Outs  []ID
	// State is the internal latch of stateful kinds (TOGGLE, PULSE) and the
	// display state of the others.
	State bool
}

// Input is a gate input port. At most one wire may end at an input.
//
type Input struct {
	ID     ID
	Index  int
	Name   string
	Parent ID // NoID for a wall-mounted port
	Signal bool
	Wire   ID // source wire, NoID if unbound
}

// Output is a gate output port. It can drive any number of wires.
//
type Output struct {
	ID     ID
	Index  int
	Name   string
	Parent ID
	Signal bool
	Wires  []ID
}

// Wire connects an Output to an Input. A wire without destination is held:
// it is anchored at its source and its free end follows the pointer.
//
type Wire struct {
	ID     ID
	Source ID
	Dest   ID
	// Connected is true iff Dest is set and both ports reference the wire.
	Connected bool
	Signal    bool
	Line      Line
}

// Held returns true if the wire has no destination.
//
func (w *Wire) Held() bool { return w.Dest == NoID }

// Kind implements Element.
func (*Gate) Kind() Kind { return KindGate }

// Kind implements Element.
func (*Input) Kind() Kind { return KindInput }

// Kind implements Element.
func (*Output) Kind() Kind { return KindOutput }

// Kind implements Element.
func (*Wire) Kind() Kind { return KindWire }

// Kind implements Element.
func (*Chip) Kind() Kind { return KindChip }

func (g *Gate) elementID() ID   { return g.ID }
func (i *Input) elementID() ID  { return i.ID }
func (o *Output) elementID() ID { return o.ID }
func (w *Wire) elementID() ID   { return w.ID }
func (c *Chip) elementID() ID   { return c.ID }

// IDOf returns the id of an element.
//
func IDOf(e Element) ID {
	if e == nil {
		return NoID
	}
	return e.elementID()
}

func (g *Gate) clone() *Gate {
	n := *g
	n.Ins = append([]ID(nil), g.Ins...)
	n.Outs = append([]ID(nil), g.Outs...)
	return &n
}

func (i *Input) clone() *Input { n := *i; return &n }

func (o *Output) clone() *Output {
	n := *o
	n.Wires = append([]ID(nil), o.Wires...)
	return &n
}

func (w *Wire) clone() *Wire { n := *w; return &n }

func removeID(ids []ID, id ID) []ID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func hasID(ids []ID, id ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
