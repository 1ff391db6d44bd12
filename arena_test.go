package gatesim_test

import (
	"testing"

	gs "github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

func TestArena_place(t *testing.T) {
	a := gs.NewArena(nil)
	g, err := a.Place(gs.TemplateFor(gs.And), gs.Point{X: 10, Y: 20})
	if err != nil {
		t.Fatal(err)
	}
	if g.ID != 1 || len(g.Ins) != 2 || len(g.Outs) != 1 {
		t.Fatalf("bad gate %+v", g)
	}
	if a.Len() != 4 {
		t.Fatalf("expected 4 elements, got %d", a.Len())
	}
	if g.Size != gs.DefaultGateSize {
		t.Errorf("expected size %v, got %v", gs.DefaultGateSize, g.Size)
	}
	for i, id := range g.Ins {
		in, err := a.Input(id)
		if err != nil {
			t.Fatal(err)
		}
		if in.Parent != g.ID || in.Index != i || in.Wire != gs.NoID {
			t.Errorf("bad input %+v", in)
		}
	}
	out, err := a.Output(g.Outs[0])
	if err != nil {
		t.Fatal(err)
	}
	if out.Parent != g.ID || len(out.Wires) != 0 {
		t.Errorf("bad output %+v", out)
	}

	// ids are never reused
	prev := g.Outs[0]
	if err = a.Remove(g.ID); err != nil {
		t.Fatal(err)
	}
	g2 := place(t, a, gs.Not)
	if g2.ID <= prev {
		t.Errorf("id %v reused after %v", g2.ID, prev)
	}

	hi := place(t, a, gs.HiSignal)
	if !hi.State {
		t.Error("HI-SIGNAL should start high")
	}
}

func TestArena_lookup(t *testing.T) {
	a := gs.NewArena(nil)
	g := place(t, a, gs.Not)
	td := []struct {
		name string
		f    func() error
		err  error
	}{
		{"missing", func() error { _, err := a.Get(999); return err }, gs.ErrMissingElement},
		{"gate_as_wire", func() error { _, err := a.Wire(g.ID); return err }, gs.ErrInvalidOperation},
		{"input_as_output", func() error { _, err := a.Output(g.Ins[0]); return err }, gs.ErrInvalidOperation},
		{"output_as_gate", func() error { _, err := a.Gate(g.Outs[0]); return err }, gs.ErrInvalidOperation},
		{"gate_as_chip", func() error { _, err := a.Chip(g.ID); return err }, gs.ErrInvalidOperation},
		{"port_position", func() error { _, err := a.Position(g.Ins[0]); return err }, gs.ErrInvalidOperation},
		{"gate_port_position", func() error { _, err := a.PortPosition(g.ID); return err }, gs.ErrInvalidOperation},
		{"port_gatekind", func() error { _, err := a.GateKind(g.Outs[0]); return err }, gs.ErrInvalidOperation},
		{"move_port", func() error { return a.SetPosition(g.Ins[0], gs.Point{}) }, gs.ErrInvalidOperation},
		{"remove_missing", func() error { return a.Remove(999) }, gs.ErrMissingElement},
		{"detach_unbound", func() error { _, err := a.Detach(g.Ins[0]); return err }, gs.ErrInvalidOperation},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if err := d.f(); errors.Cause(err) != d.err {
				t.Fatalf("expected %v, got %v", d.err, err)
			}
		})
	}

	k, err := a.Kind(g.Outs[0])
	if err != nil || k != gs.KindOutput {
		t.Errorf("expected output kind, got %v, %v", k, err)
	}
	gk, err := a.GateKind(g.ID)
	if err != nil || gk != gs.Not {
		t.Errorf("expected NOT, got %v, %v", gk, err)
	}
}

func TestArena_connect(t *testing.T) {
	a := gs.NewArena(nil)
	hi, lo := place(t, a, gs.HiSignal), place(t, a, gs.LoSignal)
	light := place(t, a, gs.Light)
	w := connect(t, a, hi.Outs[0], light.Ins[0])
	if !w.Connected || w.Held() {
		t.Fatalf("wire not connected: %+v", w)
	}
	if _, err := a.Connect(lo.Outs[0], light.Ins[0]); errors.Cause(err) != gs.ErrConstraintViolation {
		t.Fatalf("expected constraint violation, got %v", err)
	}
	if _, err := a.Connect(light.Ins[0], light.Ins[0]); err == nil {
		t.Fatal("connected an input to itself")
	}
	held, err := a.NewWire(lo.Outs[0], gs.Point{})
	if err != nil {
		t.Fatal(err)
	}
	if err = a.Bind(held.ID, light.Ins[0]); errors.Cause(err) != gs.ErrConstraintViolation {
		t.Fatalf("expected constraint violation, got %v", err)
	}
	if err = a.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestArena_remove(t *testing.T) {
	build := func(t *testing.T) (*gs.Arena, *gs.Gate, *gs.Gate, *gs.Gate, *gs.Wire, *gs.Wire) {
		a := gs.NewArena(nil)
		hi, not, light := place(t, a, gs.HiSignal), place(t, a, gs.Not), place(t, a, gs.Light)
		w1 := connect(t, a, hi.Outs[0], not.Ins[0])
		w2 := connect(t, a, not.Outs[0], light.Ins[0])
		return a, hi, not, light, w1, w2
	}
	gone := func(t *testing.T, a *gs.Arena, ids ...gs.ID) {
		t.Helper()
		for _, id := range ids {
			if _, err := a.Get(id); errors.Cause(err) != gs.ErrMissingElement {
				t.Errorf("element %v still present", id)
			}
		}
	}

	t.Run("wire", func(t *testing.T) {
		a, hi, not, _, w1, _ := build(t)
		if err := a.Remove(w1.ID); err != nil {
			t.Fatal(err)
		}
		gone(t, a, w1.ID)
		if o, _ := a.Output(hi.Outs[0]); len(o.Wires) != 0 {
			t.Errorf("output still lists %v", o.Wires)
		}
		if in, _ := a.Input(not.Ins[0]); in.Wire != gs.NoID {
			t.Errorf("input still bound to %v", in.Wire)
		}
		if err := a.Check(); err != nil {
			t.Fatal(err)
		}
	})
	t.Run("input", func(t *testing.T) {
		a, _, not, _, w1, w2 := build(t)
		in := not.Ins[0]
		if err := a.Remove(in); err != nil {
			t.Fatal(err)
		}
		gone(t, a, in, w1.ID)
		if len(not.Ins) != 0 {
			t.Errorf("gate still lists inputs %v", not.Ins)
		}
		if _, err := a.Wire(w2.ID); err != nil {
			t.Error(err)
		}
		if err := a.Check(); err != nil {
			t.Fatal(err)
		}
	})
	t.Run("output", func(t *testing.T) {
		a, _, not, light, w1, w2 := build(t)
		out := not.Outs[0]
		if err := a.Remove(out); err != nil {
			t.Fatal(err)
		}
		gone(t, a, out, w2.ID)
		if len(not.Outs) != 0 {
			t.Errorf("gate still lists outputs %v", not.Outs)
		}
		if in, _ := a.Input(light.Ins[0]); in.Wire != gs.NoID {
			t.Errorf("light input still bound to %v", in.Wire)
		}
		if _, err := a.Wire(w1.ID); err != nil {
			t.Error(err)
		}
		if err := a.Check(); err != nil {
			t.Fatal(err)
		}
	})
	t.Run("gate", func(t *testing.T) {
		a, hi, not, light, w1, w2 := build(t)
		n := a.Len()
		if err := a.Remove(not.ID); err != nil {
			t.Fatal(err)
		}
		gone(t, a, not.ID, not.Ins[0], not.Outs[0], w1.ID, w2.ID)
		if a.Len() != n-5 {
			t.Errorf("expected %d elements, got %d", n-5, a.Len())
		}
		if _, err := a.Gate(hi.ID); err != nil {
			t.Error(err)
		}
		if _, err := a.Gate(light.ID); err != nil {
			t.Error(err)
		}
		if err := a.Check(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestArena_geometry(t *testing.T) {
	a := gs.NewArena(nil)
	g, err := a.Place(gs.TemplateFor(gs.And), gs.Point{X: 100, Y: 100})
	if err != nil {
		t.Fatal(err)
	}
	td := []struct {
		id  gs.ID
		pos gs.Point
	}{
		{g.Ins[0], gs.Point{X: 50, Y: 85}},
		{g.Ins[1], gs.Point{X: 50, Y: 115}},
		{g.Outs[0], gs.Point{X: 150, Y: 100}},
	}
	for _, d := range td {
		p, err := a.PortPosition(d.id)
		if err != nil {
			t.Fatal(err)
		}
		if p != d.pos {
			t.Errorf("port %v: expected %v, got %v", d.id, d.pos, p)
		}
	}

	light := place(t, a, gs.Light)
	w := connect(t, a, g.Outs[0], light.Ins[0])
	if p, _ := a.Position(w.ID); p != (gs.Point{X: 150, Y: 100}) {
		t.Errorf("expected wire at {150 100}, got %v", p)
	}
	if err = a.SetPosition(g.ID, gs.Point{}); err != nil {
		t.Fatal(err)
	}
	if p, _ := a.Position(g.ID); p != (gs.Point{}) {
		t.Errorf("gate not moved: %v", p)
	}
	if w.Line.P1 != (gs.Point{X: 50}) {
		t.Errorf("wire source not moved along: %v", w.Line.P1)
	}
	if w.Line.P2 != (gs.Point{X: -50}) {
		t.Errorf("expected wire end at light input, got %v", w.Line.P2)
	}
}

func TestArena_chip(t *testing.T) {
	a := gs.NewArena(nil)
	c, err := gs.Capture(a, "EMPTY", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = a.Position(c.ID); errors.Cause(err) != gs.ErrMissingElement {
		t.Fatalf("expected missing element, got %v", err)
	}
	if _, err = a.AddChip(c, gs.Point{X: 3, Y: 4}); err != nil {
		t.Fatal(err)
	}
	if p, err := a.Position(c.ID); err != nil || p != (gs.Point{X: 3, Y: 4}) {
		t.Fatalf("bad chip position %v, %v", p, err)
	}
	if _, err = a.AddChip(c, gs.Point{}); errors.Cause(err) != gs.ErrInvalidOperation {
		t.Fatalf("expected invalid operation, got %v", err)
	}
	k, err := a.GateKind(c.ID)
	if err != nil || k != gs.Custom {
		t.Fatalf("expected CUSTOM, got %v, %v", k, err)
	}
	if s := signal(t, a, c.ID); s {
		t.Error("empty chip should be low")
	}
}
