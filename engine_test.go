package gatesim_test

import (
	"testing"
	"testing/quick"

	gs "github.com/db47h/gatesim"
)

// place places a primitive gate or fails the test.
func place(t *testing.T, a *gs.Arena, k gs.GateKind) *gs.Gate {
	t.Helper()
	g, err := a.Place(gs.TemplateFor(k), gs.Point{})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// connect wires out to in or fails the test.
func connect(t *testing.T, a *gs.Arena, out, in gs.ID) *gs.Wire {
	t.Helper()
	w, err := a.Connect(out, in)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func signal(t *testing.T, a *gs.Arena, id gs.ID) bool {
	t.Helper()
	s, err := a.Signal(id)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestEngine_and(t *testing.T) {
	td := []struct {
		name string
		a, b bool
		out  bool
	}{
		{"false_false", false, false, false},
		{"true_true", true, true, true},
		{"true_false", true, false, false},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			a := gs.NewArena(nil)
			ta, tb := place(t, a, gs.Toggle), place(t, a, gs.Toggle)
			and := place(t, a, gs.And)
			connect(t, a, ta.Outs[0], and.Ins[0])
			connect(t, a, tb.Outs[0], and.Ins[1])
			ta.State, tb.State = d.a, d.b
			e := gs.NewEngine(nil)
			e.Step(a) // toggles -> and inputs
			e.Step(a) // and -> output
			if s := signal(t, a, and.Outs[0]); s != d.out {
				t.Errorf("AND(%v, %v) = %v, got %v", d.a, d.b, d.out, s)
			}
			if e.Steps() != 2 {
				t.Errorf("expected 2 steps, got %d", e.Steps())
			}
		})
	}
}

func TestEngine_disconnect(t *testing.T) {
	a := gs.NewArena(nil)
	hi := place(t, a, gs.HiSignal)
	light := place(t, a, gs.Light)
	connect(t, a, hi.Outs[0], light.Ins[0])
	e := gs.NewEngine(nil)
	e.Step(a)
	if !signal(t, a, light.Ins[0]) {
		t.Fatal("input not driven by HI-SIGNAL")
	}
	w, err := a.Detach(light.Ins[0])
	if err != nil {
		t.Fatal(err)
	}
	e.Step(a)
	if signal(t, a, light.Ins[0]) {
		t.Fatal("disconnected input still high")
	}
	// the held wire still carries the source signal.
	if !signal(t, a, w) {
		t.Error("held wire should carry its source signal")
	}
	e.Step(a)
	if signal(t, a, light.ID) {
		t.Error("light still on after its wire was detached")
	}
}

func TestEngine_pulse(t *testing.T) {
	a := gs.NewArena(nil)
	m := gs.NewMachine(nil)
	e := gs.NewEngine(nil)
	p := place(t, a, gs.Pulse)
	m.Handle(a, gs.Event{Type: gs.ClickGate, Target: p.ID})
	var got []bool
	for i := 0; i < 3; i++ {
		e.Step(a)
		got = append(got, signal(t, a, p.Outs[0]))
	}
	if !got[0] || got[1] || got[2] {
		t.Fatalf("expected pulse output true, false, false, got %v", got)
	}
}

func TestEngine_toggle(t *testing.T) {
	f := func(state bool, n uint8) bool {
		a := gs.NewArena(nil)
		g, err := a.Place(gs.TemplateFor(gs.Toggle), gs.Point{})
		if err != nil {
			return false
		}
		g.State = state
		e := gs.NewEngine(nil)
		for i := 0; i < int(n)+1; i++ {
			e.Step(a)
			if s, _ := a.Signal(g.Outs[0]); s != state {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

// A NOT gate wired to itself sees its own output one step later, so it
// oscillates.
func TestEngine_feedbackDelay(t *testing.T) {
	a := gs.NewArena(nil)
	not := place(t, a, gs.Not)
	connect(t, a, not.Outs[0], not.Ins[0])
	e := gs.NewEngine(nil)
	exp := true
	for i := 0; i < 6; i++ {
		e.Step(a)
		if s := signal(t, a, not.Outs[0]); s != exp {
			t.Fatalf("step %d: expected %v, got %v", i, exp, s)
		}
		exp = !exp
	}
}

// Gates that cannot be evaluated are skipped without stopping the others.
func TestEngine_skip(t *testing.T) {
	a := gs.NewArena(nil)
	bad, err := a.Place(gs.Template{Label: "AND3", Type: gs.And, Ins: 3, Outs: 1}, gs.Point{})
	if err != nil {
		t.Fatal(err)
	}
	custom, err := a.Place(gs.Template{Label: "BLACKBOX", Ins: 1, Outs: 1}, gs.Point{})
	if err != nil {
		t.Fatal(err)
	}
	hi := place(t, a, gs.HiSignal)
	light := place(t, a, gs.Light)
	connect(t, a, hi.Outs[0], bad.Ins[0])
	connect(t, a, bad.Outs[0], light.Ins[0])
	not := place(t, a, gs.Not)

	e := gs.NewEngine(nil)
	e.Step(a)
	if e.Skipped() != 2 {
		t.Errorf("expected 2 skipped gates, got %d", e.Skipped())
	}
	if !signal(t, a, not.Outs[0]) {
		t.Error("NOT gate not evaluated")
	}
	if signal(t, a, light.Ins[0]) || signal(t, a, bad.Outs[0]) || signal(t, a, custom.Outs[0]) {
		t.Error("skipped gates should not drive anything")
	}
}

func TestEngine_fanout(t *testing.T) {
	a := gs.NewArena(nil)
	hi := place(t, a, gs.HiSignal)
	var lights []*gs.Gate
	for i := 0; i < 5; i++ {
		l := place(t, a, gs.Light)
		connect(t, a, hi.Outs[0], l.Ins[0])
		lights = append(lights, l)
	}
	e := gs.NewEngine(nil)
	e.Step(a)
	e.Step(a)
	for _, l := range lights {
		if !l.State {
			t.Errorf("light %v is off", l.ID)
		}
	}
}
