package gatesim_test

import (
	"strings"
	"testing"

	gs "github.com/db47h/gatesim"
)

func TestParseTemplates(t *testing.T) {
	src := `AND:2:1
not:1:1

BROKEN:x:1
NOPORTS:1
MYCHIP:3:2
  TOGGLE : 0 : 1
NEG:-1:1
`
	ts, err := gs.ParseTemplates(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	exp := []gs.Template{
		{Label: "AND", Type: gs.And, Ins: 2, Outs: 1},
		{Label: "not", Type: gs.Not, Ins: 1, Outs: 1},
		{Label: "MYCHIP", Type: gs.Custom, Ins: 3, Outs: 2},
		{Label: "TOGGLE", Type: gs.Toggle, Ins: 0, Outs: 1},
	}
	if len(ts) != len(exp) {
		t.Fatalf("expected %d templates, got %d: %v", len(exp), len(ts), ts)
	}
	for i := range exp {
		if ts[i] != exp[i] {
			t.Errorf("template %d: expected %+v, got %+v", i, exp[i], ts[i])
		}
	}
}

func TestPrimitives(t *testing.T) {
	ps := gs.Primitives()
	if len(ps) != 12 {
		t.Fatalf("expected 12 primitives, got %d", len(ps))
	}
	a := gs.NewArena(nil)
	for _, p := range ps {
		if p.Type == gs.Custom {
			t.Errorf("%s: custom primitive", p.Label)
		}
		ins, outs := p.Type.Arity()
		if p.Ins != ins || p.Outs != outs {
			t.Errorf("%s: expected %d:%d, got %d:%d", p.Label, ins, outs, p.Ins, p.Outs)
		}
		g, err := a.Place(p, gs.Point{})
		if err != nil {
			t.Fatal(err)
		}
		if g.Label != p.Label || len(g.Ins) != ins || len(g.Outs) != outs {
			t.Errorf("%s: bad gate %+v", p.Label, g)
		}
	}
}
