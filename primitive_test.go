package gatesim_test

import (
	"testing"
	"testing/quick"

	gs "github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

func TestEvaluate_truthTables(t *testing.T) {
	td := []struct {
		kind   gs.GateKind
		result []bool // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{gs.And, []bool{false, false, false, true}},
		{gs.Or, []bool{false, true, true, true}},
		{gs.Xor, []bool{false, true, true, false}},
		{gs.Nand, []bool{true, true, true, false}},
		{gs.Nor, []bool{true, false, false, false}},
	}
	for _, d := range td {
		t.Run(d.kind.String(), func(t *testing.T) {
			for i, exp := range d.result {
				a, b := i&2 != 0, i&1 != 0
				outs, state, err := gs.Evaluate(d.kind, []bool{a, b}, false)
				if err != nil {
					t.Fatal(err)
				}
				if len(outs) != 1 || outs[0] != exp {
					t.Errorf("%v(%v, %v) = %v, got %v", d.kind, a, b, exp, outs)
				}
				if state != exp {
					t.Errorf("%v(%v, %v): expected state %v, got %v", d.kind, a, b, exp, state)
				}
			}
		})
	}
}

func TestEvaluate_unary(t *testing.T) {
	td := []struct {
		name  string
		kind  gs.GateKind
		ins   []bool
		state bool
		outs  []bool
		next  bool
	}{
		{"hi", gs.HiSignal, nil, false, []bool{true}, true},
		{"lo", gs.LoSignal, nil, true, []bool{false}, false},
		{"pulse_armed", gs.Pulse, nil, true, []bool{true}, false},
		{"pulse_idle", gs.Pulse, nil, false, []bool{false}, false},
		{"toggle_on", gs.Toggle, nil, true, []bool{true}, true},
		{"toggle_off", gs.Toggle, nil, false, []bool{false}, false},
		{"light_on", gs.Light, []bool{true}, false, nil, true},
		{"light_off", gs.Light, []bool{false}, true, nil, false},
		{"light_unwired", gs.Light, nil, true, nil, false},
		{"buffer", gs.Buffer, []bool{true}, false, []bool{true}, false},
		{"not", gs.Not, []bool{true}, false, []bool{false}, false},
		{"not_unwired", gs.Not, nil, false, []bool{true}, false},
		{"and_one_input", gs.And, []bool{true}, false, []bool{false}, false},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			outs, next, err := gs.Evaluate(d.kind, d.ins, d.state)
			if err != nil {
				t.Fatal(err)
			}
			if len(outs) != len(d.outs) {
				t.Fatalf("expected %d outputs, got %v", len(d.outs), outs)
			}
			for i := range outs {
				if outs[i] != d.outs[i] {
					t.Errorf("expected outputs %v, got %v", d.outs, outs)
				}
			}
			if next != d.next {
				t.Errorf("expected state %v, got %v", d.next, next)
			}
		})
	}
}

func TestEvaluate_arity(t *testing.T) {
	f := func(k uint8, extra uint8, state bool) bool {
		kind := gs.GateKind(int(k)%12 + 1) // skip Custom
		n, _ := kind.Arity()
		ins := make([]bool, n+int(extra)%4+1)
		_, st, err := gs.Evaluate(kind, ins, state)
		return errors.Cause(err) == gs.ErrInvalidInputArity && st == state
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestEvaluate_custom(t *testing.T) {
	_, _, err := gs.Evaluate(gs.Custom, nil, false)
	if errors.Cause(err) != gs.ErrInvalidOperation {
		t.Fatalf("expected %v, got %v", gs.ErrInvalidOperation, err)
	}
}

func TestGateKind(t *testing.T) {
	for _, tpl := range gs.Primitives() {
		if k := gs.ParseGateKind(tpl.Label); k != tpl.Type {
			t.Errorf("ParseGateKind(%q) = %v, got %v", tpl.Label, tpl.Type, k)
		}
	}
	if k := gs.ParseGateKind(" hi-signal "); k != gs.HiSignal {
		t.Errorf("expected HI-SIGNAL, got %v", k)
	}
	if k := gs.ParseGateKind("FLUX-CAPACITOR"); k != gs.Custom {
		t.Errorf("expected CUSTOM, got %v", k)
	}
	if !gs.Toggle.Clickable() || !gs.Pulse.Clickable() || gs.And.Clickable() {
		t.Error("only TOGGLE and PULSE should be clickable")
	}
	if ins, outs := gs.Light.Arity(); ins != 1 || outs != 0 {
		t.Errorf("LIGHT arity: expected 1->0, got %d->%d", ins, outs)
	}
}
