// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import "github.com/pkg/errors"

// gate functions for 2 input primitives.
var combinators = map[GateKind]func(a, b bool) bool{
	Or:   func(a, b bool) bool { return a || b },
	And:  func(a, b bool) bool { return a && b },
	Xor:  func(a, b bool) bool { return a && !b || !a && b },
	Nand: func(a, b bool) bool { return !(a && b) },
	Nor:  func(a, b bool) bool { return !(a || b) },
}

// Evaluate computes one step of a primitive gate. It takes the gate input
// signals in port order and the gate's current state, and returns the output
// signals in port order along with the new state.
//
// Missing inputs read as false. Giving more inputs than the kind accepts
// returns ErrInvalidInputArity. Custom gates have no built-in semantics and
// return ErrInvalidOperation.
//
//	Kind       In Out  Function
//	HI-SIGNAL  0  1    out = true, state = true
//	LO-SIGNAL  0  1    out = false, state = false
//	PULSE      0  1    out = state, state = false
//	TOGGLE     0  1    out = state
//	LIGHT      1  0    state = in
//	BUFFER     1  1    out = in
//	NOT        1  1    out = !in
//	OR, AND, XOR,
//	NAND, NOR  2  1    out = a op b, state = out
//
func Evaluate(k GateKind, ins []bool, state bool) (outs []bool, newState bool, err error) {
	if !k.valid() || k == Custom {
		return nil, state, errors.Wrapf(ErrInvalidOperation, "no semantics for gate kind %v", k)
	}
	arity, _ := k.Arity()
	if len(ins) > arity {
		return nil, state, errors.Wrapf(ErrInvalidInputArity, "%v takes at most %d inputs, got %d", k, arity, len(ins))
	}
	in := func(i int) bool {
		return i < len(ins) && ins[i]
	}

	switch k {
	case HiSignal:
		return []bool{true}, true, nil
	case LoSignal:
		return []bool{false}, false, nil
	case Pulse:
		// one-shot: a click arms it, the next step fires it.
		return []bool{state}, false, nil
	case Toggle:
		return []bool{state}, state, nil
	case Light:
		return nil, in(0), nil
	case Buffer:
		return []bool{in(0)}, state, nil
	case Not:
		return []bool{!in(0)}, state, nil
	}
	out := combinators[k](in(0), in(1))
	return []bool{out}, out, nil
}
