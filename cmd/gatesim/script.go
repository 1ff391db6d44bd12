// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"
	"strconv"
	"strings"

	gs "github.com/db47h/gatesim"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A script places gates and posts gestures at given frames.
//
//	place:
//	  - {name: a, kind: TOGGLE}
//	  - {name: l, kind: LIGHT, x: 300}
//	frames:
//	  0:
//	    - {type: ClickOutput, target: a.out0}
//	    - {type: ClickInput, target: l.in0}
//	  1:
//	    - {type: ClickGate, target: a}
//
// A target is either the name of a placed gate, optionally followed by
// .in<N> or .out<N> for its ports, or the id of an element of the loaded
// circuit, as saved.
type script struct {
	Place  []placement       `yaml:"place"`
	Frames map[int][]gesture `yaml:"frames"`
}

type placement struct {
	Name  string  `yaml:"name"`
	Kind  string  `yaml:"kind"`
	Label string  `yaml:"label"`
	Ins   *int    `yaml:"ins"`
	Outs  *int    `yaml:"outs"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

type gesture struct {
	Type   string  `yaml:"type"`
	Target string  `yaml:"target"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

func loadScript(path string) (*script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	s := new(script)
	if err = yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "parse script %s", path)
	}
	return s, nil
}

// template returns the gate template of a placement. Port counts default to
// the arity of the kind.
func (p *placement) template() gs.Template {
	t := gs.TemplateFor(gs.ParseGateKind(p.Kind))
	if p.Label != "" {
		t.Label = p.Label
	} else if t.Type == gs.Custom {
		t.Label = p.Kind
	}
	if p.Ins != nil {
		t.Ins = *p.Ins
	}
	if p.Outs != nil {
		t.Outs = *p.Outs
	}
	return t
}

// resolver maps script targets to element ids.
type resolver struct {
	names  map[string]*gs.Gate
	loaded map[gs.ID]gs.ID // saved id -> session id
}

func (r *resolver) resolve(target string) (gs.ID, error) {
	target = strings.TrimSpace(target)
	if n, err := strconv.ParseUint(target, 10, 64); err == nil {
		id, ok := r.loaded[gs.ID(n)]
		if !ok {
			return gs.NoID, errors.Wrapf(gs.ErrMissingElement, "no saved element %d", n)
		}
		return id, nil
	}
	name, port := target, ""
	if i := strings.LastIndexByte(target, '.'); i >= 0 {
		name, port = target[:i], target[i+1:]
	}
	g, ok := r.names[name]
	if !ok {
		return gs.NoID, errors.Wrapf(gs.ErrMissingElement, "no gate named %q", name)
	}
	var ids []gs.ID
	switch {
	case port == "":
		return g.ID, nil
	case strings.HasPrefix(port, "in"):
		ids, port = g.Ins, port[2:]
	case strings.HasPrefix(port, "out"):
		ids, port = g.Outs, port[3:]
	default:
		return gs.NoID, errors.Errorf("bad port %q in target %q", port, target)
	}
	i, err := strconv.Atoi(port)
	if err != nil || i < 0 || i >= len(ids) {
		return gs.NoID, errors.Errorf("bad port index in target %q", target)
	}
	return ids[i], nil
}

// events returns the events of a frame.
func (s *script) events(frame int, r *resolver) ([]gs.Event, error) {
	var evs []gs.Event
	for _, g := range s.Frames[frame] {
		t, ok := gs.ParseEventType(g.Type)
		if !ok {
			return nil, errors.Errorf("frame %d: unknown gesture %q", frame, g.Type)
		}
		ev := gs.Event{Type: t, Pos: gs.Point{X: g.X, Y: g.Y}}
		if t != gs.PointerMove {
			id, err := r.resolve(g.Target)
			if err != nil {
				return nil, errors.Wrapf(err, "frame %d", frame)
			}
			ev.Target = id
		}
		evs = append(evs, ev)
	}
	return evs, nil
}
