// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// FeedbackLoops returns the groups of gates that feed their own inputs,
// directly or through other gates. Each group is sorted by id, and groups are
// sorted by their first id.
//
// Since the engine runs a single pass per step, a change in one of these
// gates reaches the rest of its group one step per gate later.
//
func FeedbackLoops(a *Arena) [][]ID {
	g := simple.NewDirectedGraph()
	self := make(map[ID]bool)
	for _, el := range a.elems {
		w, ok := el.(*Wire)
		if !ok || w.Dest == NoID {
			continue
		}
		from, to := a.owner(w.Source), a.owner(w.Dest)
		if from == NoID || to == NoID {
			continue
		}
		if from == to {
			self[from] = true
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	var loops [][]ID
	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) < 2 {
			continue
		}
		ids := make([]ID, len(scc))
		for i, n := range scc {
			ids[i] = ID(n.ID())
			delete(self, ids[i])
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		loops = append(loops, ids)
	}
	for id := range self {
		loops = append(loops, []ID{id})
	}
	sort.Slice(loops, func(i, j int) bool { return loops[i][0] < loops[j][0] })
	return loops
}

// owner returns the parent gate of a port.
func (a *Arena) owner(port ID) ID {
	switch p := a.elems[port].(type) {
	case *Input:
		return p.Parent
	case *Output:
		return p.Parent
	}
	return NoID
}
