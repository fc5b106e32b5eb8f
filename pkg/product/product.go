// Package product builds the labeled product of a Transition System and an
// NBA: the graph whose accepting infinite runs correspond exactly to TS
// traces accepted by the NBA.
package product

import (
	"github.com/corvid-labs/tableau/pkg/automaton"
	"github.com/corvid-labs/tableau/pkg/ts"
)

// State is one node of the product: a (TS state, NBA state) pair. Accepting
// is true iff the NBA component is an accepting NBA state; per section 3 of
// the design, this is the product state's only label ("accepting" or
// empty).
type State struct {
	ID        int
	TSState   int
	NBAState  int
	Accepting bool
	Initial   bool
}

// Product is the TS x NBA product, reused directly as a plain directed
// graph (via NodeCount/Successors) for SCC analysis.
type Product struct {
	States      []State
	Transitions [][]int
}

// NodeCount implements scc.Graph.
func (p *Product) NodeCount() int { return len(p.States) }

// Successors implements scc.Graph.
func (p *Product) Successors(i int) []int { return p.Transitions[i] }

// Build constructs the product of tsys and nba. Every (s,q) pair becomes a
// product state, whether or not it ends up reachable from an initial state
// -- unreachable product states are harmless; the emptiness check in
// pkg/scc restricts itself to the reachable subgraph.
func Build(tsys *ts.TS, nba *automaton.NBA) *Product {
	apShared := sharedAlphabet(tsys, nba)

	numTS, numNBA := tsys.NodeCount(), len(nba.States)
	id := func(s, q int) int { return s*numNBA + q }

	p := &Product{
		States:      make([]State, numTS*numNBA),
		Transitions: make([][]int, numTS*numNBA),
	}
	for s := 0; s < numTS; s++ {
		for q := 0; q < numNBA; q++ {
			p.States[id(s, q)] = State{
				ID:        id(s, q),
				TSState:   s,
				NBAState:  q,
				Accepting: nba.States[q].Accepting,
			}
		}
	}

	for s := range tsys.Nodes {
		for q := range nba.States {
			for _, sNext := range tsys.Successors(s) {
				for _, qNext := range nba.Transitions[q] {
					if match(nba.States[q].AP, labelOf(tsys, sNext), apShared) {
						from, to := id(s, q), id(sNext, qNext)
						p.Transitions[from] = append(p.Transitions[from], to)
					}
				}
			}
		}
	}

	markInitial(p, tsys, nba, apShared, id)
	return p
}

// markInitial sets Initial on (s,q) iff s is TS-initial and there exists
// some NBA-initial q0 whose label matches L_TS(s) with q reachable by one
// NBA transition from q0 -- i.e. the first step takes the NBA from an
// initial state to q while observing s's label. A product state (s,q) thus
// holds the NBA state for the position after s, which is why a transition
// (s1,q1) -> (s2,q2) matches q1's label against s2's.
//
// If the NBA has no initial state, no product state is initial and the
// emptiness check vacuously reports satisfaction (section 9, open
// questions).
func markInitial(p *Product, tsys *ts.TS, nba *automaton.NBA, apShared map[string]bool, id func(s, q int) int) {
	for s, node := range tsys.Nodes {
		if !node.Initial {
			continue
		}
		label := node.AP
		for q0, st0 := range nba.States {
			if !st0.Initial {
				continue
			}
			if !match(st0.AP, label, apShared) {
				continue
			}
			for _, q := range nba.Transitions[q0] {
				p.States[id(s, q)].Initial = true
			}
		}
	}
}

func labelOf(tsys *ts.TS, s int) map[string]bool {
	return tsys.Nodes[s].AP
}

// sharedAlphabet returns AP(TS) intersect AP(NBA), where AP(NBA) is the
// union of every AP name that appears in any NBA state's label.
func sharedAlphabet(tsys *ts.TS, nba *automaton.NBA) map[string]bool {
	nbaAP := map[string]bool{}
	for _, st := range nba.States {
		for name := range st.AP {
			nbaAP[name] = true
		}
	}
	shared := map[string]bool{}
	for _, name := range tsys.AP {
		if nbaAP[name] {
			shared[name] = true
		}
	}
	return shared
}

// match reports whether lNBA and lTS agree on every AP in apShared.
func match(lNBA, lTS map[string]bool, apShared map[string]bool) bool {
	for name := range apShared {
		if lNBA[name] != lTS[name] {
			return false
		}
	}
	return true
}
