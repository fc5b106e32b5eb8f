// Package automaton builds a Generalized Nondeterministic Büchi Automaton
// (GNBA) from the elementary sets of a closure and degeneralizes it into a
// standard Nondeterministic Büchi Automaton (NBA) via the index-counter
// product construction.
package automaton

import (
	"github.com/corvid-labs/tableau/pkg/closure"
	"github.com/corvid-labs/tableau/pkg/elementary"
	"github.com/corvid-labs/tableau/pkg/formula"
)

// GNBAState is one state of a GNBA: an elementary set, its AP guard/label,
// and whether it is initial.
type GNBAState struct {
	Set     *elementary.Set
	AP      map[string]bool
	Initial bool
}

// GNBA is a Büchi automaton with an ordered list of acceptance sets F1..Fk;
// a run is accepting iff it visits every Fi infinitely often.
type GNBA struct {
	States      []GNBAState
	Transitions [][]int // Transitions[i] = successors of state i
	Acceptance  [][]int // Acceptance[k] = states in Fk, in closure order of the Until they derive from
}

// BuildGNBA constructs the GNBA over the elementary sets of c, for the
// (already normalized and negated) formula phi whose closure c is. States
// are one per elementary set; a state is initial iff phi itself is a member
// of its elementary set.
func BuildGNBA(c *closure.Closure, phi formula.Formula, sets []*elementary.Set) *GNBA {
	g := &GNBA{
		States:      make([]GNBAState, len(sets)),
		Transitions: make([][]int, len(sets)),
	}
	for i, s := range sets {
		g.States[i] = GNBAState{
			Set:     s,
			AP:      s.APProjection(),
			Initial: s.Contains(phi),
		}
	}

	nextFormulas, untilFormulas := closureTemporalFormulas(c)

	for i := range sets {
		for j := range sets {
			if transitionHolds(sets[i], sets[j], nextFormulas, untilFormulas) {
				g.Transitions[i] = append(g.Transitions[i], j)
			}
		}
	}

	g.Acceptance = buildAcceptance(sets, untilFormulas)
	return g
}

// closureTemporalFormulas partitions the closure's Next and Until formulas
// out for repeated use while building transitions and acceptance families.
func closureTemporalFormulas(c *closure.Closure) (next, until []formula.Formula) {
	for i := 0; i < c.Len(); i++ {
		f := c.At(i)
		switch f.Kind() {
		case formula.KindNext:
			next = append(next, f)
		case formula.KindUntil:
			until = append(until, f)
		}
	}
	return next, until
}

// transitionHolds reports whether ei -> ej is a GNBA transition: for every
// Next(a) in the closure, Next(a) in ei iff a in ej; for every Until(a,b) in
// the closure, Until(a,b) in ei iff (b in ei or (a in ei and Until(a,b) in
// ej)).
func transitionHolds(ei, ej *elementary.Set, nexts, untils []formula.Formula) bool {
	for _, nf := range nexts {
		child := formula.Child(nf)
		if ei.Contains(nf) != ej.Contains(child) {
			return false
		}
	}
	for _, uf := range untils {
		a, b := formula.LeftRight(uf)
		rhs := ei.Contains(b) || (ei.Contains(a) && ej.Contains(uf))
		if ei.Contains(uf) != rhs {
			return false
		}
	}
	return true
}

// buildAcceptance computes the acceptance families: one per Until(a,b) in
// closure order, Fk = { i : b in Ei or Until(a,b) not in Ei }. If the
// closure has no Until, a single family containing every state is used.
func buildAcceptance(sets []*elementary.Set, untils []formula.Formula) [][]int {
	if len(untils) == 0 {
		all := make([]int, len(sets))
		for i := range sets {
			all[i] = i
		}
		return [][]int{all}
	}
	families := make([][]int, len(untils))
	for k, uf := range untils {
		_, b := formula.LeftRight(uf)
		for i, s := range sets {
			if s.Contains(b) || !s.Contains(uf) {
				families[k] = append(families[k], i)
			}
		}
	}
	return families
}
