// Package elementary enumerates the elementary sets of a closure: the
// maximally propositionally-consistent, locally-temporally-consistent
// subsets required to build a tableau automaton.
package elementary

import (
	"github.com/corvid-labs/tableau/pkg/closure"
	"github.com/corvid-labs/tableau/pkg/formula"
)

// Set is one elementary subset B of a Closure, represented as an inclusion
// bitmap indexed the same way as the Closure it was built from.
type Set struct {
	c        *closure.Closure
	included []bool
}

// Contains reports whether f is a member of the elementary set. f must be
// present in the underlying closure.
func (s *Set) Contains(f formula.Formula) bool {
	i, ok := s.c.IndexOf(f)
	if !ok {
		return false
	}
	return s.included[i]
}

// ContainsIndex reports whether the closure formula at index i is a member.
func (s *Set) ContainsIndex(i int) bool {
	return s.included[i]
}

// APProjection returns the set of Var names present in the elementary set,
// serving as the guard/label when the set is used as an automaton state.
func (s *Set) APProjection() map[string]bool {
	out := map[string]bool{}
	for i, inc := range s.included {
		if inc && s.c.At(i).Kind() == formula.KindVar {
			out[formula.VarName(s.c.At(i))] = true
		}
	}
	return out
}

// Key returns a canonical string identifying the set's membership, suitable
// as a map key for deduplication or indexing.
func (s *Set) Key() string {
	buf := make([]byte, len(s.included))
	for i, inc := range s.included {
		if inc {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// Enumerate returns every elementary set of c, in the deterministic order
// produced by a backtracking search over closure indices (include branch
// tried before exclude at each position), pruning as soon as a formula's
// paired negation has already been decided to forbid the remaining choice.
func Enumerate(c *closure.Closure) []*Set {
	n := c.Len()
	included := make([]bool, n)
	decided := make([]bool, n)
	var out []*Set

	var recurse func(i int)
	recurse = func(i int) {
		if i == n {
			if satisfies(c, included) {
				cp := make([]bool, n)
				copy(cp, included)
				out = append(out, &Set{c: c, included: cp})
			}
			return
		}

		negIdx := c.NegationIndex(i)
		if negIdx < i && decided[negIdx] {
			// Propositional maximality pins this index to the complement of
			// its already-decided negation; only one branch is legal.
			included[i] = !included[negIdx]
			decided[i] = true
			recurse(i + 1)
			decided[i] = false
			return
		}

		// Include branch first.
		included[i] = true
		decided[i] = true
		recurse(i + 1)

		// Exclude branch.
		included[i] = false
		recurse(i + 1)

		decided[i] = false
	}
	recurse(0)
	return out
}

// satisfies tests the full elementary-set predicate against a complete
// assignment: propositional maximality, conjunction, true, and until
// locality.
func satisfies(c *closure.Closure, included []bool) bool {
	for i := 0; i < c.Len(); i++ {
		f := c.At(i)
		negIdx := c.NegationIndex(i)

		// (a) propositional maximality: exactly one of f, neg(f) included.
		if included[i] == included[negIdx] {
			return false
		}

		switch f.Kind() {
		case formula.KindAnd:
			l, r := formula.LeftRight(f)
			li, lok := c.IndexOf(l)
			ri, rok := c.IndexOf(r)
			if !lok || !rok {
				continue
			}
			// (b) conjunction.
			if included[i] != (included[li] && included[ri]) {
				return false
			}
		case formula.KindTrue:
			// (c) true must be included whenever present in the closure.
			if !included[i] {
				return false
			}
		case formula.KindUntil:
			l, r := formula.LeftRight(f)
			li, lok := c.IndexOf(l)
			ri, rok := c.IndexOf(r)
			if !lok || !rok {
				continue
			}
			// (d) until locality.
			if included[ri] && !included[i] {
				return false
			}
			if included[i] && !(included[li] || included[ri]) {
				return false
			}
		}
	}
	return true
}
