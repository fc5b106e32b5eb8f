// Package closure computes the closure of a normalized LTL formula: the
// smallest ordered collection of sub-formulas that is closed under
// sub-formula and under pairing each formula with its canonical negation.
package closure

import (
	"github.com/corvid-labs/tableau/pkg/formula"
)

// Closure holds the ordered set of formulas in closure(phi), together with
// a lookup from each formula (by its rendered string) to its index and to
// the index of its paired negation.
type Closure struct {
	formulas []formula.Formula
	index    map[string]int // formula string -> index in formulas
	negIndex []int          // formulas[i]'s negation is formulas[negIndex[i]]
}

// Build computes closure(phi) per the recursive procedure: recurse
// over phi; if phi (by structural equality) is not already present, insert
// both phi and its canonical negation, cross-linking them; then recurse into
// children.
func Build(phi formula.Formula) *Closure {
	c := &Closure{index: map[string]int{}}
	c.insert(phi)
	return c
}

func (c *Closure) insert(f formula.Formula) {
	key := f.String()
	if _, ok := c.index[key]; ok {
		c.recurseChildren(f)
		return
	}
	neg := formula.Negate(f)
	negKey := neg.String()

	fIdx := len(c.formulas)
	c.formulas = append(c.formulas, f)
	c.negIndex = append(c.negIndex, -1)
	c.index[key] = fIdx

	switch {
	case negKey == key:
		// Unreachable for well-formed LTL (negate always differs from its
		// argument), but guard against it rather than assume.
		c.negIndex[fIdx] = fIdx
	default:
		if existing, ok := c.index[negKey]; ok {
			// neg(f) was already present under a different insertion path
			// (reachable by String()'s injectivity only if Negate is an
			// involution, which it is by construction); link rather than
			// duplicate.
			c.negIndex[fIdx] = existing
			c.negIndex[existing] = fIdx
		} else {
			negIdx := len(c.formulas)
			c.formulas = append(c.formulas, neg)
			c.negIndex = append(c.negIndex, fIdx)
			c.index[negKey] = negIdx
			c.negIndex[fIdx] = negIdx
		}
	}

	c.recurseChildren(f)
}

func (c *Closure) recurseChildren(f formula.Formula) {
	for _, child := range f.Children() {
		c.insert(child)
	}
}

// Len returns |closure(phi)|.
func (c *Closure) Len() int { return len(c.formulas) }

// At returns the formula at index i, for 0 <= i < Len().
func (c *Closure) At(i int) formula.Formula { return c.formulas[i] }

// Formulas returns the closure's formulas in insertion order.
func (c *Closure) Formulas() []formula.Formula {
	out := make([]formula.Formula, len(c.formulas))
	copy(out, c.formulas)
	return out
}

// IndexOf returns the index of f within the closure, and whether f is
// present.
func (c *Closure) IndexOf(f formula.Formula) (int, bool) {
	i, ok := c.index[f.String()]
	return i, ok
}

// Negation returns the closure's canonical negation of the formula at index
// i.
func (c *Closure) Negation(i int) formula.Formula {
	return c.formulas[c.negIndex[i]]
}

// NegationIndex returns the index of the canonical negation of the formula
// at index i.
func (c *Closure) NegationIndex(i int) int {
	return c.negIndex[i]
}

// Contains reports whether f (or its structural equal) is present in the
// closure.
func (c *Closure) Contains(f formula.Formula) bool {
	_, ok := c.IndexOf(f)
	return ok
}
