// Package verifier orchestrates the full tableau pipeline -- parse,
// normalize, closure, elementary sets, GNBA, degeneralize, product,
// emptiness -- per query, and exposes the query-batch file format described
// in section 6.2 of the system design.
package verifier

import (
	"fmt"

	"github.com/corvid-labs/tableau/pkg/automaton"
	"github.com/corvid-labs/tableau/pkg/closure"
	"github.com/corvid-labs/tableau/pkg/elementary"
	"github.com/corvid-labs/tableau/pkg/formula"
	"github.com/corvid-labs/tableau/pkg/parser"
	"github.com/corvid-labs/tableau/pkg/product"
	"github.com/corvid-labs/tableau/pkg/scc"
	"github.com/corvid-labs/tableau/pkg/ts"
)

// Stats reports the size of each structure built while answering a query,
// for verbose diagnostics (SPEC_FULL.md section 4.1: the original prints
// formula and automaton sizes when run verbosely).
type Stats struct {
	Normalized      formula.Formula
	ClosureSize     int
	ElementarySets  int
	GNBAStates      int
	NBAStates       int
	ProductStates   int
}

// Verify decides whether every infinite trace of tsys (from its initial
// states) satisfies the formula parsed from query. It returns (true, nil)
// for verdict 1, (false, nil) for verdict 0. A non-nil error is always an
// input or internal error (section 7); it is never itself a verdict.
func Verify(tsys *ts.TS, query string) (bool, error) {
	verdict, _, err := VerifyWithStats(tsys, query)
	return verdict, err
}

// VerifyWithStats is Verify, additionally returning the structure sizes
// built along the way, for --verbose diagnostics.
func VerifyWithStats(tsys *ts.TS, query string) (bool, Stats, error) {
	phi, err := parser.Parse(query)
	if err != nil {
		return false, Stats{}, fmt.Errorf("parsing query %q: %w", query, err)
	}

	// The NBA is built to accept traces VIOLATING phi, so the verifier can
	// decide satisfaction by checking that automaton's language is empty.
	negated := formula.Normalize(formula.Neg(phi))

	c := closure.Build(negated)
	sets := elementary.Enumerate(c)
	g := automaton.BuildGNBA(c, negated, sets)
	nba := automaton.Degeneralize(g)
	prod := product.Build(tsys, nba)

	var initials []int
	for _, st := range prod.States {
		if st.Initial {
			initials = append(initials, st.ID)
		}
	}
	accepting := func(i int) bool { return prod.States[i].Accepting }

	nonEmpty := scc.EmptinessCheck(prod, initials, accepting)

	stats := Stats{
		Normalized:     negated,
		ClosureSize:    c.Len(),
		ElementarySets: len(sets),
		GNBAStates:     len(g.States),
		NBAStates:      len(nba.States),
		ProductStates:  len(prod.States),
	}

	// nonEmpty means a violating trace is reachable, so tsys does NOT
	// satisfy phi (verdict 0); emptiness means it does (verdict 1).
	return !nonEmpty, stats, nil
}
