package formula

// Equal reports whether a and b are structurally identical: same Kind at
// every node, same Var names, children compared recursively in order.
func Equal(a, b Formula) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if a.Kind() == KindVar {
		return VarName(a) == VarName(b)
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

// Negate returns the canonical negation of f: if f is already Neg(g), it
// returns g without introducing a new Neg node; otherwise it wraps f in Neg.
func Negate(f Formula) Formula {
	if f.Kind() == KindNeg {
		return Child(f)
	}
	return Neg(f)
}

// Normalize rewrites f, bottom-up, into an equivalent formula over the
// connective set {True, Var, Neg, And, Next, Until}. Children are normalized
// before their parent; each rewrite rule below is re-applied to its own
// output until no further rule matches at that node.
func Normalize(f Formula) Formula {
	switch f.Kind() {
	case KindTrue, KindVar:
		return f
	case KindNeg:
		child := Normalize(Child(f))
		if child.Kind() == KindNeg {
			return Child(child)
		}
		return Neg(child)
	case KindNext:
		return Next(Normalize(Child(f)))
	case KindAlways:
		// G a  ->  !(F !a)
		inner := Eventually(Neg(Normalize(Child(f))))
		return Normalize(Neg(inner))
	case KindEventually:
		// F a  ->  true U a
		return Until(True(), Normalize(Child(f)))
	case KindAnd:
		l, r := LeftRight(f)
		return And(Normalize(l), Normalize(r))
	case KindOr:
		// a \/ b  ->  !(!a /\ !b)
		l, r := LeftRight(f)
		inner := And(Neg(Normalize(l)), Neg(Normalize(r)))
		return Normalize(Neg(inner))
	case KindImpl:
		// a -> b  ->  !a \/ b
		l, r := LeftRight(f)
		return Normalize(Or(Neg(Normalize(l)), Normalize(r)))
	case KindUntil:
		l, r := LeftRight(f)
		return Until(Normalize(l), Normalize(r))
	default:
		panic("formula: Normalize: unhandled kind " + f.Kind().String())
	}
}

// SubFormulas returns every distinct (by Equal) sub-formula of f, including
// f itself, in pre-order.
func SubFormulas(f Formula) []Formula {
	var out []Formula
	var visit func(Formula)
	visit = func(g Formula) {
		for _, h := range out {
			if Equal(h, g) {
				return
			}
		}
		out = append(out, g)
		for _, c := range g.Children() {
			visit(c)
		}
	}
	visit(f)
	return out
}
