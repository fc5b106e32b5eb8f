package formula

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		description string
		a, b        Formula
		want        bool
	}{
		{"true equals true", True(), True(), true},
		{"same var", Var("a"), Var("a"), true},
		{"different var", Var("a"), Var("b"), false},
		{"var vs true", Var("a"), True(), false},
		{"nested and", And(Var("a"), Next(Var("b"))), And(Var("a"), Next(Var("b"))), true},
		{"nested and, different right", And(Var("a"), Next(Var("b"))), And(Var("a"), Next(Var("c"))), false},
		{"until", Until(Var("a"), Var("b")), Until(Var("a"), Var("b")), true},
		{"until vs and", Until(Var("a"), Var("b")), And(Var("a"), Var("b")), false},
	}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			if got := Equal(test.a, test.b); got != test.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestEqualReflexiveSymmetricTransitive(t *testing.T) {
	fs := []Formula{
		True(),
		Var("p"),
		Neg(Var("p")),
		And(Var("p"), Var("q")),
		Until(Var("p"), Next(Var("q"))),
	}
	for _, f := range fs {
		if !Equal(f, f) {
			t.Errorf("Equal(%s, %s) should be reflexively true", f, f)
		}
	}
	a := And(Var("p"), Var("q"))
	b := And(Var("p"), Var("q"))
	c := And(Var("p"), Var("q"))
	if Equal(a, b) != Equal(b, a) {
		t.Error("Equal should be symmetric")
	}
	if Equal(a, b) && Equal(b, c) && !Equal(a, c) {
		t.Error("Equal should be transitive")
	}
}

func TestNegate(t *testing.T) {
	tests := []struct {
		description string
		in          Formula
		want        Formula
	}{
		{"negate var wraps in Neg", Var("a"), Neg(Var("a"))},
		{"negate Neg unwraps", Neg(Var("a")), Var("a")},
		{"double negate restores", Negate(Var("a")), Var("a")},
	}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			got := Negate(test.in)
			if !Equal(got, test.want) {
				t.Errorf("Negate(%s) = %s, want %s", test.in, got, test.want)
			}
		})
	}
	// negate(negate(f)) == f whenever f is not itself Neg(.)
	for _, f := range []Formula{True(), Var("p"), And(Var("p"), Var("q"))} {
		if got := Negate(Negate(f)); !Equal(got, f) {
			t.Errorf("Negate(Negate(%s)) = %s, want %s", f, got, f)
		}
	}
}

func TestNormalizeRemovesDerivedConnectives(t *testing.T) {
	tests := []struct {
		description string
		in          Formula
	}{
		{"always", Always(Var("a"))},
		{"eventually", Eventually(Var("a"))},
		{"or", Or(Var("a"), Var("b"))},
		{"impl", Impl(Var("a"), Var("b"))},
		{"nested mix", Impl(Always(Var("a")), Or(Var("b"), Eventually(Var("c"))))},
	}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			got := Normalize(test.in)
			for _, sf := range SubFormulas(got) {
				switch sf.Kind() {
				case KindOr, KindImpl, KindAlways, KindEventually:
					t.Errorf("Normalize(%s) = %s still contains a %s node", test.in, got, sf.Kind())
				}
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	fs := []Formula{
		True(),
		Var("a"),
		Always(Eventually(Var("a"))),
		Impl(Var("a"), Until(Var("b"), Var("c"))),
		Neg(Neg(Neg(Var("a")))),
	}
	for _, f := range fs {
		once := Normalize(f)
		twice := Normalize(once)
		if !Equal(once, twice) {
			t.Errorf("Normalize not idempotent for %s: once=%s twice=%s", f, once, twice)
		}
	}
}

func TestNormalizeDoubleNegationCancellation(t *testing.T) {
	got := Normalize(Neg(Neg(Var("a"))))
	if !Equal(got, Var("a")) {
		t.Errorf("Normalize(!!a) = %s, want a", got)
	}
}
