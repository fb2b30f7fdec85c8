package pubgrub

import "testing"

func TestRangeBasics(t *testing.T) {
	if !Any().Contains(v(0)) || !Any().Contains(v(100)) {
		t.Fatal("Any must contain every version")
	}
	if None().Contains(v(0)) {
		t.Fatal("None must contain nothing")
	}
	if !Exact(v(5)).Contains(v(5)) || Exact(v(5)).Contains(v(6)) {
		t.Fatal("Exact(5) must contain only 5")
	}
	if !HigherThan(v(3)).Contains(v(3)) || HigherThan(v(3)).Contains(v(2)) {
		t.Fatal("HigherThan(3) must be [3, inf)")
	}
	if !StrictlyLowerThan(v(3)).Contains(v(2)) || StrictlyLowerThan(v(3)).Contains(v(3)) {
		t.Fatal("StrictlyLowerThan(3) must be [-inf, 3)")
	}
	b := Between(v(2), v(5))
	for _, n := range []int{2, 3, 4} {
		if !b.Contains(v(n)) {
			t.Fatalf("Between(2,5) must contain %d", n)
		}
	}
	if b.Contains(v(5)) || b.Contains(v(1)) {
		t.Fatal("Between(2,5) must exclude boundary/outside values")
	}
}

func TestRangeDoubleNegate(t *testing.T) {
	cases := []Range{
		None(), Any(), Exact(v(3)), Between(v(1), v(5)), HigherThan(v(2)), StrictlyLowerThan(v(9)),
		Between(v(1), v(3)).Union(Between(v(5), v(7))),
	}
	for _, r := range cases {
		got := r.Negate().Negate()
		if !got.Equal(r) {
			t.Errorf("¬¬%v = %v, want %v", r, got, r)
		}
	}
}

func TestRangeComplementLaws(t *testing.T) {
	rs := []Range{Between(v(1), v(5)), Exact(v(3)), HigherThan(v(4)), StrictlyLowerThan(v(2))}
	for _, r := range rs {
		if !r.Intersection(r.Negate()).IsNone() {
			t.Errorf("%v ∩ ¬%v should be empty", r, r)
		}
		if !r.Union(r.Negate()).Equal(Any()) {
			t.Errorf("%v ∪ ¬%v should be Any, got %v", r, r, r.Union(r.Negate()))
		}
	}
}

func TestRangeIntersectionAlgebra(t *testing.T) {
	a := Between(v(1), v(10))
	b := Between(v(5), v(15))
	got := a.Intersection(b)
	want := Between(v(5), v(10))
	if !got.Equal(want) {
		t.Fatalf("intersection = %v, want %v", got, want)
	}

	// commutative
	if !a.Intersection(b).Equal(b.Intersection(a)) {
		t.Fatal("intersection must be commutative")
	}

	// idempotent
	if !a.Intersection(a).Equal(a) {
		t.Fatal("intersection must be idempotent")
	}

	// identity with Any
	if !a.Intersection(Any()).Equal(a) {
		t.Fatal("Any must be the intersection identity")
	}

	// absorbing None
	if !a.Intersection(None()).IsNone() {
		t.Fatal("None must absorb under intersection")
	}

	// associative
	c := HigherThan(v(8))
	lhs := a.Intersection(b).Intersection(c)
	rhs := a.Intersection(b.Intersection(c))
	if !lhs.Equal(rhs) {
		t.Fatalf("intersection must be associative: %v != %v", lhs, rhs)
	}
}

func TestRangeDisjointIntersection(t *testing.T) {
	a := Between(v(1), v(3))
	b := Between(v(5), v(7))
	if !a.Intersection(b).IsNone() {
		t.Fatal("disjoint ranges must intersect to none")
	}
}

func TestRangeUnionWithGap(t *testing.T) {
	a := Between(v(1), v(3))
	b := Between(v(5), v(7))
	u := a.Union(b)
	for _, n := range []int{1, 2, 5, 6} {
		if !u.Contains(v(n)) {
			t.Fatalf("union should contain %d", n)
		}
	}
	if u.Contains(v(3)) || u.Contains(v(4)) || u.Contains(v(7)) {
		t.Fatal("union should not contain the gap or the upper boundary")
	}
}

func TestRangeContainsDistributesOverIntersection(t *testing.T) {
	a := Between(v(1), v(10))
	b := Between(v(4), v(20))
	inter := a.Intersection(b)
	for n := 0; n < 25; n++ {
		want := a.Contains(v(n)) && b.Contains(v(n))
		if got := inter.Contains(v(n)); got != want {
			t.Fatalf("contains(%d) distribution over intersection mismatch: got %v want %v", n, got, want)
		}
	}
}

func TestRangeContainsDistributesOverUnion(t *testing.T) {
	a := Between(v(1), v(5))
	b := Between(v(8), v(12))
	u := a.Union(b)
	for n := 0; n < 15; n++ {
		want := a.Contains(v(n)) || b.Contains(v(n))
		if got := u.Contains(v(n)); got != want {
			t.Fatalf("contains(%d) distribution over union mismatch: got %v want %v", n, got, want)
		}
	}
}

func TestRangeContainsExactRoundtrip(t *testing.T) {
	r := Between(v(0), v(10))
	for n := 0; n < 10; n++ {
		ex := Exact(v(n))
		if r.Contains(v(n)) != ex.Intersection(r).Equal(ex) {
			t.Fatalf("contains/exact roundtrip mismatch at %d", n)
		}
	}
}
