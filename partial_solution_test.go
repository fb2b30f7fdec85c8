package pubgrub

import "testing"

func TestPartialSolutionPotentialPackagesAndExtraction(t *testing.T) {
	ps := newPartialSolution()
	ps.seedRoot("root", v(0))

	cause := newIncompatibility(KindDerivedFrom, map[PackageID]Term{
		"a": Neg(Between(v(1), v(5))),
	})
	ps.addDerivation("a", cause)

	pot := ps.potentialPackages()
	if len(pot) != 1 || pot[0].Package != "a" {
		t.Fatalf("expected a to be a potential package, got %+v", pot)
	}

	if _, ok := ps.extractSolution(); ok {
		t.Fatal("solution should be incomplete while a is undecided")
	}

	ps.addDecision("a", v(2))
	sol, ok := ps.extractSolution()
	if !ok {
		t.Fatal("solution should be complete once a is decided")
	}
	if sol["root"] != v(0) || sol["a"] != v(2) {
		t.Fatalf("unexpected solution: %+v", sol)
	}
	if len(ps.potentialPackages()) != 0 {
		t.Fatal("a decided package should no longer be a potential package")
	}
}

func TestPartialSolutionBacktrackTruncatesAndRebuilds(t *testing.T) {
	ps := newPartialSolution()
	ps.seedRoot("root", v(0))

	ps.addDecision("a", v(1)) // level 1
	ps.addDecision("b", v(1)) // level 2
	cause := newIncompatibility(KindDerivedFrom, map[PackageID]Term{
		"c": Neg(Between(v(0), v(5))),
	})
	ps.addDerivation("c", cause) // level 2, same as current level

	ps.backtrack(1)

	if ps.level != 1 {
		t.Fatalf("expected level 1 after backtrack, got %d", ps.level)
	}
	if _, ok := ps.mem.get("b"); ok {
		t.Fatal("b's memory should be gone after backtracking past its decision level")
	}
	if _, ok := ps.mem.get("c"); ok {
		t.Fatal("c's memory should be gone after backtracking past its derivation level")
	}
	mem, ok := ps.mem.get("a")
	if !ok || !mem.hasDecision {
		t.Fatal("a's decision at level 1 should survive backtracking to level 1")
	}
}

func TestFindSatisfierAndPreviousLevel(t *testing.T) {
	ic := newIncompatibility(KindDerivedFrom, map[PackageID]Term{
		"a": Pos(Exact(v(1))),
		"b": Pos(Exact(v(2))),
	})

	ps := newPartialSolution()
	ps.seedRoot("root", v(0))
	ps.addDecision("a", v(1)) // level 1
	ps.addDecision("b", v(2)) // level 2

	idx, ok := findSatisfier(ic, ps.log)
	if !ok {
		t.Fatal("expected a satisfier once both a=1 and b=2 are decided")
	}
	if ps.log[idx].pkg != "b" {
		t.Fatalf("expected b's decision to be the satisfier, got %s", ps.log[idx].pkg)
	}

	prevLevel := findPreviousSatisfierLevel(ic, ps.log, idx)
	if prevLevel != 1 {
		t.Fatalf("expected previous satisfier level 1 (a's decision), got %d", prevLevel)
	}
}

func TestFindSatisfierNotYetSatisfied(t *testing.T) {
	ic := newIncompatibility(KindDerivedFrom, map[PackageID]Term{
		"a": Pos(Exact(v(1))),
		"b": Pos(Exact(v(2))),
	})

	ps := newPartialSolution()
	ps.seedRoot("root", v(0))
	ps.addDecision("a", v(1))

	if _, ok := findSatisfier(ic, ps.log); ok {
		t.Fatal("should not find a satisfier until both a and b are decided")
	}
}
