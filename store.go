package pubgrub

// store is the append-only collection of every incompatibility derived or
// asserted during a solve, indexed by the stable id assigned at insertion.
// Ids are dense and monotonic starting at 0, so a store can also be walked
// as a plain slice when an id isn't needed.
type store struct {
	all []*Incompatibility

	// live holds the ids of incompatibilities still eligible for unit
	// propagation, oldest first. The driver iterates it newest-first: a
	// newly learned incompatibility is the most likely to still be
	// violated, so checking it before older ones finds the next conflict
	// in fewer steps.
	live []int
}

func newStore() *store {
	return &store{}
}

// add assigns ic the next id, appends it to both the full history and the
// live set, and returns it.
func (s *store) add(ic *Incompatibility) *Incompatibility {
	ic.id = len(s.all)
	s.all = append(s.all, ic)
	s.live = append(s.live, ic.id)
	return ic
}

// get looks up an incompatibility by id, whether or not it is in the live
// set — the derivation tree walk needs to reach every one of them.
func (s *store) get(id int) *Incompatibility {
	return s.all[id]
}

// liveNewestFirst returns the ids of live incompatibilities in reverse
// insertion order, for the driver's unit propagation sweep.
func (s *store) liveNewestFirst() []int {
	out := make([]int, len(s.live))
	for i, id := range s.live {
		out[len(s.live)-1-i] = id
	}
	return out
}

// relation classifies ic against ps: Satisfied if every mentioned package's
// accumulated term is a subset of ic's term for it, Contradicted if any one
// of them is disjoint from ic's term, AlmostSatisfied(pkg) if exactly one is
// neither (or unassigned) and the rest are Satisfied, Inconclusive
// otherwise. These are the same subset tests findSatisfier uses, so an
// incompatibility classified Satisfied always has a satisfier.
//
// An unassigned package is treated as Inconclusive directly, since an
// absent assignment carries no information at all.
func (ic *Incompatibility) relation(ps *partialSolution) (incompatRelation, PackageID) {
	var unknown PackageID
	unknownCount := 0

	for _, pkg := range ic.order {
		t, present := ps.termFor(pkg)
		if !present {
			unknownCount++
			unknown = pkg
			continue
		}

		// t is what the partial solution has accumulated for pkg: if it
		// lies within ic's term, that term already holds; if it lies within
		// the term's complement, the term can no longer hold.
		icTerm := ic.terms[pkg]
		switch {
		case t.SubsetOf(icTerm):
			// this package's share of ic already holds; keep checking others
		case t.SubsetOf(icTerm.Negate()):
			return relContradicted, ""
		default:
			unknownCount++
			unknown = pkg
		}
	}

	switch unknownCount {
	case 0:
		return relSatisfied, ""
	case 1:
		return relAlmostSatisfied, unknown
	default:
		return relInconclusive, ""
	}
}

// isTerminal reports whether ic is the terminal incompatibility that ends a
// solve with NoSolution: either empty (unconditionally true, hence
// unsatisfiable by any solution) or mentioning only the root package.
// Conflict resolution only ever reaches a single-term incompatibility about
// root once every other package's contribution has been folded away by the
// rule of resolution, at which point the remaining term about root is, by
// construction, one the solve can never get past: the root package's
// version is fixed by definition, so a requirement stated purely in terms
// of it is equivalent to the unconditionally false incompatibility.
func (ic *Incompatibility) isTerminal(root PackageID) bool {
	if ic.IsEmpty() {
		return true
	}
	return len(ic.order) == 1 && ic.order[0] == root
}
