package pubgrub

// assignmentKind distinguishes a Decision (the driver or oracle picked a
// concrete version) from a Derivation (propagation inferred a constraint
// from an incompatibility).
type assignmentKind uint8

const (
	kindDecision assignmentKind = iota
	kindDerivation
)

// assignment is one entry of the partial solution's append-only log.
type assignment struct {
	pkg  PackageID
	kind assignmentKind

	// asTerm is the term this assignment contributes: Pos(Exact(version))
	// for a Decision, cause.Get(pkg).Negate() for a Derivation. It is
	// computed once, at append time, so satisfier search never has to
	// reach back into the incompatibility that caused it.
	asTerm Term

	version Version          // meaningful iff kind == kindDecision
	cause   *Incompatibility // meaningful iff kind == kindDerivation
}

// datedAssignment pairs an assignment with the decision level it was made
// at, which is all backtracking and satisfier search need beyond the log's
// own order.
type datedAssignment struct {
	assignment
	level int
}

// PotentialPackage is a candidate the driver asks the oracle to pick a
// version for: a package with at least one positive derivation recorded
// against it, but no decision yet, along with the range any chosen version
// must satisfy.
type PotentialPackage struct {
	Package PackageID
	Range   Range
}

// partialSolution is the ordered record of every decision and derivation
// made so far, plus the per-package memory that makes querying it cheap.
// It is the single source of truth the solver's propagation and conflict
// resolution steps consult and mutate.
type partialSolution struct {
	log   []datedAssignment
	level int

	mem termMemory

	// derivationOrder records each package the first time any derivation
	// (positive or negative) is appended for it, giving PotentialPackages a
	// stable, reproducible iteration order instead of depending on map
	// iteration or insertion into the radix tree.
	derivationOrder []PackageID
	firstSeen       map[PackageID]struct{}
}

func newPartialSolution() *partialSolution {
	return &partialSolution{
		mem:       newTermMemory(),
		firstSeen: make(map[PackageID]struct{}),
	}
}

// seedRoot installs the root package's decision at level 0, before any
// propagation happens. It does not advance the decision level counter:
// the first real decision made afterwards is level 1. Level 0 is the floor
// conflict resolution clamps backtrack targets to, so root's assignment can
// never be undone.
func (ps *partialSolution) seedRoot(root PackageID, version Version) {
	a := assignment{pkg: root, kind: kindDecision, version: version, asTerm: Pos(Exact(version))}
	ps.log = append(ps.log, datedAssignment{a, 0})

	mem := ps.mem.getOrCreate(root)
	mem.hasDecision = true
	mem.decisionVersion = version
	mem.invalidate()
}

// addDecision records that pkg was decided to be version, at a new decision
// level.
func (ps *partialSolution) addDecision(pkg PackageID, version Version) {
	ps.level++
	a := assignment{pkg: pkg, kind: kindDecision, version: version, asTerm: Pos(Exact(version))}
	ps.log = append(ps.log, datedAssignment{a, ps.level})

	mem := ps.mem.getOrCreate(pkg)
	mem.hasDecision = true
	mem.decisionVersion = version
	mem.invalidate()
}

// addDerivation records that pkg was constrained by cause, at the current
// decision level, and returns the term the derivation contributes.
func (ps *partialSolution) addDerivation(pkg PackageID, cause *Incompatibility) Term {
	icTerm, _ := cause.Get(pkg)
	term := icTerm.Negate()

	a := assignment{pkg: pkg, kind: kindDerivation, cause: cause, asTerm: term}
	ps.log = append(ps.log, datedAssignment{a, ps.level})

	mem := ps.mem.getOrCreate(pkg)
	mem.derivations = append(mem.derivations, term)
	mem.invalidate()

	if _, seen := ps.firstSeen[pkg]; !seen {
		ps.firstSeen[pkg] = struct{}{}
		ps.derivationOrder = append(ps.derivationOrder, pkg)
	}

	return term
}

// termFor returns the accumulated term known about pkg, and whether pkg has
// been assigned at all. An absent package is not the same as a package
// whose accumulated term happens to be Term.Any: callers (Incompatibility's
// relation computation, in particular) must treat absence as Inconclusive
// directly rather than feeding Term.Any into RelationWith, since Term.Any's
// own RelationWith answers are not conservative.
func (ps *partialSolution) termFor(pkg PackageID) (Term, bool) {
	mem, ok := ps.mem.get(pkg)
	if !ok {
		return Term{}, false
	}
	return mem.accumulatedTerm(), true
}

// potentialPackages returns every package with a positive accumulated term
// and no decision yet, in first-derived order.
func (ps *partialSolution) potentialPackages() []PotentialPackage {
	var out []PotentialPackage
	for _, pkg := range ps.derivationOrder {
		mem, ok := ps.mem.get(pkg)
		if !ok || mem.hasDecision {
			continue
		}
		t := mem.accumulatedTerm()
		if !t.Positive {
			continue
		}
		out = append(out, PotentialPackage{Package: pkg, Range: t.R})
	}
	return out
}

// extractSolution returns the decided version of every package, and true,
// if every package with a positive accumulated term has been decided.
// Otherwise it returns false: there is more propagation or decision-making
// left to do.
func (ps *partialSolution) extractSolution() (map[PackageID]Version, bool) {
	for _, pkg := range ps.derivationOrder {
		mem, ok := ps.mem.get(pkg)
		if !ok {
			continue
		}
		if mem.accumulatedTerm().Positive && !mem.hasDecision {
			return nil, false
		}
	}

	sol := make(map[PackageID]Version)
	for _, da := range ps.log {
		if da.kind == kindDecision {
			sol[da.pkg] = da.version
		}
	}
	return sol, true
}

// satisfierState is the per-package bookkeeping a satisfier search walk
// keeps: the running intersection of every as-term seen for that package so
// far, and whether that intersection already satisfies the incompatibility's
// term for it.
type satisfierState struct {
	term      map[PackageID]Term
	satisfied map[PackageID]bool
}

func newSatisfierState(ic *Incompatibility) satisfierState {
	s := satisfierState{
		term:      make(map[PackageID]Term, len(ic.order)),
		satisfied: make(map[PackageID]bool, len(ic.order)),
	}
	for _, pkg := range ic.order {
		s.term[pkg] = TermAny()
		s.satisfied[pkg] = false
	}
	return s
}

func (s satisfierState) allSatisfied() bool {
	for _, ok := range s.satisfied {
		if !ok {
			return false
		}
	}
	return true
}

// findSatisfier walks the log oldest-first and returns the index of the
// earliest assignment after which every package ic mentions has an
// accumulated term (restricted to assignments up to and including that
// point) that is a subset of ic's term for it — i.e. the earliest point at
// which ic became true. ok is false if no such point exists yet.
func findSatisfier(ic *Incompatibility, log []datedAssignment) (idx int, ok bool) {
	state := newSatisfierState(ic)

	for i, da := range log {
		icTerm, mentioned := ic.terms[da.pkg]
		if !mentioned || state.satisfied[da.pkg] {
			continue
		}

		state.term[da.pkg] = state.term[da.pkg].Intersection(da.asTerm)
		state.satisfied[da.pkg] = state.term[da.pkg].SubsetOf(icTerm)

		if state.allSatisfied() {
			return i, true
		}
	}

	return -1, false
}

// findPreviousSatisfierLevel re-runs the satisfier search over the prefix
// strictly before satisfierIdx, seeding the satisfier's own package with
// just its own as-term (ignoring whatever came before it in the log) rather
// than Term.Any. The result is the decision level of the earliest point at
// which ic would already have been satisfied if the satisfier's
// contribution were known from the start — the level conflict resolution
// backtracks to. It is never below 0, the level of root's seed decision,
// which must never be undone; if no earlier point satisfies ic, the result
// is 0.
func findPreviousSatisfierLevel(ic *Incompatibility, log []datedAssignment, satisfierIdx int) int {
	satAssign := log[satisfierIdx]

	state := newSatisfierState(ic)
	if icTerm, ok := ic.terms[satAssign.pkg]; ok {
		state.term[satAssign.pkg] = satAssign.asTerm
		state.satisfied[satAssign.pkg] = satAssign.asTerm.SubsetOf(icTerm)
	}

	for i := 0; i < satisfierIdx; i++ {
		da := log[i]
		icTerm, mentioned := ic.terms[da.pkg]
		if !mentioned || state.satisfied[da.pkg] {
			continue
		}

		state.term[da.pkg] = state.term[da.pkg].Intersection(da.asTerm)
		state.satisfied[da.pkg] = state.term[da.pkg].SubsetOf(icTerm)

		if state.allSatisfied() {
			return maxInt(log[i].level, 0)
		}
	}

	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// backtrack discards every assignment made strictly after decision level L
// and rebuilds memory from what survives. The new current level is exactly
// L, so the next decision made is L+1.
func (ps *partialSolution) backtrack(L int) {
	cut := len(ps.log)
	for cut > 0 && ps.log[cut-1].level > L {
		cut--
	}

	surviving := make([]datedAssignment, cut)
	copy(surviving, ps.log[:cut])

	ps.log = surviving
	ps.level = L
	ps.mem = newTermMemory()
	ps.derivationOrder = nil
	ps.firstSeen = make(map[PackageID]struct{})

	for _, da := range ps.log {
		mem := ps.mem.getOrCreate(da.pkg)
		switch da.kind {
		case kindDecision:
			mem.hasDecision = true
			mem.decisionVersion = da.version
		case kindDerivation:
			mem.derivations = append(mem.derivations, da.asTerm)
			if _, seen := ps.firstSeen[da.pkg]; !seen {
				ps.firstSeen[da.pkg] = struct{}{}
				ps.derivationOrder = append(ps.derivationOrder, da.pkg)
			}
		}
		mem.invalidate()
	}
}
