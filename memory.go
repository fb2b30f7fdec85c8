package pubgrub

import "github.com/armon/go-radix"

// pkgMemory is the per-package summary the partial solution keeps so that
// propagation and satisfier search don't have to replay the whole
// assignment log for every lookup: the decision (if any), every derivation
// term seen so far, and a lazily computed intersection of all of it.
type pkgMemory struct {
	hasDecision     bool
	decisionVersion Version

	derivations []Term

	cached *Term
}

// accumulatedTerm returns the intersection of every term known about this
// package: Pos(Exact(decision)) if decided, intersected with every
// derivation term recorded so far. The result is cached and invalidated by
// invalidate, the way a real cache would be, rather than recomputed from
// scratch eagerly on every append.
func (m *pkgMemory) accumulatedTerm() Term {
	if m.cached != nil {
		return *m.cached
	}

	t := TermAny()
	if m.hasDecision {
		t = t.Intersection(Pos(Exact(m.decisionVersion)))
	}
	for _, d := range m.derivations {
		t = t.Intersection(d)
	}

	m.cached = &t
	return t
}

func (m *pkgMemory) invalidate() { m.cached = nil }

// termMemory is a typed wrapper around *radix.Tree mapping package names to
// their pkgMemory, in the idiom of the reference codebase's own typed radix
// wrappers (see typed_radix.go there): it exists purely to avoid scattering
// interface{} type assertions through the rest of the package, and gets a
// deterministic lexicographic walk over package names for free, which
// PotentialPackages can fall back on as a documented, reproducible tie
// breaker if callers need one.
type termMemory struct {
	t *radix.Tree
}

func newTermMemory() termMemory {
	return termMemory{t: radix.New()}
}

func (m termMemory) get(pkg PackageID) (*pkgMemory, bool) {
	v, ok := m.t.Get(string(pkg))
	if !ok {
		return nil, false
	}
	return v.(*pkgMemory), true
}

func (m termMemory) getOrCreate(pkg PackageID) *pkgMemory {
	if mem, ok := m.get(pkg); ok {
		return mem
	}
	mem := &pkgMemory{}
	m.t.Insert(string(pkg), mem)
	return mem
}

// walkSorted calls fn for every (package, memory) pair, in lexicographic
// order of package name.
func (m termMemory) walkSorted(fn func(PackageID, *pkgMemory)) {
	m.t.Walk(func(s string, v interface{}) bool {
		fn(PackageID(s), v.(*pkgMemory))
		return false
	})
}
