package pubgrub

import (
	"fmt"
	"sort"
	"strings"
)

// PackageID names a package in a solve. It is an opaque comparable value so
// callers can use whatever identifier makes sense for their ecosystem
// (import path, registry name, …).
type PackageID string

// IncompatibilityKind records how an Incompatibility came to exist. Kind
// values other than KindDerivedFrom are leaves of the derivation tree; they
// are never constructed by the solver's own conflict resolution, only by
// the driver translating oracle responses.
type IncompatibilityKind uint8

const (
	// KindNotRoot is the seed incompatibility {root: not exact(rootVersion)}.
	KindNotRoot IncompatibilityKind = iota
	// KindNoVersions signals that no version of a package satisfies a range.
	KindNoVersions
	// KindUnavailableDependencies signals the oracle could not produce a
	// dependency list for a package version.
	KindUnavailableDependencies
	// KindFromDependencyOf records that one package's dependency excludes
	// versions of another.
	KindFromDependencyOf
	// KindDerivedFrom is a learned incompatibility produced by the rule of
	// resolution, combining two parent incompatibilities.
	KindDerivedFrom
)

// Incompatibility is a conjunction of per-package Terms that can never all
// hold simultaneously in a valid solution. It never stores a term equal to
// Term.Any: a term that is universally true carries no information and is
// dropped at construction, since it would otherwise corrupt the
// Inconclusive/AlmostSatisfied classification in Relation.
type Incompatibility struct {
	id    int
	terms map[PackageID]Term
	// order preserves a stable iteration sequence over terms, since Go map
	// iteration order is random and reporting/propagation both need to walk
	// terms deterministically.
	order []PackageID

	kind IncompatibilityKind

	// Populated according to kind.
	rootPackage, noVersionsPackage, unavailablePackage, fromPackage, depPackage PackageID
	rootVersion                                                                Version
	noVersionsRange, unavailableRange, fromRange, depRange                     Range
	fromVersion                                                                Version

	parent1, parent2 int // valid iff kind == KindDerivedFrom
}

// ID returns the stable, store-assigned identity of this incompatibility.
func (ic *Incompatibility) ID() int { return ic.id }

// Kind returns the origin tag of this incompatibility.
func (ic *Incompatibility) Kind() IncompatibilityKind { return ic.kind }

// Packages returns the packages mentioned by this incompatibility, in a
// stable order.
func (ic *Incompatibility) Packages() []PackageID {
	out := make([]PackageID, len(ic.order))
	copy(out, ic.order)
	return out
}

// Get returns the term this incompatibility asserts for pkg, and whether
// pkg is mentioned at all. An unmentioned package is conceptually
// Term.Any.
func (ic *Incompatibility) Get(pkg PackageID) (Term, bool) {
	t, ok := ic.terms[pkg]
	return t, ok
}

// IsEmpty reports whether this incompatibility mentions no packages, which
// makes it unconditionally true and therefore, per the terminal test,
// unsatisfiable as a requirement on any solution.
func (ic *Incompatibility) IsEmpty() bool { return len(ic.order) == 0 }

// newIncompatibility builds an incompatibility from a candidate term map,
// dropping any term equal to Term.Any (see the type doc comment).
func newIncompatibility(kind IncompatibilityKind, terms map[PackageID]Term) *Incompatibility {
	ic := &Incompatibility{
		kind:  kind,
		terms: make(map[PackageID]Term, len(terms)),
	}

	keys := make([]PackageID, 0, len(terms))
	for pkg := range terms {
		keys = append(keys, pkg)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, pkg := range keys {
		t := terms[pkg]
		if t.IsAny() {
			continue
		}
		ic.terms[pkg] = t
		ic.order = append(ic.order, pkg)
	}

	return ic
}

func notRootIncompatibility(root PackageID, rootVersion Version) *Incompatibility {
	ic := newIncompatibility(KindNotRoot, map[PackageID]Term{
		root: Neg(Exact(rootVersion)),
	})
	ic.rootPackage, ic.rootVersion = root, rootVersion
	return ic
}

func noVersionsIncompatibility(pkg PackageID, r Range) *Incompatibility {
	ic := newIncompatibility(KindNoVersions, map[PackageID]Term{
		pkg: Pos(r),
	})
	ic.noVersionsPackage, ic.noVersionsRange = pkg, r
	return ic
}

func unavailableDependenciesIncompatibility(pkg PackageID, r Range) *Incompatibility {
	ic := newIncompatibility(KindUnavailableDependencies, map[PackageID]Term{
		pkg: Pos(r),
	})
	ic.unavailablePackage, ic.unavailableRange = pkg, r
	return ic
}

func fromDependencyOfIncompatibility(pkg PackageID, version Version, dep PackageID, depRange Range) *Incompatibility {
	ic := newIncompatibility(KindFromDependencyOf, map[PackageID]Term{
		pkg: Pos(Exact(version)),
		dep: Neg(depRange),
	})
	ic.fromPackage, ic.fromVersion = pkg, version
	ic.depPackage, ic.depRange = dep, depRange
	return ic
}

// priorCause implements the rule of resolution: given incompatibilities a
// and b that both mention p, produce the incompatibility that omits p,
// combining every other package's term by intersection (union where only
// one side mentions it) and p's own terms by union.
func priorCause(a, b *Incompatibility, p PackageID) *Incompatibility {
	merged := make(map[PackageID]Term)

	for _, pkg := range a.order {
		if pkg == p {
			continue
		}
		merged[pkg] = a.terms[pkg]
	}
	for _, pkg := range b.order {
		if pkg == p {
			continue
		}
		if existing, ok := merged[pkg]; ok {
			merged[pkg] = existing.Intersection(b.terms[pkg])
		} else {
			merged[pkg] = b.terms[pkg]
		}
	}

	ta, aok := a.terms[p]
	tb, bok := b.terms[p]
	if aok && bok {
		union := ta.Union(tb)
		if !union.IsAny() {
			merged[p] = union
		}
	}

	ic := newIncompatibility(KindDerivedFrom, merged)
	ic.parent1, ic.parent2 = a.id, b.id
	return ic
}

// incompatRelation is the outcome of comparing an Incompatibility against a
// partial solution.
type incompatRelation uint8

const (
	relSatisfied incompatRelation = iota
	relContradicted
	relAlmostSatisfied
	relInconclusive
)

// String renders ic for trace output, matching the reference codebase's
// practice of having each distinct failure kind know how to describe
// itself rather than routing everything through one generic formatter.
func (ic *Incompatibility) String() string {
	switch ic.kind {
	case KindNotRoot:
		return fmt.Sprintf("%s is the root package", ic.rootPackage)
	case KindNoVersions:
		return fmt.Sprintf("no versions of %s match %s", ic.noVersionsPackage, ic.noVersionsRange)
	case KindUnavailableDependencies:
		return fmt.Sprintf("dependencies of %s could not be retrieved for %s", ic.unavailablePackage, ic.unavailableRange)
	case KindFromDependencyOf:
		return fmt.Sprintf("%s %s depends on %s %s", ic.fromPackage, ic.fromVersion, ic.depPackage, ic.depRange)
	default:
		parts := make([]string, 0, len(ic.order))
		for _, pkg := range ic.order {
			parts = append(parts, fmt.Sprintf("%s %s", pkg, ic.terms[pkg]))
		}
		if len(parts) == 0 {
			return "version solving failed"
		}
		return strings.Join(parts, ", ") + " are incompatible"
	}
}
