package pubgrub

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/tranzystorek-io/pubgrub/tracelog"
)

// Dependency is one edge of a dependency: a requirement that some other
// package's version lie within a range.
type Dependency struct {
	Package PackageID
	R       Range
}

// DependencyOracle is the caller-supplied source of truth the solver
// queries for everything it doesn't derive itself: which versions of a
// package exist and what they depend on. Implementations are free to hit a
// registry, a lockfile, an in-memory fixture (see the offline package), or
// anything else; the solver never assumes anything about where the data
// comes from.
type DependencyOracle interface {
	// ChoosePackageVersion picks one of candidates to resolve next and a
	// version for it that lies within that candidate's Range. found is
	// false if the chosen package has no version satisfying its range at
	// all (not that candidates was empty, which the driver never asks
	// about).
	ChoosePackageVersion(ctx context.Context, candidates []PotentialPackage) (pkg PackageID, version Version, found bool, err error)

	// GetDependencies returns the dependencies of pkg at version. Return an
	// error wrapping ErrDependenciesUnavailable to tell the solver this
	// version's dependencies are simply unusable (malformed manifest,
	// yanked release, ...) without aborting the whole solve; any other
	// error is fatal.
	GetDependencies(ctx context.Context, pkg PackageID, version Version) ([]Dependency, error)
}

// SolveParameters configures a single call to Solve or SolveContext.
type SolveParameters struct {
	Root             PackageID
	RootVersion      Version
	RootDependencies []Dependency
	Oracle           DependencyOracle

	// Trace, if true, narrates propagation, decisions, and backtracking to
	// TraceLogger (or stderr, via a default logger, if TraceLogger is nil).
	Trace       bool
	TraceLogger *tracelog.Logger
}

// Solve runs the solver to completion with a background context. See
// SolveContext.
func Solve(params SolveParameters) (map[PackageID]Version, error) {
	return SolveContext(context.Background(), params)
}

// SolveContext finds a version for every package transitively required by
// params.Root at params.RootVersion, consistent with every dependency
// constraint involved, or returns a *NoSolutionError explaining why no such
// assignment exists. It returns ctx.Err() if ctx is cancelled between
// driver steps.
func SolveContext(ctx context.Context, params SolveParameters) (map[PackageID]Version, error) {
	st := newState(params.Root, params.RootVersion)

	tl := params.TraceLogger
	if tl == nil {
		tl = tracelog.New(os.Stderr)
	}

	for _, dep := range params.RootDependencies {
		st.addIncompatibility(fromDependencyOfIncompatibility(params.Root, params.RootVersion, dep.Package, dep.R))
	}

	next := params.Root

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if noSol := unitPropagate(st, next, tl, params.Trace); noSol != nil {
			if params.Trace {
				tl.Conflict(0, "solving failed: %s", noSol.terminal)
			}
			return nil, noSol
		}

		if sol, ok := st.ps.extractSolution(); ok {
			if params.Trace {
				tl.Decided(0, "found solution with %d packages", len(sol))
			}
			return sol, nil
		}

		candidates := st.ps.potentialPackages()
		if len(candidates) == 0 {
			return nil, errors.New("pubgrub: no potential packages but solution incomplete")
		}

		pkg, version, found, err := params.Oracle.ChoosePackageVersion(ctx, candidates)
		if err != nil {
			return nil, wrapChoosingVersion(pkg, err)
		}
		if !found {
			r := rangeForCandidate(candidates, pkg)
			st.addIncompatibility(noVersionsIncompatibility(pkg, r))
			if params.Trace {
				tl.Conflict(0, "no versions of %s match %s", pkg, r)
			}
			next = pkg
			continue
		}

		deps, err := params.Oracle.GetDependencies(ctx, pkg, version)
		if err != nil {
			if errors.Is(err, ErrDependenciesUnavailable) {
				st.addIncompatibility(unavailableDependenciesIncompatibility(pkg, Exact(version)))
				if params.Trace {
					tl.Conflict(0, "dependencies of %s %s unavailable: %s", pkg, version, err)
				}
				next = pkg
				continue
			}
			return nil, wrapRetrievingDependencies(pkg, version, err)
		}

		// A dependency incompatibility the partial solution already
		// satisfies means this version conflicts as it stands: no decision
		// is made, and propagation on pkg resolves the conflict.
		depConflict := false
		for _, dep := range deps {
			ic := st.addIncompatibility(fromDependencyOfIncompatibility(pkg, version, dep.Package, dep.R))
			if rel, _ := ic.relation(st.ps); rel == relSatisfied {
				depConflict = true
			}
		}

		if !depConflict {
			st.ps.addDecision(pkg, version)
			if params.Trace {
				tl.Decided(st.ps.level, "select %s %s", pkg, version)
			}
		}
		next = pkg
	}
}

func rangeForCandidate(candidates []PotentialPackage, pkg PackageID) Range {
	for _, c := range candidates {
		if c.Package == pkg {
			return c.Range
		}
	}
	return Any()
}

// unitPropagate repeatedly checks every live incompatibility mentioning a
// recently changed package against the partial solution, deriving new
// assignments (AlmostSatisfied) or resolving conflicts (Satisfied), until
// nothing changes or a conflict resolves all the way to the terminal
// incompatibility.
func unitPropagate(st *state, start PackageID, tl *tracelog.Logger, trace bool) *NoSolutionError {
	changed := []PackageID{start}

outer:
	for len(changed) > 0 {
		pkg := changed[0]
		changed = changed[1:]

		for _, id := range st.store.liveNewestFirst() {
			ic := st.store.get(id)
			if _, mentioned := ic.Get(pkg); !mentioned {
				continue
			}

			rel, almostPkg := ic.relation(st.ps)
			switch rel {
			case relSatisfied:
				newIC, backtrackLevel, causePkg, terminal := resolveConflict(st, ic, tl, trace)
				if terminal {
					return &NoSolutionError{terminal: newIC, store: st.store}
				}
				st.ps.backtrack(backtrackLevel)
				st.ps.addDerivation(causePkg, newIC)
				if trace {
					tl.Backtrack(backtrackLevel, "backtrack to level %d, derive %s from %s", backtrackLevel, causePkg, newIC)
				}
				changed = []PackageID{causePkg}
				continue outer
			case relAlmostSatisfied:
				st.ps.addDerivation(almostPkg, ic)
				changed = append(changed, almostPkg)
			case relContradicted, relInconclusive:
				// nothing to do
			}
		}
	}

	return nil
}

// resolveConflict repeatedly applies the rule of resolution to ic until
// either it is terminal (no solution exists) or it identifies a safe
// backtrack target: the decision level to unwind to, and the package that
// should receive a new derivation from the resulting incompatibility. Every
// incompatibility it learns is stored; only the one it returns joins the
// live set.
func resolveConflict(st *state, start *Incompatibility, tl *tracelog.Logger, trace bool) (ic *Incompatibility, backtrackLevel int, pkg PackageID, terminal bool) {
	ic = start
	changed := false

	for {
		if ic.isTerminal(st.root) {
			return ic, 0, "", true
		}

		satIdx, ok := findSatisfier(ic, st.ps.log)
		if !ok {
			// ic was classified Satisfied against the current partial
			// solution, so a satisfier must exist; treat its absence as
			// equivalent to a terminal failure rather than panicking.
			return ic, 0, "", true
		}
		satAssign := st.ps.log[satIdx]
		prevLevel := findPreviousSatisfierLevel(ic, st.ps.log, satIdx)

		if prevLevel < satAssign.level || satAssign.kind == kindDecision {
			if changed {
				st.store.live = append(st.store.live, ic.id)
			}
			return ic, prevLevel, satAssign.pkg, false
		}

		if trace {
			tl.Logf(0, "! %s and %s", ic, satAssign.cause)
		}

		ic = priorCause(ic, satAssign.cause, satAssign.pkg)
		ic.id = len(st.store.all)
		st.store.all = append(st.store.all, ic)
		changed = true
	}
}
