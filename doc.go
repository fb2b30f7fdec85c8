// Package pubgrub implements PubGrub, a conflict-driven clause-learning
// (CDCL-style) version solving algorithm. Given a root package and version
// plus a caller-supplied dependency oracle, Solve either returns a complete
// assignment of one concrete version to every transitively required package,
// or fails with an error that carries a derivation tree explaining why no
// such assignment exists.
//
// The package is organized, leaf components first, as:
//
//   - Range: an ordered-segment encoding of a set of versions, with the
//     algebraic operations (intersection, union, negation) the solver needs.
//   - Term: a positive or negative assertion of a Range against one package,
//     with a three-valued relation between terms and the subset tests that
//     unit propagation uses.
//   - Incompatibility: a conjunction of per-package terms that can never all
//     hold at once, stored in an append-only, id-addressed store.
//   - partialSolution: the backtrackable log of decisions and derivations
//     the driver accumulates while solving.
//   - Solve / SolveContext: the outer loop tying the above together with a
//     DependencyOracle.
//
// Human-readable failure reports are written by NoSolutionError.WriteReport
// in this package. Concrete Version implementations and dependency sources
// live in the semverver and offline packages; this package depends on
// neither of them.
package pubgrub
