package pubgrub

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// NoSolutionError is returned by Solve when the driver derives the terminal
// incompatibility: no assignment of versions to packages can satisfy every
// constraint. It carries the derivation tree rooted at the terminal
// incompatibility so callers can render a human-readable explanation
// without re-running the solve.
type NoSolutionError struct {
	terminal *Incompatibility
	store    *store
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("no solution: %s", e.terminal.String())
}

// DerivationTree returns the root of the proof that no solution exists.
func (e *NoSolutionError) DerivationTree() *DerivationNode {
	return buildDerivationTree(e.store, e.terminal.id)
}

// WriteReport writes a human-readable explanation of the failure to w, in
// the style of writeReport in the reference reporter.
func (e *NoSolutionError) WriteReport(w io.Writer) error {
	return writeReport(w, e.DerivationTree())
}

// ErrDependenciesUnavailable is a sentinel a DependencyOracle's
// GetDependencies implementation can wrap and return to tell the solver
// that this particular package version has no usable dependency
// information, without aborting the solve: the driver records it as a
// KindUnavailableDependencies incompatibility and moves on to try a
// different version or package, the same way it reacts to a version simply
// not existing. Any other error is treated as fatal and returned wrapped in
// an ErrorRetrievingDependencies.
var ErrDependenciesUnavailable = errors.New("dependencies unavailable")

// ErrorRetrievingDependencies wraps a failure from a DependencyOracle's
// GetDependencies call, attributing it to the package and version being
// queried.
type ErrorRetrievingDependencies struct {
	Package PackageID
	Version Version
	Err     error
}

func (e *ErrorRetrievingDependencies) Error() string {
	return fmt.Sprintf("retrieving dependencies of %s %s: %s", e.Package, e.Version, e.Err)
}

func (e *ErrorRetrievingDependencies) Unwrap() error { return e.Err }

func wrapRetrievingDependencies(pkg PackageID, version Version, err error) error {
	return &ErrorRetrievingDependencies{
		Package: pkg,
		Version: version,
		Err:     errors.Wrap(err, "dependency oracle"),
	}
}

// ErrorChoosingVersion wraps a failure from a DependencyOracle's
// ChoosePackageVersion call.
type ErrorChoosingVersion struct {
	Package PackageID
	Err     error
}

func (e *ErrorChoosingVersion) Error() string {
	return fmt.Sprintf("choosing a version for %s: %s", e.Package, e.Err)
}

func (e *ErrorChoosingVersion) Unwrap() error { return e.Err }

func wrapChoosingVersion(pkg PackageID, err error) error {
	return &ErrorChoosingVersion{
		Package: pkg,
		Err:     errors.Wrap(err, "dependency oracle"),
	}
}
