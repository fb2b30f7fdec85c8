package pubgrub

// Version is a totally ordered value the solver can reason about without
// knowing its concrete representation. Implementations are supplied by
// collaborators outside this package (see the semverver package for one
// backed by github.com/Masterminds/semver/v3).
type Version interface {
	// Compare returns a negative number, zero, or a positive number as v
	// sorts before, equal to, or after other.
	Compare(other Version) int

	// Bump returns the next representable version strictly greater than v,
	// with nothing else comparing in between. It is used to encode the
	// half-open exact interval [v, Bump(v)).
	Bump() Version

	String() string
}

func versionEqual(a, b Version) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Compare(b) == 0
}

func versionLess(a, b Version) bool {
	return a.Compare(b) < 0
}
