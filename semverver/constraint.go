package semverver

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/tranzystorek-io/pubgrub"
)

// ParseConstraint translates a semver constraint string into a
// pubgrub.Range. It understands the common node-semver-style operators
// (exact versions, >, >=, <, <=, ^, ~), comma- or space-separated clauses
// ANDed together, and "||"-separated clauses ORed together. It does not lean
// on semver.Constraints' own matching logic, since that answers
// Matches(version) yes/no questions rather than producing the interval
// algebra pubgrub.Range needs; instead each comparator is translated
// directly into the half-open interval it denotes.
func ParseConstraint(s string) (pubgrub.Range, error) {
	orClauses := strings.Split(s, "||")

	result := pubgrub.None()
	for _, clause := range orClauses {
		r, err := parseAndClause(clause)
		if err != nil {
			return pubgrub.Range{}, err
		}
		result = result.Union(r)
	}
	return result, nil
}

func parseAndClause(clause string) (pubgrub.Range, error) {
	fields := strings.Fields(strings.ReplaceAll(clause, ",", " "))
	if len(fields) == 0 {
		return pubgrub.Any(), nil
	}

	result := pubgrub.Any()
	for _, f := range fields {
		r, err := parseComparator(f)
		if err != nil {
			return pubgrub.Range{}, err
		}
		result = result.Intersection(r)
	}
	return result, nil
}

func parseComparator(c string) (pubgrub.Range, error) {
	switch {
	case strings.HasPrefix(c, ">="):
		v, err := New(c[2:])
		if err != nil {
			return pubgrub.Range{}, err
		}
		return pubgrub.HigherThan(v), nil
	case strings.HasPrefix(c, ">"):
		v, err := New(c[1:])
		if err != nil {
			return pubgrub.Range{}, err
		}
		return pubgrub.HigherThan(v.Bump()), nil
	case strings.HasPrefix(c, "<="):
		v, err := New(c[2:])
		if err != nil {
			return pubgrub.Range{}, err
		}
		return pubgrub.StrictlyLowerThan(v.Bump()), nil
	case strings.HasPrefix(c, "<"):
		v, err := New(c[1:])
		if err != nil {
			return pubgrub.Range{}, err
		}
		return pubgrub.StrictlyLowerThan(v), nil
	case strings.HasPrefix(c, "^"):
		return caretRange(c[1:])
	case strings.HasPrefix(c, "~"):
		return tildeRange(c[1:])
	case c == "*" || c == "":
		return pubgrub.Any(), nil
	default:
		v, err := New(c)
		if err != nil {
			return pubgrub.Range{}, err
		}
		return pubgrub.Exact(v), nil
	}
}

// caretRange implements npm-style ^: allows changes that do not modify the
// left-most nonzero component of the version.
func caretRange(s string) (pubgrub.Range, error) {
	lo, err := New(s)
	if err != nil {
		return pubgrub.Range{}, err
	}

	var hi *semver.Version
	switch {
	case lo.v.Major() > 0:
		hi = bumpMajor(lo.v)
	case lo.v.Minor() > 0:
		hi = bumpMinor(lo.v)
	default:
		hi = bumpPatch(lo.v)
	}

	return pubgrub.Between(lo, Version{v: hi}), nil
}

// tildeRange implements npm-style ~: allows patch-level changes if a minor
// version is specified, or minor-level changes if only a major version is
// specified.
func tildeRange(s string) (pubgrub.Range, error) {
	lo, err := New(s)
	if err != nil {
		return pubgrub.Range{}, err
	}

	parts := strings.Split(s, ".")
	var hi *semver.Version
	if len(parts) >= 2 {
		hi = bumpMinor(lo.v)
	} else {
		hi = bumpMajor(lo.v)
	}

	return pubgrub.Between(lo, Version{v: hi}), nil
}
