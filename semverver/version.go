// Package semverver supplies the concrete pubgrub.Version implementation
// backed by github.com/Masterminds/semver/v3, the way the reference
// codebase layers its own NewSemverConstraint and semVersion on top of the
// same library rather than hand-rolling version comparison.
package semverver

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/tranzystorek-io/pubgrub"
)

// Version wraps a semantic version.
type Version struct {
	v *semver.Version
}

// New parses s as a semantic version.
func New(s string) (Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("semverver: parsing %q: %w", s, err)
	}
	return Version{v: v}, nil
}

// MustNew is like New but panics on a parse error, for use with version
// literals known at compile time (tests, fixtures).
func MustNew(s string) Version {
	v, err := New(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare implements pubgrub.Version.
func (v Version) Compare(other pubgrub.Version) int {
	o := other.(Version)
	return v.v.Compare(o.v)
}

// Bump implements pubgrub.Version by returning the next patch release,
// which is also the implicit granularity every Range built by
// ParseConstraint assumes: an exclusive upper bound of x is represented as
// [x's predecessor's Bump(), x).
func (v Version) Bump() pubgrub.Version {
	return Version{v: bumpPatch(v.v)}
}

func bumpPatch(v *semver.Version) *semver.Version {
	next := v.IncPatch()
	return &next
}

func bumpMinor(v *semver.Version) *semver.Version {
	next := v.IncMinor()
	return &next
}

func bumpMajor(v *semver.Version) *semver.Version {
	next := v.IncMajor()
	return &next
}

// String implements pubgrub.Version and fmt.Stringer.
func (v Version) String() string {
	return v.v.String()
}
