// Package offline provides a DependencyOracle backed entirely by in-memory
// data, for tests, fixtures, and any caller that already has the full
// package graph available and has no need to hit a real registry. It plays
// the same role here that InMemorySource plays alongside the registry- and
// VCS-backed sources in the wider dependency-solving ecosystem this package
// draws from.
package offline

import (
	"context"
	"sort"

	"github.com/tranzystorek-io/pubgrub"
)

// versionEntry is one known (version, dependencies) pair for a package.
type versionEntry struct {
	version pubgrub.Version
	deps    []pubgrub.Dependency
}

// Provider is an in-memory pubgrub.DependencyOracle. The zero value is not
// usable; construct one with New.
type Provider struct {
	packages map[pubgrub.PackageID][]versionEntry
}

// New returns an empty Provider.
func New() *Provider {
	return &Provider{packages: make(map[pubgrub.PackageID][]versionEntry)}
}

// AddPackageVersion registers a version of pkg with the dependencies it
// requires. Calling it again for the same (pkg, version) pair replaces the
// previous dependency list.
func (p *Provider) AddPackageVersion(pkg pubgrub.PackageID, version pubgrub.Version, deps []pubgrub.Dependency) {
	entries := p.packages[pkg]
	for i, e := range entries {
		if versionEqual(e.version, version) {
			entries[i].deps = deps
			return
		}
	}
	p.packages[pkg] = append(entries, versionEntry{version: version, deps: deps})
}

func versionEqual(a, b pubgrub.Version) bool {
	return a.Compare(b) == 0
}

// ChoosePackageVersion implements pubgrub.DependencyOracle with a
// prefer-newest policy: among candidates, it resolves the package with the
// fewest matching versions first (the standard heuristic for failing fast),
// and picks the newest version of that package satisfying its range.
func (p *Provider) ChoosePackageVersion(_ context.Context, candidates []pubgrub.PotentialPackage) (pubgrub.PackageID, pubgrub.Version, bool, error) {
	if len(candidates) == 0 {
		return "", nil, false, nil
	}

	best := candidates[0]
	bestCount := p.matchCount(best)
	for _, c := range candidates[1:] {
		n := p.matchCount(c)
		if n < bestCount {
			best, bestCount = c, n
		}
	}

	versions := p.sortedVersions(best.Package)
	for i := len(versions) - 1; i >= 0; i-- {
		if best.Range.Contains(versions[i].version) {
			return best.Package, versions[i].version, true, nil
		}
	}
	return best.Package, nil, false, nil
}

func (p *Provider) matchCount(pp pubgrub.PotentialPackage) int {
	n := 0
	for _, e := range p.packages[pp.Package] {
		if pp.Range.Contains(e.version) {
			n++
		}
	}
	return n
}

func (p *Provider) sortedVersions(pkg pubgrub.PackageID) []versionEntry {
	entries := append([]versionEntry(nil), p.packages[pkg]...)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].version.Compare(entries[j].version) < 0
	})
	return entries
}

// GetDependencies implements pubgrub.DependencyOracle.
func (p *Provider) GetDependencies(_ context.Context, pkg pubgrub.PackageID, version pubgrub.Version) ([]pubgrub.Dependency, error) {
	for _, e := range p.packages[pkg] {
		if versionEqual(e.version, version) {
			return e.deps, nil
		}
	}
	return nil, nil
}
