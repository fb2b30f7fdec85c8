package offline

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/tranzystorek-io/pubgrub"
	"github.com/tranzystorek-io/pubgrub/semverver"
)

// tomlFixture is the on-disk shape LoadTOML expects:
//
//	[[package]]
//	name = "foo"
//	version = "1.0.0"
//
//	  [[package.dependency]]
//	  name = "bar"
//	  range = ">=1.0.0 <2.0.0"
type tomlFixture struct {
	Package []tomlPackage `toml:"package"`
}

type tomlPackage struct {
	Name       string            `toml:"name"`
	Version    string            `toml:"version"`
	Dependency []tomlDependency `toml:"dependency"`
}

type tomlDependency struct {
	Name  string `toml:"name"`
	Range string `toml:"range"`
}

// LoadTOML reads a fixture file of package versions and dependency ranges,
// parsing versions and ranges with the semverver package, and registers
// them with p via AddPackageVersion.
func (p *Provider) LoadTOML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "offline: reading fixture")
	}

	var fx tomlFixture
	if err := toml.Unmarshal(data, &fx); err != nil {
		return errors.Wrap(err, "offline: parsing fixture")
	}

	for _, pkg := range fx.Package {
		version, err := semverver.New(pkg.Version)
		if err != nil {
			return errors.Wrapf(err, "offline: package %q", pkg.Name)
		}

		deps := make([]pubgrub.Dependency, 0, len(pkg.Dependency))
		for _, d := range pkg.Dependency {
			r, err := semverver.ParseConstraint(d.Range)
			if err != nil {
				return errors.Wrapf(err, "offline: dependency %q of %s %s", d.Name, pkg.Name, pkg.Version)
			}
			deps = append(deps, pubgrub.Dependency{Package: pubgrub.PackageID(d.Name), R: r})
		}

		p.AddPackageVersion(pubgrub.PackageID(pkg.Name), version, deps)
	}

	return nil
}
