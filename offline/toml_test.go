package offline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tranzystorek-io/pubgrub"
)

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.toml")

	const fixture = `
[[package]]
name = "foo"
version = "1.0.0"

  [[package.dependency]]
  name = "bar"
  range = ">=1.0.0 <2.0.0"

[[package]]
name = "bar"
version = "1.5.0"
`
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New()
	if err := p.LoadTOML(path); err != nil {
		t.Fatal(err)
	}

	deps, err := p.GetDependencies(context.Background(), "foo", mustVersion(t, p, "foo"))
	if err != nil {
		t.Fatal(err)
	}
	if len(deps) != 1 || deps[0].Package != "bar" {
		t.Fatalf("unexpected dependencies loaded from fixture: %+v", deps)
	}
}

func mustVersion(t *testing.T, p *Provider, pkg pubgrub.PackageID) pubgrub.Version {
	t.Helper()
	versions := p.sortedVersions(pkg)
	if len(versions) == 0 {
		t.Fatalf("no versions loaded for %s", pkg)
	}
	return versions[0].version
}
