package blob

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const (
	blobPkg      = "staffdir/internal/blob"
	infraBlobPkg = "staffdir/internal/infra/blob"
	infraPkg     = "staffdir/internal/infra"
	seedPkg      = "staffdir/internal/seed"
	seedInfraPkg = "staffdir/internal/infra/seed"
	domainPkg    = "staffdir/pkg/domain"
)

func under(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// layerRule forbids importers matched by from from importing anything matched by deny.
type layerRule struct {
	name string
	from func(pkg string) bool
	deny func(imp string) bool
}

var storeLayering = []layerRule{
	{
		name: "backends are reached through the blob facade",
		from: func(pkg string) bool { return pkg != blobPkg && !under(pkg, infraBlobPkg) },
		deny: func(imp string) bool { return under(imp, infraBlobPkg) },
	},
	{
		name: "backends depend on blob/core, never on the facade",
		from: func(pkg string) bool { return under(pkg, infraBlobPkg) },
		deny: func(imp string) bool { return imp == blobPkg },
	},
	{
		name: "roster documents reach stores only through blob.Store",
		from: func(pkg string) bool { return pkg == seedPkg },
		deny: func(imp string) bool { return under(imp, infraPkg) },
	},
	{
		name: "seed drivers stay independent of blob storage",
		from: func(pkg string) bool { return under(pkg, seedInfraPkg) },
		deny: func(imp string) bool { return under(imp, blobPkg) || under(imp, infraBlobPkg) },
	},
	{
		name: "domain model knows nothing about storage",
		from: func(pkg string) bool { return under(pkg, domainPkg) },
		deny: func(imp string) bool { return under(imp, blobPkg) || under(imp, infraPkg) },
	},
}

func TestStoreLayering(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "staffdir/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	for _, rule := range storeLayering {
		t.Run(rule.name, func(t *testing.T) {
			violations := layerViolations(pkgs, rule)
			for _, v := range violations {
				t.Errorf("forbidden import: %s", v)
			}
		})
	}
}

func TestStoreLayeringRulesMatch(t *testing.T) {
	pkgs := []*packages.Package{
		fakePackage(seedPkg, blobPkg, infraBlobPkg+"/memory"),
		fakePackage(blobPkg, infraBlobPkg+"/fs"),
	}
	got := layerViolations(pkgs, storeLayering[0])
	if len(got) != 1 || got[0] != seedPkg+": "+infraBlobPkg+"/memory" {
		t.Fatalf("facade rule: %v", got)
	}
	got = layerViolations(pkgs, storeLayering[2])
	if len(got) != 1 {
		t.Fatalf("seed rule: %v", got)
	}
}

func fakePackage(path string, imports ...string) *packages.Package {
	pkg := &packages.Package{PkgPath: path, Imports: make(map[string]*packages.Package)}
	for _, imp := range imports {
		pkg.Imports[imp] = &packages.Package{PkgPath: imp}
	}
	return pkg
}

func layerViolations(pkgs []*packages.Package, rule layerRule) []string {
	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		path := strings.TrimSuffix(pkg.PkgPath, "_test")
		if !rule.from(path) {
			continue
		}
		for imp := range pkg.Imports {
			if rule.deny(imp) {
				seen[path+": "+imp] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
