package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestPredicates(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"internal", InternalImport, "staffdir/internal/core", true},
		{"internal", InternalImport, "staffdir/pkg/domain", false},
		{"infra", InfraImport, "staffdir/internal/infra/seed/bolt", true},
		{"infra", InfraImport, "staffdir/internal/blob", false},
		{"adapter", AdapterImport, "staffdir/internal/adapters/console", true},
		{"adapter", AdapterImport, "staffdir/internal/core", false},
		{"thirdparty", ThirdPartyImport, "github.com/gorilla/mux", true},
		{"thirdparty", ThirdPartyImport, "gopkg.in/yaml.v3", true},
		{"thirdparty", ThirdPartyImport, "encoding/json", false},
		{"thirdparty", ThirdPartyImport, "staffdir/pkg/domain", false},
	}
	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Fatalf("%s(%q)=%v want %v", c.name, c.in, got, c.want)
		}
	}
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.go":      "package tmp\nimport (\n\t\"fmt\"\n\t\"staffdir/internal/infra/blob/fs\"\n)\nvar _ = fmt.Sprint\n",
		"b.go":      "package tmp\nimport \"strings\"\nvar _ = strings.ToUpper\n",
		"a_test.go": "package tmp\nimport \"staffdir/internal/infra/seed/bolt\"\n",
	}
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	viols, err := directImportViolations(dir, InfraImport)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || viols[0] != "staffdir/internal/infra/blob/fs (in a.go)" {
		t.Fatalf("unexpected violations %v", viols)
	}
	AssertNoDirectImports(t, dir, AdapterImport, "none")
}

type recordingFatal struct{ msg string }

func (r *recordingFatal) Fatalf(format string, args ...any) { r.msg = fmt.Sprintf(format, args...) }

func TestFailIfViolations(t *testing.T) {
	var r recordingFatal
	failIfViolations(&r, "direct imports", "layering", nil)
	if r.msg != "" {
		t.Fatalf("unexpected failure %q", r.msg)
	}
	failIfViolations(&r, "direct imports", "layering", []string{"x", "y"})
	if r.msg != "forbidden direct imports detected (layering):\nx\ny" {
		t.Fatalf("unexpected message %q", r.msg)
	}
}

func TestAssertNoTransitiveDependency(t *testing.T) {
	AssertNoTransitiveDependency(t, "staffdir/testutil", AdapterImport, "none")
}
