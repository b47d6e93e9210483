package core

import (
	"testing"

	"staffdir/testutil"
)

func TestCoreDoesNotDependOnViews(t *testing.T) {
	testutil.AssertNoTransitiveDependency(t, "staffdir/internal/core", testutil.AdapterImport, "views depend on the core, never the reverse")
}
