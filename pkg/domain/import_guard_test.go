package domain_test

import (
	"testing"

	"staffdir/testutil"
)

func TestDomainStaysDependencyFree(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImport, "domain types must not reach into internal packages")
	testutil.AssertNoTransitiveDependency(t, "staffdir/pkg/domain", testutil.ThirdPartyImport, "domain types use the standard library only")
}
