package httpapi

import (
	"testing"

	"staffdir/testutil"
)

func TestHTTPAPIReachesStorageThroughCore(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InfraImport, "views edit through core.Service")
}
