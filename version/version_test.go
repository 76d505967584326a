// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package version

import (
	"strings"
	"testing"

	"go.astrophena.name/licensecheck/testutil"
)

func TestInfoString(t *testing.T) {
	t.Parallel()

	i := Info{Name: "licensecheck", Version: "v1.2.3", Commit: "deadbeef"}
	s := i.String()
	if !strings.HasPrefix(s, "licensecheck v1.2.3 (deadbeef)\nbuilt with ") {
		t.Fatalf("unexpected version string: %q", s)
	}

	// No commit, no parentheses.
	i.Commit = ""
	if strings.Contains(i.String(), "(") {
		t.Fatalf("version string must not mention a commit: %q", i.String())
	}
}

func TestVersionIsCached(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, Version(), Version())
}
