// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version provides information about the running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"go.astrophena.name/licensecheck/syncx"
)

// Info contains the version information of the running binary.
type Info struct {
	// Name is the binary name.
	Name string
	// Version is the module version, or "devel" if unknown.
	Version string
	// Commit is the VCS revision the binary was built from, if recorded.
	Commit string
}

// String implements fmt.Stringer.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", i.Name, i.Version)
	if i.Commit != "" {
		fmt.Fprintf(&sb, " (%s)", i.Commit)
	}
	fmt.Fprintf(&sb, "\nbuilt with %s for %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return sb.String()
}

var info syncx.Lazy[Info]

// Version returns the version information of the running binary.
func Version() Info {
	return info.Get(func() Info {
		i := Info{
			Name:    CmdName(),
			Version: "devel",
		}
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return i
		}
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			i.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				i.Commit = s.Value
			}
		}
		return i
	})
}

// CmdName returns the base name of the running binary.
func CmdName() string {
	exe, err := os.Executable()
	if err != nil {
		return "(unknown)"
	}
	return strings.TrimSuffix(filepath.Base(exe), ".exe")
}
