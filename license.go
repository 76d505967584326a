// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licensecheck

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LicensePath returns the absolute path of the license file.
func (c *Checker) LicensePath() string {
	return filepath.Join(c.root, c.cfg.LicenseFile)
}

// CheckLicenseFile reports whether the license file contains the rendered
// copyright notice.
//
// The whole file body is normalized (no comment markers apply inside a
// license file, so only blank lines and surrounding whitespace go away) and
// the notice must appear in it as a contiguous substring: license files
// embed the notice among other boilerplate, so a positional comparison would
// be wrong here. A missing file is a plain false, not an error.
func (c *Checker) CheckLicenseFile() (bool, error) {
	data, err := os.ReadFile(c.LicensePath())
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	body := strings.Join(NormalizeText(string(data), nil), "\n")
	notice := strings.Join(c.template, "\n")
	return strings.Contains(body, notice), nil
}
