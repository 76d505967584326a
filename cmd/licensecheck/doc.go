// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Licensecheck verifies that source files carry an up-to-date license header
and that the LICENSE file's copyright notice is current.

Usage:

	licensecheck [flags...] [dir]

It walks the target directory (the current directory by default), extracts
the leading comment block of every file that is not excluded, and compares
it against the expected header template. The template's {year} placeholder
accepts a single year equal to the current calendar year, or a range like
"2021 - 2025" whose upper bound is the current year. Binary files are
skipped without a verdict. The exit status is zero only if every file and
the LICENSE file pass.

The tool is configured through an optional .licensecheck.txtar file in the
target directory (overridable with the -config flag). This file is a txtar
archive and can contain the following files:

  - template: The expected license header text, with the {year} and
    {author} placeholders.
  - author: The author substituted for {author}.
  - exclusions.json: A JSON object with "paths", "suffixes" and "patterns"
    arrays; each non-null array replaces the corresponding default
    exclusion list. Paths listed here must exist under the target
    directory.
  - comment_chars.json: A JSON array of comment marker strings.

With -fix, the expected header (rendered with the current year) is
prepended to every failing file.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/licensecheck/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
