// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package licensecheck verifies that source files carry an up-to-date
// license header and that a LICENSE file's copyright notice is current.
//
// A header is the leading block of comment and blank lines at the start of a
// file. It is compared, after normalization, line by line against a template
// that may contain the {year} and {author} placeholders. The {author} token
// is substituted once per run; the {year} token matches either a single year
// equal to the current calendar year or a range whose upper bound is the
// current year.
package licensecheck

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Placeholder tokens recognized in header templates.
const (
	yearToken   = "{year}"
	authorToken = "{author}"
)

// Config describes a single checker run. The zero value of a field means
// "use the default"; construct it with [Default] and override what you need.
type Config struct {
	// Template is the expected license header, containing the {year} and
	// {author} placeholders.
	Template string
	// Author replaces every occurrence of {author} in the template.
	Author string
	// CommentMarkers are the character sets that introduce a comment line.
	CommentMarkers []string
	// ExcludePaths are paths relative to the root whose files are skipped,
	// including everything nested under them.
	ExcludePaths []string
	// ExcludeSuffixes skip any file whose path ends with one of them.
	ExcludeSuffixes []string
	// ExcludePatterns are regular expressions matched against the start of
	// the absolute file path; matching files are skipped.
	ExcludePatterns []string
	// LicenseFile is the name of the license file, relative to the root.
	LicenseFile string
	// Now reports the current time. Overridable for testing.
	Now func() time.Time
}

// Default returns the default configuration: an Apache 2.0 copyright notice
// template, hash comment markers and exclusions covering common
// non-source files. The author is intentionally empty and must be set by
// the caller.
func Default() Config {
	return Config{
		Template: `Copyright {year} {author}

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.`,
		CommentMarkers: []string{"#"},
		ExcludePaths: []string{
			".git",
			".github",
			".vscode",
			"build",
			"dist",
			"docs",
			"node_modules",
			"testdata",
			"vendor",
			"LICENSE", // checked separately, not for a header
			".gitignore",
			".editorconfig",
		},
		ExcludeSuffixes: []string{
			"json", "yaml", "yml", "md", "html", "xml",
			"mod", "sum", "lock", "txtar", "golden",
		},
		ExcludePatterns: []string{`.*\.git.*`},
		LicenseFile:     "LICENSE",
	}
}

// Checker validates license headers under a single root directory.
// It is immutable after construction and safe for concurrent use.
type Checker struct {
	root     string
	cfg      Config
	template []string               // rendered, normalized template lines
	years    map[int]*regexp.Regexp // template line index -> year pattern

	excludePaths    []string // absolute
	excludePatterns []*regexp.Regexp

	now func() time.Time
}

// New returns a Checker for the tree rooted at root.
//
// It renders and normalizes the template, compiles the year-matching
// patterns and the exclusion regexps once, and resolves exclusion paths
// against the absolute root. A malformed exclusion pattern or a template
// that needs an author when none is configured is a fatal configuration
// error.
func New(root string, cfg Config) (*Checker, error) {
	def := Default()
	if cfg.Template == "" {
		cfg.Template = def.Template
	}
	if cfg.CommentMarkers == nil {
		cfg.CommentMarkers = def.CommentMarkers
	}
	if cfg.ExcludePaths == nil {
		cfg.ExcludePaths = def.ExcludePaths
	}
	if cfg.ExcludeSuffixes == nil {
		cfg.ExcludeSuffixes = def.ExcludeSuffixes
	}
	if cfg.ExcludePatterns == nil {
		cfg.ExcludePatterns = def.ExcludePatterns
	}
	if cfg.LicenseFile == "" {
		cfg.LicenseFile = def.LicenseFile
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if strings.Contains(cfg.Template, authorToken) && cfg.Author == "" {
		return nil, errors.New("template contains {author}, but no author is configured")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	c := &Checker{
		root:  abs,
		cfg:   cfg,
		years: make(map[int]*regexp.Regexp),
		now:   cfg.Now,
	}

	rendered := strings.ReplaceAll(cfg.Template, authorToken, cfg.Author)
	c.template = NormalizeText(rendered, cfg.CommentMarkers)
	for i, line := range c.template {
		if !strings.Contains(line, yearToken) {
			continue
		}
		re, err := compileYearPattern(line)
		if err != nil {
			return nil, fmt.Errorf("template line %q: %w", line, err)
		}
		c.years[i] = re
	}

	for _, p := range cfg.ExcludePaths {
		c.excludePaths = append(c.excludePaths, filepath.Join(abs, p))
	}
	for _, pat := range cfg.ExcludePatterns {
		// Anchor at the start: exclusion patterns match from the beginning
		// of the path, not anywhere inside it.
		re, err := regexp.Compile("^(?:" + pat + ")")
		if err != nil {
			return nil, fmt.Errorf("exclusion pattern %q: %w", pat, err)
		}
		c.excludePatterns = append(c.excludePatterns, re)
	}

	return c, nil
}

// Root returns the absolute root directory of the checker.
func (c *Checker) Root() string { return c.root }

// compileYearPattern turns a normalized template line containing {year} into
// a pattern that captures the year token. The capture is lazy, so it stops at
// the shortest substring that lets the rest of the line match.
func compileYearPattern(line string) (*regexp.Regexp, error) {
	parts := strings.Split(line, yearToken)
	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	return regexp.Compile("^" + strings.Join(parts, "(.+?)"))
}
