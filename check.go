// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licensecheck

import (
	"regexp"
	"strconv"
	"time"
)

// Status is the verdict for a single file.
type Status int

const (
	// StatusPass means the file's header matches the template.
	StatusPass Status = iota
	// StatusFail means the header is missing, truncated, mismatched or
	// carries a stale year.
	StatusFail
	// StatusBinary means the file could not be decoded as text. Such files
	// are not judged: they belong in neither the passed nor the failed set.
	StatusBinary
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	case StatusBinary:
		return "binary"
	}
	return "unknown"
}

// CheckFile verifies the license header of a single file.
func (c *Checker) CheckFile(path string) (Status, error) {
	header, binary, err := readHeader(path, c.cfg.CommentMarkers)
	if err != nil {
		return StatusFail, err
	}
	if binary {
		return StatusBinary, nil
	}
	if c.matchHeader(header) {
		return StatusPass, nil
	}
	return StatusFail, nil
}

// matchHeader compares normalized header lines against the template,
// position by position. The header may be longer than the template; trailing
// lines are never inspected.
func (c *Checker) matchHeader(header []string) bool {
	if len(header) < len(c.template) {
		return false
	}
	for i, want := range c.template {
		re, hasYear := c.years[i]
		if !hasYear {
			if header[i] != want {
				return false
			}
			continue
		}
		m := re.FindStringSubmatch(header[i])
		if m == nil {
			return false
		}
		for _, token := range m[1:] {
			if !ValidYearToken(token, c.now()) {
				return false
			}
		}
	}
	return true
}

var yearRangeRE = regexp.MustCompile(`^(\d+) - (\d+)`)

// ValidYearToken reports whether a year token is current as of now.
//
// A token of digits only must equal the current year. Otherwise the token
// must start with a "Y1 - Y2" range where Y2 is strictly greater than Y1 and
// equals the current year. Everything else is invalid.
func ValidYearToken(token string, now time.Time) bool {
	current := strconv.Itoa(now.Year())

	if isDigits(token) {
		return token == current
	}

	m := yearRangeRE.FindStringSubmatch(token)
	if m == nil {
		return false
	}
	y1, err1 := strconv.Atoi(m[1])
	y2, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return false
	}
	if y2 <= y1 {
		return false
	}
	return m[2] == current
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
