// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licensecheck

import "strings"

// NormalizeText reduces text to its canonical line sequence: lines are
// trimmed of surrounding whitespace and of leading and trailing comment
// marker characters, shebang lines and lines that end up empty are dropped.
//
// The markers are treated as cutsets, so "//" and "#" both work as expected.
// NormalizeText is pure and idempotent.
func NormalizeText(text string, markers []string) []string {
	var lines []string
	for line := range strings.SplitSeq(text, "\n") {
		s := strings.TrimSpace(line)
		if strings.HasPrefix(s, "#!") {
			continue
		}
		for _, m := range markers {
			s = strings.Trim(s, m)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		lines = append(lines, s)
	}
	return lines
}

// isCommentLine reports whether line, after left-trimming, starts with one of
// the comment markers.
func isCommentLine(line string, markers []string) bool {
	s := strings.TrimSpace(line)
	for _, m := range markers {
		if strings.HasPrefix(s, m) {
			return true
		}
	}
	return false
}
