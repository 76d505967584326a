// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licensecheck

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// readHeader reads the leading block of comment and blank lines from the
// file at path and returns it normalized.
//
// binary is true when the header window contains a NUL byte or invalid
// UTF-8; such files cannot be judged and must be skipped. Any other failure
// to open or read the file is returned as err: an unreadable regular file
// usually means a misconfigured run and must not be silently dropped.
func readHeader(path string, markers []string) (lines []string, binary bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	// Lines can be arbitrarily long, so read with bufio.Reader instead of a
	// capped Scanner.
	r := bufio.NewReader(f)
	var block strings.Builder
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if strings.IndexByte(line, 0) >= 0 || !utf8.ValidString(line) {
				return nil, true, nil
			}
			if strings.TrimSpace(line) != "" && !isCommentLine(line, markers) {
				break
			}
			block.WriteString(line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, err
		}
	}

	return NormalizeText(block.String(), markers), false, nil
}
