// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licensecheck

import (
	"bytes"
	"os"
	"strconv"
	"strings"
)

// Header returns the expected license header for the current year, with each
// line commented using the first configured marker.
func (c *Checker) Header() string {
	rendered := strings.ReplaceAll(c.cfg.Template, authorToken, c.cfg.Author)
	rendered = strings.ReplaceAll(rendered, yearToken, strconv.Itoa(c.now().Year()))

	marker := "#"
	if len(c.cfg.CommentMarkers) > 0 {
		marker = c.cfg.CommentMarkers[0]
	}

	var sb strings.Builder
	for line := range strings.SplitSeq(strings.TrimRight(rendered, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			sb.WriteString(marker + "\n")
			continue
		}
		sb.WriteString(marker + " " + line + "\n")
	}
	return sb.String()
}

// Fix prepends the expected license header to the file at path, keeping a
// shebang line first and preserving the file mode.
func (c *Checker) Fix(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	rest := content
	if bytes.HasPrefix(content, []byte("#!")) {
		i := bytes.IndexByte(content, '\n')
		if i < 0 {
			i = len(content) - 1
		}
		buf.Write(content[:i+1])
		buf.WriteString("\n")
		rest = content[i+1:]
	}
	buf.WriteString(c.Header())
	buf.WriteString("\n")
	buf.Write(rest)

	return os.WriteFile(path, buf.Bytes(), info.Mode().Perm())
}
