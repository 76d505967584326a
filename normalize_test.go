// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licensecheck

import (
	"strings"
	"testing"

	"go.astrophena.name/licensecheck/testutil"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in      string
		markers []string
		want    []string
	}{
		"empty": {
			in:      "",
			markers: []string{"#"},
			want:    nil,
		},
		"plain lines are trimmed": {
			in:      "  hello  \n\tworld\t\n",
			markers: []string{"#"},
			want:    []string{"hello", "world"},
		},
		"comment markers are stripped from both ends": {
			in:      "# hello #\n## world\n",
			markers: []string{"#"},
			want:    []string{"hello", "world"},
		},
		"blank lines are dropped": {
			in:      "# a\n\n   \n# b\n",
			markers: []string{"#"},
			want:    []string{"a", "b"},
		},
		"shebang is dropped": {
			in:      "#!/usr/bin/env python3\n# Copyright 2025 Acme\n",
			markers: []string{"#"},
			want:    []string{"Copyright 2025 Acme"},
		},
		"marker-only lines become empty and are dropped": {
			in:      "#\n# text\n#\n",
			markers: []string{"#"},
			want:    []string{"text"},
		},
		"slash markers": {
			in:      "// Copyright 2025 Acme\n// Licensed under X.\n",
			markers: []string{"//"},
			want:    []string{"Copyright 2025 Acme", "Licensed under X."},
		},
		"multiple markers": {
			in:      "# a\n// b\n",
			markers: []string{"#", "//"},
			want:    []string{"a", "b"},
		},
		"no markers leaves text intact": {
			in:      "Copyright {year} Acme\n\nLicensed under X.\n",
			markers: nil,
			want:    []string{"Copyright {year} Acme", "Licensed under X."},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := NormalizeText(tc.in, tc.markers)
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"# hello #\n## world\n",
		"#!/bin/sh\n# a\n\n# b\n",
		"\t# padded\t\n   \n",
		"plain\ntext\n",
	}

	for _, in := range inputs {
		markers := []string{"#"}
		once := NormalizeText(in, markers)
		twice := NormalizeText(strings.Join(once, "\n"), markers)
		testutil.AssertEqual(t, twice, once)
	}
}
