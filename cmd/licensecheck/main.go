// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.astrophena.name/licensecheck"
	"go.astrophena.name/licensecheck/cli"
	"go.astrophena.name/licensecheck/logger"
	"go.astrophena.name/licensecheck/txtar"

	"github.com/lmittmann/tint"
)

// configName is the configuration archive looked up in the target directory
// when -config is not given.
const configName = ".licensecheck.txtar"

func main() { cli.Main(new(app)) }

type app struct {
	skipLicense bool
	fix         bool
	verbose     bool
	author      string
	configPath  string

	now func() time.Time // overridden in tests
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.skipLicense, "skip-license", false, "Skip the LICENSE file check.")
	fs.BoolVar(&a.fix, "fix", false, "Prepend the expected header to failing files.")
	fs.BoolVar(&a.verbose, "verbose", false, "Log the verdict for every checked file.")
	fs.StringVar(&a.author, "author", "", "Author substituted for {author} in the header template.")
	fs.StringVar(&a.configPath, "config", "", "Path to the configuration archive (default: "+configName+" in the target directory).")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if len(env.Args) > 1 {
		return fmt.Errorf("%w: expected at most one target directory", cli.ErrInvalidArgs)
	}
	dir := "."
	if len(env.Args) == 1 {
		dir = env.Args[0]
	}

	cfg, err := a.loadConfig(dir)
	if err != nil {
		return err
	}
	if a.now != nil {
		cfg.Now = a.now
	}

	if a.verbose {
		ctx = logger.Put(ctx, newVerboseLogger(env))
	}

	c, err := licensecheck.New(dir, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Working in %q\n\n", dir)

	fmt.Fprintln(env.Stdout, "Checking license headers in files:")
	res, err := c.Scan(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "%d files passed.\n", len(res.Passed))
	punct := "."
	if len(res.Failed) > 0 {
		punct = ":"
	}
	fmt.Fprintf(env.Stdout, "%d files failed%s\n", len(res.Failed), punct)
	for _, path := range res.Failed {
		fmt.Fprintf(env.Stdout, "  - %q\n", path)
	}
	fmt.Fprintln(env.Stdout)

	fixed := a.fix && len(res.Failed) > 0
	if fixed {
		for _, path := range res.Failed {
			if err := c.Fix(filepath.Join(dir, path)); err != nil {
				return err
			}
			fmt.Fprintf(env.Stdout, "Added license header to %q.\n", path)
		}
		fmt.Fprintln(env.Stdout)
	}

	licenseValid := true
	if !a.skipLicense {
		licensePath := filepath.Join(dir, cfg.LicenseFile)
		fmt.Fprintf(env.Stdout, "Checking if license file is up to date: %q\n", licensePath)
		if _, err := os.Stat(licensePath); errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(env.Stdout, "Could not find license file %q.\n\n", licensePath)
			licenseValid = false
		} else {
			licenseValid, err = c.CheckLicenseFile()
			if err != nil {
				return err
			}
			not := ""
			if !licenseValid {
				not = "not "
			}
			fmt.Fprintf(env.Stdout, "Copyright notice in license file is %sup to date.\n\n", not)
		}
	}

	if (len(res.Failed) > 0 && !fixed) || !licenseValid {
		fmt.Fprintln(env.Stdout, "Some checks failed.")
		return cli.ErrExitFailure
	}
	fmt.Fprintln(env.Stdout, "All checks passed.")
	return nil
}

// loadConfig builds the run configuration from defaults, the configuration
// archive (if any) and flags.
func (a *app) loadConfig(dir string) (licensecheck.Config, error) {
	cfg := licensecheck.Default()

	path := a.configPath
	if path == "" {
		p := filepath.Join(dir, configName)
		if _, err := os.Stat(p); err == nil {
			path = p
		}
	}

	if path != "" {
		var (
			configuredPaths []string
			err             error
		)
		cfg, configuredPaths, err = parseConfig(path, cfg)
		if err != nil {
			return cfg, err
		}
		// Exclusions named by the user must actually exist; a typo here would
		// silently widen the scan otherwise.
		for _, p := range configuredPaths {
			if _, err := os.Stat(filepath.Join(dir, p)); errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("exclusion target %q does not exist in %q", p, dir)
			}
		}
	}

	if a.author != "" {
		cfg.Author = a.author
	}
	if cfg.Author == "" {
		return cfg, fmt.Errorf("%w: no author configured (use -author or a config file)", cli.ErrInvalidArgs)
	}
	return cfg, nil
}

// exclusions is the schema of the exclusions.json config file.
type exclusions struct {
	Paths    []string `json:"paths"`
	Suffixes []string `json:"suffixes"`
	Patterns []string `json:"patterns"`
}

// parseConfig overlays the configuration archive at path onto cfg. It also
// returns the path exclusions that came from the archive, so the caller can
// verify they exist.
func parseConfig(path string, cfg licensecheck.Config) (licensecheck.Config, []string, error) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return cfg, nil, err
	}

	var configuredPaths []string
	for _, f := range ar.Files {
		switch f.Name {
		case "template":
			cfg.Template = strings.TrimRight(string(f.Data), "\n")
		case "author":
			cfg.Author = strings.TrimSpace(string(f.Data))
		case "comment_chars.json":
			if err := json.Unmarshal(f.Data, &cfg.CommentMarkers); err != nil {
				return cfg, nil, fmt.Errorf("%s: comment_chars.json: %w", path, err)
			}
		case "exclusions.json":
			var e exclusions
			if err := json.Unmarshal(f.Data, &e); err != nil {
				return cfg, nil, fmt.Errorf("%s: exclusions.json: %w", path, err)
			}
			if e.Paths != nil {
				cfg.ExcludePaths = e.Paths
				configuredPaths = e.Paths
			}
			if e.Suffixes != nil {
				cfg.ExcludeSuffixes = e.Suffixes
			}
			if e.Patterns != nil {
				cfg.ExcludePatterns = e.Patterns
			}
		}
	}
	return cfg, configuredPaths, nil
}

// newVerboseLogger returns a logger that writes per-file debug records to
// stderr, colored when stderr is a terminal.
func newVerboseLogger(env *cli.Env) *logger.Logger {
	l := logger.New(nil)
	l.Level.Set(slog.LevelDebug)

	var h slog.Handler
	if f, ok := env.Stderr.(*os.File); ok && cli.IsTerminal(int(f.Fd())) {
		h = tint.NewHandler(env.Stderr, &tint.Options{Level: l.Level})
	} else {
		h = slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: l.Level})
	}
	l.Attach(h)
	return l
}
