// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licensecheck

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"go.astrophena.name/licensecheck/logger"
	"go.astrophena.name/licensecheck/syncx"
)

// Result holds the outcome of a scan. Paths are relative to the checker's
// root and follow the walk order, so output is reproducible across runs.
// Binary files appear in neither list.
type Result struct {
	Passed []string
	Failed []string
}

// Scan checks every target file under the root and aggregates the verdicts.
//
// Files are checked concurrently, bounded by GOMAXPROCS, and the verdicts
// are reassembled in walk order afterwards, so the result is identical to a
// serial scan. The first error encountered aborts the whole run.
func (c *Checker) Scan(ctx context.Context) (*Result, error) {
	files, err := c.targetFiles()
	if err != nil {
		return nil, err
	}

	var (
		verdicts syncx.Map[string, Status]
		scanErr  error
	)
	perr := syncx.Protect(&scanErr)

	lwg := syncx.NewLimitedWaitGroup(runtime.GOMAXPROCS(0))
	for _, path := range files {
		lwg.Go(func() {
			status, err := c.CheckFile(path)
			if err != nil {
				perr.WriteAccess(func(e *error) {
					if *e == nil {
						*e = err
					}
				})
				return
			}
			logger.Debug(ctx, "checked file",
				slog.String("path", path),
				slog.String("status", status.String()),
			)
			verdicts.Store(path, status)
		})
	}
	lwg.Wait()

	if scanErr != nil {
		return nil, scanErr
	}

	res := new(Result)
	for _, path := range files {
		status, ok := verdicts.Load(path)
		if !ok {
			continue
		}
		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return nil, err
		}
		switch status {
		case StatusPass:
			res.Passed = append(res.Passed, rel)
		case StatusFail:
			res.Failed = append(res.Failed, rel)
		case StatusBinary:
			// Not judged.
		}
	}
	return res, nil
}

// targetFiles enumerates the regular files under the root that are not
// excluded, in lexical walk order. Symbolic links are not followed, which
// also rules out walk cycles.
func (c *Checker) targetFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != c.root && c.excludedPath(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if c.excluded(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// excluded reports whether the absolute path matches any exclusion rule.
func (c *Checker) excluded(path string) bool {
	if c.excludedPath(path) {
		return true
	}
	for _, s := range c.cfg.ExcludeSuffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	for _, re := range c.excludePatterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// excludedPath reports whether path is one of the excluded paths or nested
// under one.
func (c *Checker) excludedPath(path string) bool {
	for _, p := range c.excludePaths {
		if path == p || strings.HasPrefix(path, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
