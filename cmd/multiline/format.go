// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	multiline "github.com/electrovir/prettier-plugin-multiline-arrays-sub000"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/report"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/syntax"
)

// sourceGlob matches every file a directory argument expands to.
const sourceGlob = "**/*.{js,jsx,mjs,cjs,ts,mts,cts,tsx}"

type formatFlags struct {
	write, check, diff bool
	stdinPath          string
	jobs               int
}

// result is the outcome of formatting one file.
type result struct {
	path     string
	src, out []byte
	report   *report.Report
	err      error
}

func (r *result) changed() bool {
	return r.err == nil && !bytes.Equal(r.src, r.out)
}

func newFormatCommand(a *app) *cobra.Command {
	var flags formatFlags
	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Reflow lists in the given files",
		Long: `Reflow lists in the given files, directories and glob patterns.

Directories are searched recursively for JavaScript and TypeScript files,
skipping node_modules. With no paths, standard input is formatted.`,
		Example: `  multiline format src/app.ts
  multiline format --write 'src/**/*.ts'
  multiline format --check --line-pattern "2 1" .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.format(cmd, args, flags)
		},
	}
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with status 1 if any file is not formatted")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff instead of the formatted output")
	cmd.Flags().StringVar(&flags.stdinPath, "stdin-filepath", "stdin.js", "path used to pick the language of standard input")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of files to format concurrently")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	return cmd
}

func (a *app) format(cmd *cobra.Command, args []string, flags formatFlags) error {
	ctx := cmd.Context()
	formatter := multiline.New(a.options(), multiline.WithLogger(a.logger))

	if len(args) == 0 {
		src, err := io.ReadAll(a.stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		out, r, err := formatter.Format(ctx, flags.stdinPath, src)
		res := &result{path: flags.stdinPath, src: src, out: []byte(out), report: r, err: err}
		return a.finish([]*result{res}, flags, false)
	}

	paths, err := expand(args)
	if err != nil {
		return err
	}
	a.logger.Debug("formatting files", "count", len(paths), "jobs", flags.jobs)

	results := make([]*result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(flags.jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			res := &result{path: path}
			results[i] = res

			res.src, res.err = os.ReadFile(path)
			if res.err != nil {
				return nil
			}
			var out string
			out, res.report, res.err = formatter.Format(ctx, path, res.src)
			res.out = []byte(out)
			// Only cancellation stops the other files.
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return a.finish(results, flags, true)
}

// finish reports on every result, in input order.
func (a *app) finish(results []*result, flags formatFlags, files bool) error {
	var failed, unformatted int
	for _, res := range results {
		if err := res.report.Render(a.stderr); err != nil {
			return err
		}
		if res.err != nil {
			failed++
			a.logger.Error("cannot format file", "path", res.path, "err", res.err)
			continue
		}

		switch {
		case flags.check:
			if res.changed() {
				unformatted++
				a.logger.Warn("not formatted", "path", res.path)
			}
			if flags.diff {
				if err := a.diff(res); err != nil {
					return err
				}
			}
		case flags.diff:
			if err := a.diff(res); err != nil {
				return err
			}
		case flags.write && files:
			if !res.changed() {
				continue
			}
			if err := rewrite(res.path, res.out); err != nil {
				failed++
				a.logger.Error("cannot write file", "path", res.path, "err", err)
				continue
			}
			a.logger.Info("formatted", "path", res.path)
		default:
			if _, err := a.stdout.Write(res.out); err != nil {
				return err
			}
		}
	}

	switch {
	case failed > 0:
		return &ExitError{Code: 2, Err: fmt.Errorf("%d file(s) could not be formatted", failed)}
	case unformatted > 0:
		return &ExitError{Code: 1, Err: fmt.Errorf("%d file(s) are not formatted", unformatted)}
	}
	return nil
}

func (a *app) diff(res *result) error {
	if !res.changed() {
		return nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(res.src)),
		B:        difflib.SplitLines(string(res.out)),
		FromFile: res.path,
		ToFile:   res.path,
		Context:  3,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.stdout, diff)
	return err
}

// rewrite replaces the contents of path, keeping its permissions.
func rewrite(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, info.Mode().Perm())
}

// expand turns command line arguments into a sorted, de-duplicated list of
// files. Directories and glob patterns only yield files whose language is
// known; a file named explicitly is always kept.
func expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			matches, err := doublestar.Glob(os.DirFS(arg), sourceGlob)
			if err != nil {
				return nil, fmt.Errorf("search %s: %w", arg, err)
			}
			for _, match := range matches {
				if !vendored(match) {
					paths = append(paths, filepath.Join(arg, filepath.FromSlash(match)))
				}
			}

		case err == nil:
			paths = append(paths, arg)

		case errors.Is(err, os.ErrNotExist) && strings.ContainsAny(arg, "*?[{"):
			if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
				return nil, fmt.Errorf("invalid glob %q", arg)
			}
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("expand %s: %w", arg, err)
			}
			for _, match := range matches {
				if _, ok := syntax.LanguageForPath(match); ok && !vendored(filepath.ToSlash(match)) {
					paths = append(paths, match)
				}
			}

		default:
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// vendored reports whether a slash-separated path goes through a
// node_modules directory.
func vendored(path string) bool {
	return slices.Contains(strings.Split(path, "/"), "node_modules")
}
