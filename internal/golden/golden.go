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

// Package golden runs table-driven tests whose table lives in the file
// system: every input file under a root directory is one test case, and its
// expected outputs are stored next to it.
package golden

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a test data corpus.
type Corpus struct {
	// The root of the test data directory, relative to the file that calls
	// [Corpus.Run].
	Root string

	// An environment variable holding a glob. Test cases whose name matches
	// it have their outputs rewritten instead of checked.
	Refresh string

	// The file extensions (without a dot) of files which define a test
	// case, e.g. "yaml".
	Extensions []string

	// The outputs of each test case. Output i of test case "foo.yaml" is
	// stored in "foo.yaml.<Outputs[i].Extension>". A missing file is treated
	// as an expected empty output.
	Outputs []Output
}

// Output is one output of a test case.
type Output struct {
	// Suffix appended to the test case's file name.
	Extension string

	// Compares outputs. May be nil, in which case the values are compared
	// byte-for-byte.
	Compare Compare
}

// Compare is a comparison function between strings, used in [Output].
//
// Returns the empty string if the strings match, otherwise an error
// message.
type Compare func(got, want string) string

// Run executes test on every test case in the corpus. test must fill in
// outputs, which has one element per [Corpus.Outputs].
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string, outputs []string)) {
	t.Helper()

	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && slices.Contains(c.Extensions, strings.TrimPrefix(filepath.Ext(path), ".")) {
			cases = append(cases, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: error while walking %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("golden: no test cases in %q", root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}

	for _, path := range cases {
		name, _ := filepath.Rel(root, path)
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: error while loading input file %q: %v", path, err)
			}

			outputs := make([]string, len(c.Outputs))
			test(t, name, string(input), outputs)

			refreshing := refresh != "" && doublestar.MatchUnvalidated(refresh, name)
			for i, output := range c.Outputs {
				path := path + "." + output.Extension
				if refreshing {
					c.write(t, path, outputs[i])
					continue
				}

				want, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("golden: error while loading output file %q: %v", path, err)
					continue
				}

				compare := output.Compare
				if compare == nil {
					compare = Diff
				}
				if msg := compare(outputs[i], string(want)); msg != "" {
					t.Errorf("output mismatch for %q:\n%s", path, msg)
				}
			}
		})
	}
}

func (c Corpus) write(t *testing.T, path, output string) {
	t.Helper()
	if output == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("golden: error while deleting output file %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		t.Errorf("golden: error while writing output file %q: %v", path, err)
	}
}

// Diff compares two strings byte-for-byte, and renders a unified diff if
// they differ.
func Diff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("golden: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
