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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invocation struct {
	stdout, stderr string
	err            error
}

// run executes the command line in a fresh command tree. Unless args name
// one, the config file is pinned to a path in dir so that no config file
// from the surrounding checkout is picked up.
func run(t *testing.T, dir, stdin string, args ...string) invocation {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand(strings.NewReader(stdin), &stdout, &stderr)
	if !strings.Contains(strings.Join(args, " "), "--config") {
		args = append(args, "--config", filepath.Join(dir, ".multilinerc.yaml"))
	}
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return invocation{stdout.String(), stderr.String(), err}
}

func write(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, text := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

const (
	unformatted = "x = [1, 2, 3];\n"
	inPairs     = "x = [\n  1, 2,\n  3,\n];\n"
	onePerLine  = "x = [\n  1,\n  2,\n  3,\n];\n"
)

func TestFormatStdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, map[string]string{"a.js": unformatted})

	got := run(t, dir, "", "format", "--line-pattern", "2", filepath.Join(dir, "a.js"))
	require.NoError(t, got.err)
	assert.Equal(t, inPairs, got.stdout)
	assert.Equal(t, unformatted, read(t, filepath.Join(dir, "a.js")))
}

func TestFormatStdin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got := run(t, dir, unformatted, "format", "--stdin-filepath", "input.ts")
	require.NoError(t, got.err)
	assert.Equal(t, onePerLine, got.stdout)

	got = run(t, dir, unformatted, "format", "--wrap-threshold=-1")
	require.NoError(t, got.err)
	assert.Equal(t, unformatted, got.stdout)
}

func TestFormatWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, map[string]string{
		"a.js":                    unformatted,
		"src/b.ts":                unformatted,
		"src/node_modules/c.js":   unformatted,
		"notes.md":                unformatted,
		"src/already/d.mjs":       onePerLine,
		"src/component/view.tsx":  "const v = [<A />, <B />];\n",
		"src/component/style.css": unformatted,
	})

	got := run(t, dir, "", "format", "--write", dir)
	require.NoError(t, got.err)
	assert.Empty(t, got.stdout)

	assert.Equal(t, onePerLine, read(t, filepath.Join(dir, "a.js")))
	assert.Equal(t, onePerLine, read(t, filepath.Join(dir, "src", "b.ts")))
	assert.Equal(t, onePerLine, read(t, filepath.Join(dir, "src", "already", "d.mjs")))
	assert.Equal(t, "const v = [\n  <A />,\n  <B />,\n];\n", read(t, filepath.Join(dir, "src", "component", "view.tsx")))

	assert.Equal(t, unformatted, read(t, filepath.Join(dir, "src", "node_modules", "c.js")))
	assert.Equal(t, unformatted, read(t, filepath.Join(dir, "notes.md")))
	assert.Equal(t, unformatted, read(t, filepath.Join(dir, "src", "component", "style.css")))
}

func TestFormatCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, map[string]string{
		"good.js": onePerLine,
		"bad.js":  unformatted,
	})

	got := run(t, dir, "", "format", "--check", filepath.Join(dir, "good.js"))
	require.NoError(t, got.err)
	assert.Empty(t, got.stdout)

	got = run(t, dir, "", "format", "--check", dir)
	var exit *ExitError
	require.ErrorAs(t, got.err, &exit)
	assert.Equal(t, 1, exit.Code)
	assert.Contains(t, got.stderr, "bad.js")
	assert.NotContains(t, got.stderr, "good.js")
	assert.Equal(t, unformatted, read(t, filepath.Join(dir, "bad.js")))

	got = run(t, dir, "", "format", "--check", "--write", dir)
	require.Error(t, got.err)
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	write(t, dir, map[string]string{"a.js": unformatted})

	got := run(t, dir, "", "format", "--diff", path)
	require.NoError(t, got.err)
	assert.Contains(t, got.stdout, "--- "+path)
	assert.Contains(t, got.stdout, "+++ "+path)
	assert.Contains(t, got.stdout, "-x = [1, 2, 3];\n")
	assert.Contains(t, got.stdout, "+x = [\n+  1,\n")
	assert.Equal(t, unformatted, read(t, path))
}

func TestFormatGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, map[string]string{
		"a/one.ts":   unformatted,
		"a/b/two.ts": unformatted,
		"a/three.js": unformatted,
	})

	paths, err := expand([]string{filepath.Join(dir, "**", "*.ts"), filepath.Join(dir, "a", "one.ts")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a", "b", "two.ts"),
		filepath.Join(dir, "a", "one.ts"),
	}, paths)

	_, err = expand([]string{filepath.Join(dir, "missing.ts")})
	require.Error(t, err)
}

func TestFormatFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, map[string]string{
		"notes.txt": unformatted,
		"a.js":      unformatted,
	})

	got := run(t, dir, "", "format", filepath.Join(dir, "notes.txt"), filepath.Join(dir, "a.js"))
	var exit *ExitError
	require.ErrorAs(t, got.err, &exit)
	assert.Equal(t, 2, exit.Code)
	assert.Contains(t, got.stderr, "notes.txt")
	// The other file is still formatted.
	assert.Equal(t, onePerLine, got.stdout)
}

func TestFormatSyntaxError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, map[string]string{
		"a.js":   unformatted,
		"bad.js": "x = [;\n",
		"c.ts":   unformatted,
	})

	got := run(t, dir, "", "format", "--jobs", "3", dir)
	var exit *ExitError
	require.ErrorAs(t, got.err, &exit)
	assert.Equal(t, 2, exit.Code)
	assert.Contains(t, got.stderr, "bad.js")
	assert.Equal(t, onePerLine+onePerLine, got.stdout)
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	config := filepath.Join(dir, "multiline.toml")
	write(t, dir, map[string]string{
		"a.js":           unformatted,
		"multiline.toml": "linePattern = [2]\ntabWidth = 4\n",
	})

	got := run(t, dir, "", "format", "--config", config, filepath.Join(dir, "a.js"))
	require.NoError(t, got.err)
	assert.Equal(t, "x = [\n    1, 2,\n    3,\n];\n", got.stdout)

	// Flags take precedence over the file.
	got = run(t, dir, "", "format", "--config", config, "--line-pattern", "1", "--tab-width", "2", filepath.Join(dir, "a.js"))
	require.NoError(t, got.err)
	assert.Equal(t, onePerLine, got.stdout)
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, map[string]string{".multilinerc.yaml": "wrapThreshold: 3\nlinePattern: [2, 1]\n"})

	got := run(t, dir, "", "config", "show", "--format", "json", "--use-tabs")
	require.NoError(t, got.err)
	assert.Contains(t, got.stdout, `"wrapThreshold": 3`)
	assert.Contains(t, got.stdout, `"useTabs": true`)
	assert.Contains(t, got.stdout, `"trailingComma": "all"`)

	got = run(t, dir, "", "config", "show")
	require.NoError(t, got.err)
	assert.Contains(t, got.stdout, "wrapThreshold: 3\n")

	got = run(t, dir, "", "config", "show", "--format", "ini")
	require.Error(t, got.err)

	got = run(t, dir, "", "config", "path")
	require.NoError(t, got.err)
	assert.Equal(t, filepath.Join(dir, ".multilinerc.yaml")+"\n", got.stdout)
}

func TestInvalidOption(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got := run(t, dir, unformatted, "format", "--trailing-comma", "sometimes")
	require.NoError(t, got.err)
	assert.Contains(t, got.stderr, `warning: Invalid trailingComma value. Expected "all", "es5" or "none", but received "sometimes".`)
	assert.Equal(t, onePerLine, got.stdout)
}

func TestExitError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exit status 3", (&ExitError{Code: 3}).Error())
	err := &ExitError{Code: 1, Err: os.ErrNotExist}
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, os.ErrNotExist.Error(), err.Error())
}
