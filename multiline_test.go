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

package multiline_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	multiline "github.com/electrovir/prettier-plugin-multiline-arrays-sub000"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/config"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/report"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/syntax"
)

func options(edit func(*config.Options)) config.Options {
	opts := config.Defaults()
	if edit != nil {
		edit(&opts)
	}
	return opts
}

func format(t *testing.T, opts config.Options, path, src string) (string, *report.Report) {
	t.Helper()
	out, r, err := multiline.New(opts).Format(context.Background(), path, []byte(src))
	require.NoError(t, err)
	return out, r
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options config.Options
		path    string
		in, out string
	}{
		{
			name:    "wrap single element",
			options: options(func(o *config.Options) { o.TabWidth = 4 }),
			in:      "const x = ['1 1'];\n",
			out:     "const x = [\n    '1 1',\n];\n",
		},
		{
			name:    "line pattern",
			options: options(func(o *config.Options) { o.LinePattern = []int{1, 2, 3} }),
			in:      "const x = ['a', 'b', 'c', 'd', 'e', 'f', 'g', 'h'];\n",
			out:     "const x = [\n  'a',\n  'b', 'c',\n  'd', 'e', 'f',\n  'g',\n  'h',\n];\n",
		},
		{
			name:    "trailing comma forces wrap",
			options: options(func(o *config.Options) { o.WrapThreshold = 10 }),
			in:      "const x = [1, 2, 3,];\n",
			out:     "const x = [\n  1,\n  2,\n  3,\n];\n",
		},
		{
			name:    "leading newline forces wrap",
			options: options(func(o *config.Options) { o.WrapThreshold = 10 }),
			in:      "x = [\n  1, 2];\n",
			out:     "x = [\n  1,\n  2,\n];\n",
		},
		{
			name:    "threshold",
			options: options(func(o *config.Options) { o.WrapThreshold = 3 }),
			in:      "x = [1, 2, 3];\ny = [1, 2, 3, 4];\n",
			out:     "x = [1, 2, 3];\ny = [\n  1,\n  2,\n  3,\n  4,\n];\n",
		},
		{
			name:    "never wrap",
			options: options(func(o *config.Options) { o.WrapThreshold = -1 }),
			in:      "x = [1, 2, 3];\n",
			out:     "x = [1, 2, 3];\n",
		},
		{
			name: "empty",
			in:   "x = [];\n",
			out:  "x = [];\n",
		},
		{
			name: "nested",
			in:   "x = [[1, 2], 3];\n",
			out:  "x = [\n  [\n    1,\n    2,\n  ],\n  3,\n];\n",
		},
		{
			name:    "next line pattern",
			options: options(func(o *config.Options) { o.WrapThreshold = 10 }),
			in: "// prettier-multiline-arrays-next-line-pattern: 2\n" +
				"x = [1, 2, 3];\n" +
				"y = [1, 2, 3];\n",
			out: "// prettier-multiline-arrays-next-line-pattern: 2\n" +
				"x = [\n  1, 2,\n  3,\n];\n" +
				"y = [1, 2, 3];\n",
		},
		{
			name:    "next threshold",
			options: options(func(o *config.Options) { o.WrapThreshold = 10 }),
			in:      "/* prettier-multiline-arrays-next-threshold: 1 */\nx = [1, 2];\n",
			out:     "/* prettier-multiline-arrays-next-threshold: 1 */\nx = [\n  1,\n  2,\n];\n",
		},
		{
			name:    "directive overrides manual wrap",
			options: options(func(o *config.Options) { o.WrapThreshold = 10 }),
			in:      "// prettier-multiline-arrays-next-threshold: 5\nx = [\n  1, 2,\n];\n",
			out:     "// prettier-multiline-arrays-next-threshold: 5\nx = [1, 2];\n",
		},
		{
			name:    "set and reset",
			options: options(func(o *config.Options) { o.WrapThreshold = 10 }),
			in: "// prettier-multiline-arrays-set-line-pattern: 3\n" +
				"a = [1, 2, 3, 4];\n" +
				"b = [1, 2, 3, 4];\n" +
				"// prettier-multiline-arrays-reset\n" +
				"c = [1, 2, 3, 4];\n",
			out: "// prettier-multiline-arrays-set-line-pattern: 3\n" +
				"a = [\n  1, 2, 3,\n  4,\n];\n" +
				"b = [\n  1, 2, 3,\n  4,\n];\n" +
				"// prettier-multiline-arrays-reset\n" +
				"c = [1, 2, 3, 4];\n",
		},
		{
			name:    "set threshold runs to end of file",
			options: options(func(o *config.Options) { o.WrapThreshold = 10 }),
			in: "// prettier-multiline-arrays-set-threshold: 1\n" +
				"a = [1, 2];\n\n\n" +
				"b = [1];\n",
			out: "// prettier-multiline-arrays-set-threshold: 1\n" +
				"a = [\n  1,\n  2,\n];\n\n\n" +
				"b = [1];\n",
		},
		{
			name:    "next beats set",
			options: options(nil),
			in: "// prettier-multiline-arrays-set-line-pattern: 3\n" +
				"// prettier-multiline-arrays-next-line-pattern: 1\n" +
				"a = [1, 2];\n",
			out: "// prettier-multiline-arrays-set-line-pattern: 3\n" +
				"// prettier-multiline-arrays-next-line-pattern: 1\n" +
				"a = [\n  1,\n  2,\n];\n",
		},
		{
			name:    "indented",
			options: options(func(o *config.Options) { o.LinePattern = []int{2} }),
			in:      "function f() {\n  return [1, 2, 3];\n}\n",
			out:     "function f() {\n  return [\n    1, 2,\n    3,\n  ];\n}\n",
		},
		{
			name:    "arguments untouched by default",
			options: options(nil),
			in:      "foo(a, b);\n",
			out:     "foo(a, b);\n",
		},
		{
			name: "arguments",
			options: options(func(o *config.Options) {
				o.WrapArgumentLists = true
				o.LinePattern = []int{2}
			}),
			path: "a.ts",
			in:   "foo(a, b, c);\nfunction f(x: number) {}\n",
			out:  "foo(\n  a, b,\n  c,\n);\nfunction f(\n  x: number,\n) {}\n",
		},
		{
			name:    "hugged arguments take a trailing comma",
			options: options(func(o *config.Options) { o.WrapArgumentLists = true }),
			in:      "foo(a, b, () => { return 1; });\nbar(1, 2);\n",
			out:     "foo(\n  a,\n  b,\n  () => { return 1; },\n);\nbar(\n  1,\n  2,\n);\n",
		},
		{
			name: "hugged arguments without trailing comma",
			options: options(func(o *config.Options) {
				o.WrapArgumentLists = true
				o.TrailingComma = config.TrailingCommaES5
			}),
			in:  "foo(a, () => { return 1; });\n",
			out: "foo(\n  a,\n  () => { return 1; }\n);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := tt.path
			if path == "" {
				path = "test.js"
			}
			out, r := format(t, tt.options, path, tt.in)
			assert.Equal(t, tt.out, out)
			assert.Zero(t, r.Len())

			// Formatting is idempotent.
			again, _ := format(t, tt.options, path, out)
			assert.Equal(t, out, again)
		})
	}
}

func TestInvalidDirective(t *testing.T) {
	t.Parallel()

	in := "// prettier-multiline-arrays-next-line-pattern: 1 x\nx = [1, 2, 3];\n"
	out, r := format(t, options(func(o *config.Options) { o.LinePattern = []int{2} }), "a.js", in)
	assert.Equal(t, "// prettier-multiline-arrays-next-line-pattern: 1 x\nx = [\n  1, 2,\n  3,\n];\n", out)

	require.Equal(t, 1, r.Len())
	d := r.Diagnostics[0]
	assert.Equal(t, report.Warning, d.Level)
	assert.Equal(t, "a.js", d.InFile)
	assert.Equal(t, 1, d.Line)
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	f := multiline.New(config.Defaults())

	_, _, err := f.Format(context.Background(), "README.md", []byte("# hi\n"))
	require.ErrorIs(t, err, multiline.ErrUnsupported)

	_, r, err := f.Format(context.Background(), "bad.js", []byte("x = [;\n"))
	require.ErrorIs(t, err, syntax.ErrSyntax)
	assert.NotNil(t, r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = f.Format(ctx, "a.js", []byte("x = [1];\n"))
	require.Error(t, err)
}

func TestFormatSyntaxError(t *testing.T) {
	t.Parallel()

	f := multiline.New(config.Defaults())
	sources := []string{
		"x = [;\n",
		"const = [1, 2];\n",
		"foo(1, 2\n",
		"// prettier-multiline-arrays-next-line-pattern: 2\nx = [1, 2,, 3\n",
	}
	for i, src := range sources {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			t.Parallel()
			for range 4 {
				out, r, err := f.Format(context.Background(), "bad.js", []byte(src))
				require.ErrorIs(t, err, syntax.ErrSyntax)
				assert.Contains(t, err.Error(), "bad.js at ")
				assert.Empty(t, out)
				assert.NotNil(t, r)
			}
		})
	}
}

func TestConcurrent(t *testing.T) {
	t.Parallel()

	f := multiline.New(options(func(o *config.Options) { o.LinePattern = []int{2} }))

	var g errgroup.Group
	outs := make([]string, 16)
	for i := range outs {
		g.Go(func() error {
			src := fmt.Sprintf("// prettier-multiline-arrays-next-line-pattern: %d\nx = [1, 2, 3];\n", i%3+1)
			out, _, err := f.Format(context.Background(), "a.js", []byte(src))
			outs[i] = out
			return err
		})
	}
	require.NoError(t, g.Wait())

	for i, out := range outs {
		switch i % 3 {
		case 0:
			assert.Contains(t, out, "x = [\n  1,\n  2,\n  3,\n];")
		case 1:
			assert.Contains(t, out, "x = [\n  1, 2,\n  3,\n];")
		case 2:
			assert.Contains(t, out, "x = [\n  1, 2, 3,\n];")
		}
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	f := multiline.New(config.Defaults(), multiline.WithLogger(logger))

	_, _, err := f.Format(context.Background(), "a.js", []byte("x = [1];\n"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "reflowing list")
	assert.Contains(t, buf.String(), "formatted file")
}
