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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/config"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/directive"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/report"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	opts := config.Defaults()
	assert.Equal(t, directive.Threshold(0), opts.Threshold())
	assert.Empty(t, opts.LinePattern)
	assert.False(t, opts.WrapArgumentLists)
	assert.Equal(t, 80, opts.DocOptions().MaxWidth)
	assert.Equal(t, 2, opts.DocOptions().TabWidth)
	assert.True(t, opts.TrailingComma.Arrays())
	assert.True(t, opts.TrailingComma.Arguments())

	opts.WrapThreshold = -1
	assert.Equal(t, directive.Unlimited, opts.Threshold())
}

func TestDecode(t *testing.T) {
	t.Parallel()

	r := new(report.Report)
	opts := config.Decode(map[string]any{
		"wrapThreshold":     3,
		"linePattern":       []any{1, int64(2)},
		"wrapArgumentLists": true,
		"printwidth":        float64(100),
		"TABWIDTH":          uint8(4),
		"useTabs":           true,
		"trailingComma":     "ES5",
	}, r)

	assert.Zero(t, r.Len())
	assert.Equal(t, config.Options{
		WrapThreshold:     3,
		LinePattern:       []int{1, 2},
		WrapArgumentLists: true,
		PrintWidth:        100,
		TabWidth:          4,
		UseTabs:           true,
		TrailingComma:     config.TrailingCommaES5,
	}, opts)
	assert.True(t, opts.TrailingComma.Arrays())
	assert.False(t, opts.TrailingComma.Arguments())
}

func TestDecodePatternString(t *testing.T) {
	t.Parallel()

	r := new(report.Report)
	opts := config.Decode(map[string]any{"linePattern": "2 1, 3"}, r)
	assert.Zero(t, r.Len())
	assert.Equal(t, []int{2, 1, 3}, opts.LinePattern)

	opts = config.Decode(map[string]any{"linePattern": ""}, r)
	assert.Zero(t, r.Len())
	assert.Empty(t, opts.LinePattern)
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key   string
		value any
		want  string
	}{
		{
			key:   "wrapThreshold",
			value: "abc",
			want:  `Invalid wrapThreshold value. Expected an integer, but received "abc".`,
		},
		{
			key:   "wrapThreshold",
			value: 1.5,
			want:  `Invalid wrapThreshold value. Expected an integer, but received 1.5.`,
		},
		{
			key:   "linePattern",
			value: []any{1, "x"},
			want:  `Invalid linePattern value. Expected a list of positive integers, but received [1,"x"].`,
		},
		{
			key:   "linePattern",
			value: []int{2, 0},
			want:  `Invalid linePattern value. Expected a list of positive integers, but received [2,0].`,
		},
		{
			key:   "linePattern",
			value: 3,
			want:  `Invalid linePattern value. Expected a list of positive integers, but received 3.`,
		},
		{
			key:   "wrapArgumentLists",
			value: "yes",
			want:  `Invalid wrapArgumentLists value. Expected a boolean, but received "yes".`,
		},
		{
			key:   "tabWidth",
			value: 0,
			want:  `Invalid tabWidth value. Expected a positive integer, but received 0.`,
		},
		{
			key:   "trailingComma",
			value: "some",
			want:  `Invalid trailingComma value. Expected "all", "es5" or "none", but received "some".`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			r := new(report.Report)
			opts := config.Decode(map[string]any{tt.key: tt.value}, r)
			assert.Equal(t, config.Defaults(), opts)

			require.Equal(t, 1, r.Len())
			d := r.Diagnostics[0]
			assert.Equal(t, report.Warning, d.Level)
			assert.Equal(t, tt.want, d.Message())

			var invalid *config.InvalidValueError
			require.ErrorAs(t, d.Err, &invalid)
			assert.Equal(t, tt.key, invalid.Option)
		})
	}
}

func TestDecodeUnknown(t *testing.T) {
	t.Parallel()

	r := new(report.Report)
	opts := config.Decode(map[string]any{"semi": false, "wrapThreshold": 2}, r)
	assert.Equal(t, 2, opts.WrapThreshold)

	require.Equal(t, 1, r.Len())
	assert.Equal(t, report.Remark, r.Diagnostics[0].Level)
	assert.Equal(t, `unknown option "semi"`, r.Diagnostics[0].Message())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	want := config.Defaults()
	want.WrapThreshold = 4
	want.LinePattern = []int{2, 1}
	want.WrapArgumentLists = true
	want.TrailingComma = config.TrailingCommaNone

	for _, format := range []string{"yaml", "toml", "json"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			data, err := config.Marshal(want, format)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), ".multilinerc."+format)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			r := new(report.Report)
			got, err := config.Load(path, r)
			require.NoError(t, err)
			assert.Zero(t, r.Len())
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	got, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), got)

	got, err = config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), got)
}

func TestFind(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	path := filepath.Join(root, ".multilinerc.toml")
	require.NoError(t, os.WriteFile(path, []byte("wrapThreshold = 1\n"), 0o600))

	found, ok := config.Find(nested)
	require.True(t, ok)
	assert.Equal(t, path, found)
}

func TestMarshalUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := config.Marshal(config.Defaults(), "ini")
	assert.Error(t, err)
}
