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

package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/source"
)

func loc(line, column int) source.Location {
	return source.Location{Line: line, Column: column}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	lines := source.Lines("const x = [\n    1,\n    2,\n];")

	tests := []struct {
		name  string
		r     source.Range
		want  string
		error bool
	}{
		{name: "single line", r: source.Range{Start: loc(0, 7), End: loc(0, 8)}, want: "x"},
		{name: "single line tail", r: source.Range{Start: loc(0, 11), End: loc(0, 12)}, want: "["},
		{name: "clamped", r: source.Range{Start: loc(0, 11), End: loc(0, 99)}, want: "["},
		{name: "multi line", r: source.Range{Start: loc(0, 11), End: loc(2, 6)}, want: "[\n    1,\n    2"},
		{name: "adjacent lines", r: source.Range{Start: loc(2, 6), End: loc(3, 2)}, want: ",\n]"},
		{name: "empty", r: source.Range{Start: loc(1, 3), End: loc(1, 3)}, error: true},
		{name: "backwards column", r: source.Range{Start: loc(1, 4), End: loc(1, 3)}, error: true},
		{name: "backwards line", r: source.Range{Start: loc(2, 1), End: loc(1, 3)}, error: true},
		{name: "out of bounds", r: source.Range{Start: loc(2, 1), End: loc(7, 3)}, error: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := source.Extract(lines, tt.r)
			if tt.error {
				require.ErrorIs(t, err, source.ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeuristics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		text             string
		list             source.Range
		elements         []source.Range
		leading, trailer bool
	}{
		{
			name:     "one line",
			text:     "[1, 2]",
			list:     source.Range{Start: loc(0, 1), End: loc(0, 7)},
			elements: []source.Range{{Start: loc(0, 2), End: loc(0, 3)}, {Start: loc(0, 5), End: loc(0, 6)}},
		},
		{
			name:     "trailing comma",
			text:     "[1, 2, 3,]",
			list:     source.Range{Start: loc(0, 1), End: loc(0, 11)},
			elements: []source.Range{{Start: loc(0, 2), End: loc(0, 3)}, {Start: loc(0, 5), End: loc(0, 6)}, {Start: loc(0, 8), End: loc(0, 9)}},
			trailer:  true,
		},
		{
			name:     "leading newline",
			text:     "[\n  1, 2]",
			list:     source.Range{Start: loc(0, 1), End: loc(1, 8)},
			elements: []source.Range{{Start: loc(1, 3), End: loc(1, 4)}, {Start: loc(1, 6), End: loc(1, 7)}},
			leading:  true,
		},
		{
			name:    "empty",
			text:    "[\n,]",
			list:    source.Range{Start: loc(0, 1), End: loc(1, 3)},
			leading: false,
			trailer: false,
		},
		{
			name:     "no locations",
			text:     "[1]",
			elements: []source.Range{{Start: loc(0, 2), End: loc(0, 3)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := source.Lines(tt.text)
			leading, err := source.HasLeadingNewline(tt.list, tt.elements, lines)
			require.NoError(t, err)
			assert.Equal(t, tt.leading, leading)

			trailer, err := source.HasTrailingSeparator(tt.list, tt.elements, lines)
			require.NoError(t, err)
			assert.Equal(t, tt.trailer, trailer)
		})
	}
}
