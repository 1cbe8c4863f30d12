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

// Package source provides source locations and the raw-text heuristics used
// to decide whether a list was written by hand across several lines.
package source

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRange is returned by [Extract] when a range ends before it
// starts, or refers to lines that do not exist.
var ErrInvalidRange = errors.New("invalid range")

// Location is a position within a source file.
//
// Line is 0-indexed and Column is 1-indexed; columns count bytes. The zero
// Location is therefore never a valid position, which makes it usable as a
// sentinel.
type Location struct {
	Line, Column int
}

// IsZero returns whether this is the zero location.
func (l Location) IsZero() bool {
	return l == Location{}
}

// String implements [fmt.Stringer]. Lines are printed 1-indexed, the way
// editors show them.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line+1, l.Column)
}

// Range is a half-open span between two locations.
type Range struct {
	Start, End Location
}

// IsZero returns whether this is the zero range.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// String implements [fmt.Stringer].
func (r Range) String() string {
	return fmt.Sprintf("%v-%v", r.Start, r.End)
}

// Lines splits text into lines on U+000A. Carriage returns are kept.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// Extract returns the text spanned by r within lines, joining multi-line
// spans with newlines.
//
// Columns past the end of a line are clamped to its length.
func Extract(lines []string, r Range) (string, error) {
	start, end := r.Start, r.End
	switch {
	case start.Line > end.Line,
		start.Line == end.Line && start.Column >= end.Column:
		return "", fmt.Errorf("%w: %v ends before it starts", ErrInvalidRange, r)
	case start.Line < 0 || end.Line >= len(lines):
		return "", fmt.Errorf("%w: %v is outside of %d lines", ErrInvalidRange, r, len(lines))
	case start.Column < 1 || end.Column < 1:
		return "", fmt.Errorf("%w: %v has a column before the start of a line", ErrInvalidRange, r)
	}

	if start.Line == end.Line {
		line := lines[start.Line]
		return line[clamp(start.Column-1, line):clamp(end.Column-1, line)], nil
	}

	var out strings.Builder
	first := lines[start.Line]
	out.WriteString(first[clamp(start.Column-1, first):])
	for _, line := range lines[start.Line+1 : end.Line] {
		out.WriteByte('\n')
		out.WriteString(line)
	}
	last := lines[end.Line]
	out.WriteByte('\n')
	out.WriteString(last[:clamp(end.Column-1, last)])
	return out.String(), nil
}

func clamp(column int, line string) int {
	return min(column, len(line))
}
