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

package directive

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/tidwall/btree"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/report"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/syntax"
)

// Table is every directive found in one syntax tree, indexed by the
// 1-indexed line on which the directive's comment ends.
type Table struct {
	nextLineCounts map[int][]int
	nextThreshold  map[int]Threshold

	setLineCounts btree.Map[int, scoped[[]int]]
	setThreshold  btree.Map[int, scoped[Threshold]]

	resets []int
}

// scoped is a "set" directive together with the line its scope ends on,
// exclusive.
type scoped[T any] struct {
	value T
	end   int
}

// parsed is what one comment says, before scopes are resolved.
type parsed struct {
	line int

	nextLineCounts, setLineCounts []int
	nextThreshold, setThreshold   *Threshold
	reset                         bool
}

// Parse builds a table from the comments of one syntax tree.
//
// Malformed directives are reported to r as warnings and otherwise
// ignored. r and logger may be nil.
func Parse(comments []syntax.Comment, r *report.Report, logger *log.Logger) *Table {
	t := &Table{
		nextLineCounts: make(map[int][]int),
		nextThreshold:  make(map[int]Threshold),
	}

	var all []parsed
	for _, comment := range comments {
		p := parseComment(comment, r, logger)
		if p.reset {
			t.resets = append(t.resets, p.line)
		}
		all = append(all, p)
	}
	slices.Sort(t.resets)
	t.resets = slices.Compact(t.resets)

	for _, p := range all {
		switch {
		case p.nextLineCounts != nil:
			t.nextLineCounts[p.line] = p.nextLineCounts
		case p.setLineCounts != nil:
			t.setLineCounts.Set(p.line, scoped[[]int]{value: p.setLineCounts, end: t.scopeEnd(p.line)})
		case p.nextThreshold != nil:
			t.nextThreshold[p.line] = *p.nextThreshold
		case p.setThreshold != nil:
			t.setThreshold.Set(p.line, scoped[Threshold]{value: *p.setThreshold, end: t.scopeEnd(p.line)})
		}
	}

	if logger != nil {
		logger.Debug("parsed directives",
			"comments", len(comments),
			"next-patterns", len(t.nextLineCounts),
			"set-patterns", t.setLineCounts.Len(),
			"next-thresholds", len(t.nextThreshold),
			"set-thresholds", t.setThreshold.Len(),
			"resets", len(t.resets),
		)
	}
	return t
}

// scopeEnd returns the first reset line strictly after line, or
// [Unbounded].
func (t *Table) scopeEnd(line int) int {
	i, found := slices.BinarySearch(t.resets, line)
	if found {
		i++
	}
	if i < len(t.resets) {
		return t.resets[i]
	}
	return Unbounded
}

// NextLineCounts returns the line-count pattern of a "next" directive
// ending on the given line.
func (t *Table) NextLineCounts(line int) ([]int, bool) {
	counts, ok := t.nextLineCounts[line]
	return counts, ok
}

// NextThreshold returns the threshold of a "next" directive ending on the
// given line.
func (t *Table) NextThreshold(line int) (Threshold, bool) {
	threshold, ok := t.nextThreshold[line]
	return threshold, ok
}

// SetLineCounts returns the line-count pattern of the latest "set"
// directive still in scope for a list starting on the given line.
func (t *Table) SetLineCounts(line int) ([]int, bool) {
	return latest(&t.setLineCounts, line)
}

// SetThreshold returns the threshold of the latest "set" directive still in
// scope for a list starting on the given line.
func (t *Table) SetThreshold(line int) (Threshold, bool) {
	return latest(&t.setThreshold, line)
}

// Resets returns the lines of every reset directive, in ascending order.
func (t *Table) Resets() []int {
	return slices.Clone(t.resets)
}

// latest finds the entry with the greatest key strictly before line whose
// scope ends strictly after line.
func latest[T any](m *btree.Map[int, scoped[T]], line int) (value T, ok bool) {
	m.Descend(line-1, func(_ int, entry scoped[T]) bool {
		if entry.end > line {
			value, ok = entry.value, true
			return false
		}
		return true
	})
	return value, ok
}

// parseComment extracts the directives from a single comment.
func parseComment(comment syntax.Comment, r *report.Report, logger *log.Logger) parsed {
	p := parsed{line: comment.Line()}
	text := normalize(comment.Text)

	warn := func(kind string, err error) {
		if logger != nil {
			logger.Debug("ignoring malformed directive", "line", p.line, "kind", kind, "err", err)
		}
		if r != nil {
			r.Warnf("invalid %s directive: %v", kind, err).With(
				report.AtLine(p.line),
				report.Note("the directive is ignored"),
			)
		}
	}

	switch {
	case strings.HasPrefix(text, nextLinePatternPrefix):
		counts, err := parsePattern(strings.TrimPrefix(text, nextLinePatternPrefix))
		if err != nil {
			warn("line pattern", err)
		}
		p.nextLineCounts = counts
	case strings.HasPrefix(text, setLinePatternPrefix):
		counts, err := parsePattern(strings.TrimPrefix(text, setLinePatternPrefix))
		if err != nil {
			warn("line pattern", err)
		}
		p.setLineCounts = counts
	case strings.HasPrefix(text, nextThresholdPrefix):
		threshold, err := parseThreshold(strings.TrimPrefix(text, nextThresholdPrefix))
		if err != nil {
			warn("wrap threshold", err)
		}
		p.nextThreshold = threshold
	case strings.HasPrefix(text, setThresholdPrefix):
		threshold, err := parseThreshold(strings.TrimPrefix(text, setThresholdPrefix))
		if err != nil {
			warn("wrap threshold", err)
		}
		p.setThreshold = threshold
	}

	p.reset = strings.Contains(text, resetPhrase)
	return p
}

// normalize strips comment delimiters, flattens the comment onto one line,
// and lower-cases it.
func normalize(text string) string {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "//"):
		text = text[2:]
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(text[2:], "*/")
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		lines[i] = strings.TrimSpace(strings.TrimPrefix(line, "*"))
	}
	return strings.ToLower(strings.TrimSpace(strings.Join(lines, " ")))
}

// parsePattern parses a line-count payload such as "1 2 3", "[1, 2]" or
// "3". It returns nil if the payload is empty.
func parsePattern(payload string) ([]int, error) {
	payload = strings.TrimSpace(payload)
	payload = strings.TrimPrefix(payload, "[")
	payload = strings.TrimSuffix(payload, "]")

	fields := strings.FieldsFunc(payload, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil, nil
	}

	counts := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%q is not a non-negative integer", field)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

// parseThreshold parses a threshold payload. It returns nil if the payload
// is empty.
func parseThreshold(payload string) (*Threshold, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(payload)
	if err != nil {
		return nil, fmt.Errorf("%q is not an integer", payload)
	}
	threshold := ThresholdOf(n)
	return &threshold, nil
}
