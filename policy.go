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

package multiline

import (
	"fmt"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/config"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/directive"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/reflow"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/source"
	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/syntax"
)

// Resolve computes the policy of list, given the directives of its file,
// the file's lines and the global configuration.
func Resolve(table *directive.Table, list syntax.List, lines []string, opts config.Options) (reflow.Policy, error) {
	line := list.Line()
	previous := line - 1

	counts, ok := table.NextLineCounts(previous)
	if !ok {
		counts, ok = table.SetLineCounts(line)
	}
	if !ok {
		counts = opts.LinePattern
	}

	threshold, thresholdDirective := table.NextThreshold(previous)
	if !thresholdDirective {
		threshold, thresholdDirective = table.SetThreshold(line)
	}
	if !thresholdDirective {
		threshold = opts.Threshold()
	}

	policy := reflow.Policy{
		LineCounts:    counts,
		WrapThreshold: threshold,
	}
	if thresholdDirective || len(counts) > 0 {
		return policy, nil
	}

	trailing, err := source.HasTrailingSeparator(list.Range, list.Elements, lines)
	if err != nil {
		return policy, fmt.Errorf("%v list at line %d: %w", list.Kind, line, err)
	}
	leading, err := source.HasLeadingNewline(list.Range, list.Elements, lines)
	if err != nil {
		return policy, fmt.Errorf("%v list at line %d: %w", list.Kind, line, err)
	}
	policy.ManualWrap = trailing || leading
	return policy, nil
}
