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

package source

import "strings"

// HasLeadingNewline reports whether the text between the opening delimiter
// of list and the start of its first element contains a newline.
//
// Returns false for lists without elements or without locations; that is an
// absence of signal rather than an error.
func HasLeadingNewline(list Range, elements []Range, lines []string) (bool, error) {
	if len(elements) == 0 || list.IsZero() || elements[0].IsZero() {
		return false, nil
	}

	text, err := Extract(lines, Range{Start: list.Start, End: elements[0].Start})
	if err != nil {
		return false, err
	}
	return strings.Contains(text, "\n"), nil
}

// HasTrailingSeparator reports whether the text between the end of the last
// element of list and the end of list contains a comma.
//
// Returns false for lists without elements or without locations.
func HasTrailingSeparator(list Range, elements []Range, lines []string) (bool, error) {
	if len(elements) == 0 || list.IsZero() || elements[len(elements)-1].IsZero() {
		return false, nil
	}

	text, err := Extract(lines, Range{Start: elements[len(elements)-1].End, End: list.End})
	if err != nil {
		return false, err
	}
	return strings.Contains(text, ","), nil
}
