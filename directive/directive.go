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

// Package directive parses formatting directives out of source comments.
//
// Five directives are recognized, case-insensitively, anywhere a comment
// can appear:
//
//	// prettier-multiline-arrays-next-line-pattern: 2 1
//	// prettier-multiline-arrays-set-line-pattern: [3]
//	// prettier-multiline-arrays-next-threshold: 4
//	// prettier-multiline-arrays-set-threshold: 10
//	// prettier-multiline-arrays-reset
//
// "next" directives apply to the first list that starts on the line right
// after the comment. "set" directives apply to every list after the
// comment until the next reset.
package directive

import (
	"fmt"
	"math"
	"strconv"
)

const (
	nextLinePatternPrefix = "prettier-multiline-arrays-next-line-pattern:"
	setLinePatternPrefix  = "prettier-multiline-arrays-set-line-pattern:"
	nextThresholdPrefix   = "prettier-multiline-arrays-next-threshold:"
	setThresholdPrefix    = "prettier-multiline-arrays-set-threshold:"
	resetPhrase           = "prettier-multiline-arrays-reset"
)

// Unbounded is the scope end of a "set" directive that no reset follows.
const Unbounded = math.MaxInt

// Unlimited is the threshold of a list that never wraps because of its
// element count.
const Unlimited Threshold = math.MaxInt

// Threshold is the largest number of elements a list may have and still be
// printed on one line.
type Threshold int

// ThresholdOf converts a configured threshold into a [Threshold]. Negative
// values mean "never wrap".
func ThresholdOf(n int) Threshold {
	if n < 0 {
		return Unlimited
	}
	return Threshold(n)
}

// Exceeded reports whether a list with the given number of elements is
// over the threshold.
func (t Threshold) Exceeded(elements int) bool {
	return t != Unlimited && elements > int(t)
}

// String implements [fmt.Stringer].
func (t Threshold) String() string {
	if t == Unlimited {
		return "unlimited"
	}
	return strconv.Itoa(int(t))
}

// GoString implements [fmt.GoStringer].
func (t Threshold) GoString() string {
	if t == Unlimited {
		return "directive.Unlimited"
	}
	return fmt.Sprintf("directive.Threshold(%d)", int(t))
}
